package notify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
	"github.com/nvm/sysinspect/internal/events"
)

// Watcher publishes a notification whenever a watched settings file is
// written, created, removed or renamed. The parent directories are watched
// so files replaced by an atomic save keep being tracked.
type Watcher struct {
	watcher *fsnotify.Watcher
	bus     *events.Bus
	log     logr.Logger
	now     func() time.Time
	kinds   map[string]Kind // absolute file path -> kind
	done    chan struct{}
	stop    sync.Once
}

// NewWatcher watches paths and publishes to bus. Paths whose directory does
// not exist are skipped. It fails only when no watcher can be created.
func NewWatcher(paths []WatchPath, bus *events.Bus, log logr.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	w := &Watcher{
		watcher: fw,
		bus:     bus,
		log:     log.WithName("notify"),
		now:     time.Now,
		kinds:   make(map[string]Kind),
		done:    make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(ExpandHome(p.Path))
		if err != nil {
			w.log.V(1).Info("skipping watch path", "path", p.Path, "error", err.Error())
			continue
		}
		dir := filepath.Dir(abs)
		if !dirs[dir] {
			if err := fw.Add(dir); err != nil {
				if !errors.Is(err, os.ErrNotExist) {
					w.log.V(1).Info("cannot watch directory", "dir", dir, "error", err.Error())
				}
				continue
			}
			dirs[dir] = true
		}
		w.kinds[abs] = p.Kind
	}

	return w, nil
}

// Watched returns the number of files being tracked.
func (w *Watcher) Watched() int { return len(w.kinds) }

// Start begins delivering notifications.
func (w *Watcher) Start() {
	go w.watch()
}

// Stop ends the watch loop. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stop.Do(func() {
		close(w.done)
		w.watcher.Close()
	})
}

func (w *Watcher) watch() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error(err, "file watcher error")

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	path, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	kind, ok := w.kinds[path]
	if !ok {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	n := Notification{Kind: kind, Source: path, Detail: event.Op.String(), At: w.now()}
	w.log.V(1).Info("settings file changed", "kind", kind.String(), "path", path, "op", n.Detail)
	w.bus.Publish(n.Event())
}
