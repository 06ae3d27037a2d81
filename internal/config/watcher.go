package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
	"github.com/nvm/sysinspect/internal/events"
)

// DefaultReloadDebounce coalesces the bursts of writes editors make on save.
const DefaultReloadDebounce = 100 * time.Millisecond

// WatchOptions configure a Watcher.
type WatchOptions struct {
	// Bus receives an EventConfigReloaded for every accepted reload.
	Bus *events.Bus
	// NoAutoRefresh keeps auto refresh off whatever the file says.
	NoAutoRefresh bool
	Debounce      time.Duration
	Log           logr.Logger
}

// Watcher reloads the configuration file when it changes and publishes the
// settings a running window can apply. A file that fails to load or
// validate is ignored and the previous configuration stays current.
type Watcher struct {
	configPath string
	opts       WatchOptions
	watcher    *fsnotify.Watcher
	done       chan struct{}
	stopOnce   sync.Once
	log        logr.Logger

	mu      sync.Mutex
	current *Config
}

// NewWatcher watches configPath, whose contents at startup are current.
// The parent directory is watched so that editors replacing the file on
// save are noticed.
func NewWatcher(configPath string, current *Config, opts WatchOptions) (*Watcher, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	dir := filepath.Dir(absPath)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	if opts.Log.GetSink() == nil {
		opts.Log = logr.Discard()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultReloadDebounce
	}
	if current == nil {
		current = &Config{}
	}

	return &Watcher{
		configPath: absPath,
		opts:       opts,
		watcher:    fw,
		done:       make(chan struct{}),
		log:        opts.Log.WithName("config"),
		current:    current,
	}, nil
}

// Current returns the configuration last accepted.
func (w *Watcher) Current() *Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

func (w *Watcher) Start() {
	go w.watch()
}

// Stop ends watching. It may be called more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()
	})
}

func (w *Watcher) watch() {
	w.log.V(1).Info("watching configuration file", "path", w.configPath)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.concerns(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.Reload()

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

// concerns reports whether event wrote or replaced the configuration file.
func (w *Watcher) concerns(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	path, err := filepath.Abs(event.Name)
	return err == nil && path == w.configPath
}

// Reload reads the file now. It returns false when the file was rejected.
func (w *Watcher) Reload() bool {
	cfg, err := LoadConfig(w.configPath)
	if err != nil {
		w.log.Error(err, "failed to load configuration, keeping previous configuration")
		return false
	}
	if errs := NewValidator().ValidateConfig(cfg); len(errs) > 0 {
		w.log.Error(nil, "configuration validation failed, keeping previous configuration",
			"errors", FormatValidationErrors(errs))
		return false
	}

	w.mu.Lock()
	restart := RestartRequired(w.current, cfg)
	w.current = cfg
	w.mu.Unlock()

	if len(restart) > 0 {
		w.log.Info("some settings apply after a restart", "settings", restart)
	}
	w.log.Info("configuration reloaded", "path", w.configPath)

	if w.opts.Bus != nil {
		autoRefresh := cfg.GetAutoRefresh() && !w.opts.NoAutoRefresh
		w.opts.Bus.Publish(events.NewConfigReloadedEvent(w.configPath, autoRefresh, cfg.GetRefreshDelayOrDefault(), restart))
	}
	return true
}

// RestartRequired names the settings that differ between prev and next and
// are only read at startup. Auto refresh and the refresh delay are applied
// live and never listed.
func RestartRequired(prev, next *Config) []string {
	var changed []string
	if !slices.Equal(prev.GetCategoriesOrDefault(), next.GetCategoriesOrDefault()) {
		changed = append(changed, "categories")
	}
	if prev.GetDisplayPollIntervalOrDefault() != next.GetDisplayPollIntervalOrDefault() {
		changed = append(changed, "timing.displayPollInterval")
	}
	if prev.GetHostLookupTimeoutOrDefault() != next.GetHostLookupTimeoutOrDefault() {
		changed = append(changed, "timing.hostLookupTimeout")
	}
	if prev.GetCommandTimeoutOrDefault() != next.GetCommandTimeoutOrDefault() {
		changed = append(changed, "timing.commandTimeout")
	}
	if prev.GetSeparatorOrDefault() != next.GetSeparatorOrDefault() ||
		prev.GetSaveFileOrDefault() != next.GetSaveFileOrDefault() {
		changed = append(changed, "export")
	}
	if prev.GetLogLevel() != next.GetLogLevel() ||
		prev.GetLogFormat() != next.GetLogFormat() ||
		prev.GetLogFile() != next.GetLogFile() {
		changed = append(changed, "logging")
	}
	if !slices.Equal(prev.Watch, next.Watch) {
		changed = append(changed, "watch")
	}
	return changed
}
