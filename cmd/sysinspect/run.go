package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/nvm/sysinspect/internal/config"
	"github.com/nvm/sysinspect/internal/events"
	"github.com/nvm/sysinspect/internal/inspector"
	"github.com/nvm/sysinspect/internal/notify"
	"github.com/nvm/sysinspect/internal/ui"
	"github.com/nvm/sysinspect/internal/version"
)

func runTUI(a *app) error {
	bus := events.NewBus()
	defer bus.Close()

	bus.SubscribeAll(func(e events.Event) {
		a.log.V(1).Info("event", "type", string(e.Type), "source", e.Source)
	})

	relay := ui.NewRelay(ui.DefaultRelaySize, a.log)
	relay.Forward(bus)

	provider := newProvider(a.cfg, a.log)
	opts := a.inspectorOptions(provider)
	opts.Poster = relay.Post
	opts.Bus = bus
	in, err := inspector.New(opts)
	if err != nil {
		return err
	}
	defer in.Close()

	// Settings files watched for change notifications
	watcher, err := notify.NewWatcher(watchPaths(a.cfg), bus, a.log)
	if err != nil {
		a.log.Error(err, "settings change notifications are not available")
	} else {
		watcher.Start()
		defer watcher.Stop()
	}

	poller := notify.NewDisplayPoller(provider, a.cfg.GetDisplayPollIntervalOrDefault(), bus, a.log)
	poller.Start()
	defer poller.Stop()

	// Setup config watcher for hot-reload
	if a.configPath != "" {
		configWatcher, err := config.NewWatcher(a.configPath, a.cfg, config.WatchOptions{
			Bus:           bus,
			NoAutoRefresh: a.noAutoRefresh,
			Log:           a.log,
		})
		if err != nil {
			a.log.Error(err, "hot-reload will not be available")
		} else {
			configWatcher.Start()
			defer configWatcher.Stop()
		}
	}

	u := ui.New(in, relay, ui.Options{
		Version:   version.Get().Version,
		Separator: a.cfg.GetSeparatorOrDefault(),
		SaveFile:  a.cfg.GetSaveFileOrDefault(),
		Bus:       bus,
		Log:       a.log,
	})

	// Setup signal handler for clean shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			u.Stop()
		}
	}()

	// Start the bubbletea app (blocks until quit)
	return u.Start()
}

// watchPaths returns the built-in desktop settings files plus the files
// listed in the configuration.
func watchPaths(cfg *config.Config) []notify.WatchPath {
	home, _ := os.UserHomeDir()
	configDir, _ := os.UserConfigDir()

	paths := notify.DefaultPaths(home, configDir)
	for _, w := range cfg.Watch {
		kind, err := notify.ParseKind(w.Kind)
		if err != nil {
			continue
		}
		paths = append(paths, notify.WatchPath{Path: notify.ExpandHome(w.Path), Kind: kind})
	}
	return paths
}
