package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/nvm/sysinspect/internal/config"
	"github.com/nvm/sysinspect/internal/inspector"
	"github.com/nvm/sysinspect/internal/logger"
	"github.com/nvm/sysinspect/internal/platform"
	"github.com/nvm/sysinspect/internal/version"
	"github.com/spf13/cobra"
)

// options holds the flags shared by every command
type options struct {
	configFile    string
	verbose       bool
	logFormat     string
	noAutoRefresh bool
	categories    []string
	check         bool
}

// app is what every command needs after flags and config were processed
type app struct {
	cfg        *config.Config
	configPath string
	log        logr.Logger
	flags      inspector.Flags
	closeLog   func()

	// noAutoRefresh keeps auto-refresh off across config reloads
	noAutoRefresh bool
}

// newProvider builds the platform provider. Tests replace it.
var newProvider = func(cfg *config.Config, log logr.Logger) platform.Provider {
	return platform.NewHost(platform.HostOptions{
		Log:            log,
		CommandTimeout: cfg.GetCommandTimeoutOrDefault(),
	})
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "sysinspect",
		Short: "Inspect desktop, display and runtime configuration",
		Long: `sysinspect shows read-only snapshots of system colours, fonts, metrics,
displays, standard paths, runtime options, environment variables,
miscellaneous OS facts and build settings, grouped in tabs.

The values are refreshed on demand and after the desktop reports a
settings, theme, display, colour or DPI change.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, opts, true)
			if err != nil || a == nil {
				return err
			}
			defer a.closeLog()
			return runTUI(a)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Path to configuration file (default: "+config.DefaultFileName+" or the user config directory)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")
	cmd.PersistentFlags().BoolVar(&opts.noAutoRefresh, "no-auto-refresh", false, "Do not refresh values after change notifications")
	cmd.PersistentFlags().StringSliceVar(&opts.categories, "categories", nil, "Categories to show (default: all)")
	cmd.PersistentFlags().BoolVar(&opts.check, "check", false, "Validate configuration and exit")

	cmd.AddCommand(newDumpCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get())
		},
	}
}

// setup loads and validates the configuration and initializes logging. It
// returns a nil app when --check was given and the configuration is valid.
func setup(cmd *cobra.Command, opts *options, interactive bool) (*app, error) {
	configPath := opts.configFile
	if configPath == "" {
		configPath = config.FindConfig()
	}

	cfg := &config.Config{}
	if configPath != "" {
		// Validate config path security
		absConfigPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = filepath.Clean(absConfigPath)

		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	// Validate configuration
	validator := config.NewValidator()
	if errs := validator.ValidateConfig(cfg); len(errs) > 0 {
		return nil, errors.New(config.FormatValidationErrors(errs))
	}

	if opts.check {
		if configPath == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No configuration file found, defaults are valid")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration %s is valid\n", configPath)
		}
		return nil, nil
	}

	categories := cfg.GetCategoriesOrDefault()
	if len(opts.categories) > 0 {
		categories = opts.categories
	}
	flags, err := inspector.ParseCategories(categories)
	if err != nil {
		return nil, err
	}
	if flags == 0 {
		flags = inspector.AllViews
	}
	if cfg.GetAutoRefresh() && !opts.noAutoRefresh {
		flags |= inspector.AutoRefresh
	}

	log, closeLog, err := setupLogging(cmd, cfg, opts, interactive)
	if err != nil {
		return nil, err
	}
	log.V(1).Info("configuration loaded", "path", configPath, "categories", categories)

	return &app{
		cfg:           cfg,
		configPath:    configPath,
		log:           log,
		flags:         flags,
		noAutoRefresh: opts.noAutoRefresh,
		closeLog:      closeLog,
	}, nil
}

// setupLogging initializes the structured logger. In interactive mode logs
// go to the configured file or are discarded to prevent UI corruption.
func setupLogging(cmd *cobra.Command, cfg *config.Config, opts *options, interactive bool) (logr.Logger, func(), error) {
	levelName := cfg.GetLogLevel()
	if opts.verbose {
		levelName = "debug"
	}
	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return logr.Logger{}, nil, err
	}

	formatName := cfg.GetLogFormat()
	if opts.logFormat != "" {
		formatName = opts.logFormat
	}
	format, err := logger.ParseFormat(formatName)
	if err != nil {
		return logr.Logger{}, nil, err
	}

	var output io.Writer = cmd.ErrOrStderr()
	closeLog := func() {}
	switch {
	case cfg.GetLogFile() != "":
		f, err := os.OpenFile(cfg.GetLogFile(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return logr.Logger{}, nil, fmt.Errorf("opening log file: %w", err)
		}
		output = f
		closeLog = func() { f.Close() }
	case interactive:
		output = io.Discard
	}

	logger.Init(level, format, output)
	return logger.NewLogr(logger.Global()), closeLog, nil
}

// inspectorOptions builds the inspector options shared by the TUI and dump.
func (a *app) inspectorOptions(provider platform.Provider) inspector.Options {
	return inspector.Options{
		Flags:             a.flags,
		Provider:          provider,
		Log:               a.log,
		RefreshDelay:      a.cfg.GetRefreshDelayOrDefault(),
		HostLookupTimeout: a.cfg.GetHostLookupTimeoutOrDefault(),
	}
}
