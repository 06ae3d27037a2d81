package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	maxConfigSize = 1024 * 1024 // 1MB

	// DefaultFileName is looked up in the working directory and then in the
	// user's config directory.
	DefaultFileName = ".sysinspect.yaml"
)

// Timing defaults used when the file leaves a duration out.
const (
	DefaultRefreshDelay        = 750 * time.Millisecond
	DefaultDisplayPollInterval = 2 * time.Second
	DefaultHostLookupTimeout   = 5 * time.Second
	DefaultCommandTimeout      = 2 * time.Second
)

// Category names accepted in the categories list, in tab order.
var CategoryNames = []string{
	"colours", "fonts", "metrics", "displays", "paths",
	"options", "environment", "misc", "build",
}

// Notification kinds accepted for watched paths.
var WatchKinds = []string{"setting", "theme", "display", "syscolour", "dpi"}

// Config represents the root configuration structure from .sysinspect.yaml
type Config struct {
	Categories  []string     `yaml:"categories,omitempty"`
	AutoRefresh *bool        `yaml:"autoRefresh,omitempty"`
	Timing      *TimingSpec  `yaml:"timing,omitempty"`
	Export      *ExportSpec  `yaml:"export,omitempty"`
	Logging     *LoggingSpec `yaml:"logging,omitempty"`
	// Watch adds files whose changes are reported as notifications, on top
	// of the built-in desktop settings files.
	Watch []WatchPath `yaml:"watch,omitempty"`
}

// TimingSpec configures refresh and background query timing.
type TimingSpec struct {
	RefreshDelay        string `yaml:"refreshDelay,omitempty"`        // e.g. "750ms", debounce after a notification
	DisplayPollInterval string `yaml:"displayPollInterval,omitempty"` // e.g. "2s", "0s" disables polling
	HostLookupTimeout   string `yaml:"hostLookupTimeout,omitempty"`   // e.g. "5s"
	CommandTimeout      string `yaml:"commandTimeout,omitempty"`      // e.g. "2s", per helper command
}

// ExportSpec configures value export.
type ExportSpec struct {
	Separator string `yaml:"separator,omitempty"` // between name and value, default tab
	File      string `yaml:"file,omitempty"`      // default file name of the save prompt
}

// LoggingSpec configures the diagnostic log, not the in-app log pane.
type LoggingSpec struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // text, json
	File   string `yaml:"file,omitempty"`   // TUI mode discards logs when empty
}

// WatchPath is one extra file to watch.
type WatchPath struct {
	Path string `yaml:"path"`
	Kind string `yaml:"kind"`
}

func parseDurationOrDefault(value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return def
}

// GetCategoriesOrDefault returns the configured categories or all of them.
func (c *Config) GetCategoriesOrDefault() []string {
	if len(c.Categories) > 0 {
		return c.Categories
	}
	return slices.Clone(CategoryNames)
}

// GetAutoRefresh returns whether notifications trigger a refresh.
func (c *Config) GetAutoRefresh() bool {
	if c.AutoRefresh != nil {
		return *c.AutoRefresh
	}
	return true // Default: enabled
}

// GetRefreshDelayOrDefault returns the notification debounce delay or default value
func (c *Config) GetRefreshDelayOrDefault() time.Duration {
	if c.Timing != nil {
		return parseDurationOrDefault(c.Timing.RefreshDelay, DefaultRefreshDelay)
	}
	return DefaultRefreshDelay
}

// GetDisplayPollIntervalOrDefault returns the display poll interval or default value
func (c *Config) GetDisplayPollIntervalOrDefault() time.Duration {
	if c.Timing != nil {
		return parseDurationOrDefault(c.Timing.DisplayPollInterval, DefaultDisplayPollInterval)
	}
	return DefaultDisplayPollInterval
}

// GetHostLookupTimeoutOrDefault returns the full host name lookup timeout or default value
func (c *Config) GetHostLookupTimeoutOrDefault() time.Duration {
	if c.Timing != nil {
		return parseDurationOrDefault(c.Timing.HostLookupTimeout, DefaultHostLookupTimeout)
	}
	return DefaultHostLookupTimeout
}

// GetCommandTimeoutOrDefault returns the helper command timeout or default value
func (c *Config) GetCommandTimeoutOrDefault() time.Duration {
	if c.Timing != nil {
		return parseDurationOrDefault(c.Timing.CommandTimeout, DefaultCommandTimeout)
	}
	return DefaultCommandTimeout
}

// GetSeparatorOrDefault returns the export separator or a tab.
func (c *Config) GetSeparatorOrDefault() string {
	if c.Export != nil && c.Export.Separator != "" {
		return c.Export.Separator
	}
	return "\t"
}

// GetSaveFileOrDefault returns the default save file name.
func (c *Config) GetSaveFileOrDefault() string {
	if c.Export != nil && c.Export.File != "" {
		return c.Export.File
	}
	return "sysinspect-values.txt"
}

// GetLogLevel returns the configured log level name or "info".
func (c *Config) GetLogLevel() string {
	if c.Logging != nil && c.Logging.Level != "" {
		return c.Logging.Level
	}
	return "info"
}

// GetLogFormat returns the configured log format name or "text".
func (c *Config) GetLogFormat() string {
	if c.Logging != nil && c.Logging.Format != "" {
		return c.Logging.Format
	}
	return "text"
}

// GetLogFile returns the log file path or "".
func (c *Config) GetLogFile() string {
	if c.Logging != nil {
		return c.Logging.File
	}
	return ""
}

// LoadConfig loads and parses the configuration file from the given path.
func LoadConfig(path string) (*Config, error) {
	// Validate file size before reading
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if fileInfo.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxConfigSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML configuration data into a Config struct.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, name := range cfg.Categories {
		cfg.Categories[i] = strings.ToLower(strings.TrimSpace(name))
	}
	for i := range cfg.Watch {
		cfg.Watch[i].Kind = strings.ToLower(strings.TrimSpace(cfg.Watch[i].Kind))
	}

	return &cfg, nil
}

// FindConfig returns the first existing config file among the working
// directory and the user config directory, or "".
func FindConfig() string {
	candidates := []string{DefaultFileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "sysinspect", "config.yaml"))
	}
	for _, p := range candidates {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}
