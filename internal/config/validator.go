package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error with context.
type ValidationError struct {
	Field   string            // The field that failed validation
	Message string            // Error message
	Context map[string]string // Additional context information
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// Validator validates configuration files.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateConfig validates the entire configuration and returns all errors found.
func (v *Validator) ValidateConfig(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg == nil {
		return []ValidationError{{
			Field:   "config",
			Message: "Configuration is nil",
		}}
	}

	errs = append(errs, v.validateCategories(cfg)...)
	errs = append(errs, v.validateTiming(cfg)...)
	errs = append(errs, v.validateExport(cfg)...)
	errs = append(errs, v.validateLogging(cfg)...)
	errs = append(errs, v.validateWatch(cfg)...)

	return errs
}

// validateCategories rejects unknown and repeated categories.
func (v *Validator) validateCategories(cfg *Config) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]int)
	for i, name := range cfg.Categories {
		if !slices.Contains(CategoryNames, name) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("categories[%d]", i),
				Message: fmt.Sprintf("Unknown category '%s' (must be one of: %s)", name, strings.Join(CategoryNames, ", ")),
			})
			continue
		}
		if first, ok := seen[name]; ok {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("categories[%d]", i),
				Message: fmt.Sprintf("Category '%s' is listed more than once", name),
				Context: map[string]string{"first": fmt.Sprintf("categories[%d]", first)},
			})
			continue
		}
		seen[name] = i
	}

	return errs
}

// validateTiming checks that every duration parses and is in range.
func (v *Validator) validateTiming(cfg *Config) []ValidationError {
	if cfg.Timing == nil {
		return nil
	}

	var errs []ValidationError
	check := func(field, value string, allowZero bool) {
		if value == "" {
			return
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   "timing." + field,
				Message: fmt.Sprintf("Invalid duration '%s' for %s: %v", value, field, err),
			})
			return
		}
		if d < 0 || (d == 0 && !allowZero) {
			errs = append(errs, ValidationError{
				Field:   "timing." + field,
				Message: fmt.Sprintf("Duration for %s must be positive, got %s", field, value),
			})
		}
	}

	check("refreshDelay", cfg.Timing.RefreshDelay, false)
	check("displayPollInterval", cfg.Timing.DisplayPollInterval, true)
	check("hostLookupTimeout", cfg.Timing.HostLookupTimeout, false)
	check("commandTimeout", cfg.Timing.CommandTimeout, false)

	return errs
}

func (v *Validator) validateExport(cfg *Config) []ValidationError {
	if cfg.Export == nil {
		return nil
	}

	var errs []ValidationError
	if strings.ContainsAny(cfg.Export.Separator, "\r\n") {
		errs = append(errs, ValidationError{
			Field:   "export.separator",
			Message: "Export separator cannot contain line breaks",
		})
	}
	return errs
}

func (v *Validator) validateLogging(cfg *Config) []ValidationError {
	if cfg.Logging == nil {
		return nil
	}

	var errs []ValidationError
	switch strings.ToLower(cfg.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("Invalid log level '%s' (must be debug, info, warn or error)", cfg.Logging.Level),
		})
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("Invalid log format '%s' (must be 'text' or 'json')", cfg.Logging.Format),
		})
	}
	return errs
}

// validateWatch checks the extra watched paths.
func (v *Validator) validateWatch(cfg *Config) []ValidationError {
	var errs []ValidationError

	paths := make(map[string][]string) // path -> fields using it
	for i, w := range cfg.Watch {
		field := fmt.Sprintf("watch[%d]", i)
		if w.Path == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".path",
				Message: "Watched path cannot be empty",
			})
		} else {
			paths[w.Path] = append(paths[w.Path], field)
		}
		if !slices.Contains(WatchKinds, w.Kind) {
			errs = append(errs, ValidationError{
				Field:   field + ".kind",
				Message: fmt.Sprintf("Invalid notification kind '%s' for %s (must be one of: %s)", w.Kind, w.Path, strings.Join(WatchKinds, ", ")),
			})
		}
	}

	for path, fields := range paths {
		if len(fields) > 1 {
			errs = append(errs, ValidationError{
				Field:   "watch",
				Message: fmt.Sprintf("Path '%s' is watched more than once", path),
				Context: map[string]string{
					"path":    path,
					"entries": strings.Join(fields, ", "),
				},
			})
		}
	}

	return errs
}

// FormatValidationErrors formats validation errors into a human-readable string.
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\nConfiguration Validation Errors:\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Message))
		if len(err.Context) > 0 {
			keys := make([]string, 0, len(err.Context))
			for k := range err.Context {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				sb.WriteString(fmt.Sprintf("   %s: %s\n", k, err.Context[k]))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
