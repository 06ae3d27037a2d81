package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

func TestValidator_ValidateConfig(t *testing.T) {
	tests := []struct {
		name       string
		yaml       string
		wantFields []string
	}{
		{
			name: "empty config is valid",
			yaml: "",
		},
		{
			name:       "unknown category",
			yaml:       "categories: [colours, printers]",
			wantFields: []string{"categories[1]"},
		},
		{
			name:       "duplicate category",
			yaml:       "categories: [fonts, Fonts]",
			wantFields: []string{"categories[1]"},
		},
		{
			name: "bad durations",
			yaml: `timing:
  refreshDelay: soon
  hostLookupTimeout: 0s
  commandTimeout: -1s
  displayPollInterval: 0s`,
			wantFields: []string{"timing.refreshDelay", "timing.hostLookupTimeout", "timing.commandTimeout"},
		},
		{
			name:       "zero refresh delay",
			yaml:       "timing:\n  refreshDelay: 0s",
			wantFields: []string{"timing.refreshDelay"},
		},
		{
			name:       "separator with newline",
			yaml:       "export:\n  separator: \"a\\nb\"",
			wantFields: []string{"export.separator"},
		},
		{
			name: "bad logging",
			yaml: `logging:
  level: loud
  format: xml`,
			wantFields: []string{"logging.level", "logging.format"},
		},
		{
			name: "bad watch entries",
			yaml: `watch:
  - path: ""
    kind: theme
  - path: /etc/a
    kind: weather`,
			wantFields: []string{"watch[0].path", "watch[1].kind"},
		},
		{
			name: "duplicate watch path",
			yaml: `watch:
  - path: /etc/a
    kind: theme
  - path: /etc/a
    kind: dpi`,
			wantFields: []string{"watch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.yaml))
			require.NoError(t, err)

			errs := NewValidator().ValidateConfig(cfg)
			if len(tt.wantFields) == 0 {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.wantFields, fields(errs))
		})
	}
}

func TestValidator_NilConfig(t *testing.T) {
	errs := NewValidator().ValidateConfig(nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "config", errs[0].Field)
}

func TestFormatValidationErrors(t *testing.T) {
	assert.Empty(t, FormatValidationErrors(nil))

	out := FormatValidationErrors([]ValidationError{
		{Field: "a", Message: "First problem"},
		{Field: "b", Message: "Second problem", Context: map[string]string{"path": "/etc/a", "entries": "watch[0], watch[1]"}},
	})

	assert.Contains(t, out, "Configuration Validation Errors:")
	assert.Contains(t, out, strings.Repeat("=", 50))
	assert.Contains(t, out, "1. First problem")
	assert.Contains(t, out, "2. Second problem")
	// Context keys are sorted.
	assert.Less(t, strings.Index(out, "entries:"), strings.Index(out, "path:"))
}

func TestValidationError_Error(t *testing.T) {
	var err error = ValidationError{Field: "x", Message: "broken"}
	assert.EqualError(t, err, "broken")
}
