package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logAt(l *Logger, level Level, msg string, fields map[string]interface{}) {
	switch level {
	case LevelDebug:
		l.Debug(msg, fields)
	case LevelInfo:
		l.Info(msg, fields)
	case LevelWarn:
		l.Warn(msg, fields)
	case LevelError:
		l.Error(msg, fields)
	}
}

func TestLoggerTextFormat(t *testing.T) {
	tests := []struct {
		name           string
		level          Level
		logLevel       Level
		message        string
		fields         map[string]interface{}
		expectOutput   bool
		expectContains []string
	}{
		{
			name:           "info logged at info level",
			level:          LevelInfo,
			logLevel:       LevelInfo,
			message:        "System values were refreshed.",
			expectOutput:   true,
			expectContains: []string{"[INFO]", "System values were refreshed."},
		},
		{
			name:     "debug filtered at info level",
			level:    LevelInfo,
			logLevel: LevelDebug,
			message:  "command failed",
		},
		{
			name:     "info with fields",
			level:    LevelInfo,
			logLevel: LevelInfo,
			message:  "notification arrived",
			fields: map[string]interface{}{
				"kind": "theme",
				"path": "/home/ada/.config/gtk-3.0/settings.ini",
			},
			expectOutput:   true,
			expectContains: []string{"[INFO]", "notification arrived", "kind:theme"},
		},
		{
			name:           "error logged at warn level",
			level:          LevelWarn,
			logLevel:       LevelError,
			message:        "cannot enumerate displays",
			expectOutput:   true,
			expectContains: []string{"[ERROR]", "cannot enumerate displays"},
		},
		{
			name:     "info filtered at warn level",
			level:    LevelWarn,
			logLevel: LevelInfo,
			message:  "values exported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logAt(New(tt.level, FormatText, buf), tt.logLevel, tt.message, tt.fields)

			output := buf.String()
			if !tt.expectOutput {
				assert.Empty(t, output)
				return
			}
			for _, want := range tt.expectContains {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestLoggerJSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(LevelDebug, FormatJSON, buf)

	l.Warn("cannot resolve full host name", map[string]interface{}{
		"timeout": "5s",
		"attempt": 2,
	})

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, "cannot resolve full host name", entry.Message)
	assert.NotEmpty(t, entry.Time)
	assert.Equal(t, "5s", entry.Fields["timeout"])
	assert.Equal(t, float64(2), entry.Fields["attempt"])
}

func TestLoggerWithoutFields(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(LevelInfo, FormatJSON, buf)
	l.Info("no fields")
	assert.NotContains(t, buf.String(), `"fields"`)
}

func TestGlobalLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(LevelInfo, FormatText, buf)
	t.Cleanup(func() { globalLogger = nil })

	Info("global info message")
	Debug("hidden")
	Error("global error message")

	assert.Contains(t, buf.String(), "[INFO] global info message")
	assert.Contains(t, buf.String(), "[ERROR] global error message")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Same(t, globalLogger, Global())
}

func TestLogLevelsFiltering(t *testing.T) {
	levels := []Level{LevelDebug, LevelInfo, LevelWarn, LevelError}
	for _, loggerLevel := range levels {
		t.Run(levelToString(loggerLevel), func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := New(loggerLevel, FormatText, buf)
			for _, at := range levels {
				buf.Reset()
				logAt(l, at, "test", nil)
				assert.Equal(t, at >= loggerLevel, buf.Len() > 0, "log at %s", levelToString(at))
			}
		})
	}
}

func TestLoggerNilOutput(t *testing.T) {
	l := New(LevelInfo, FormatText, nil)
	assert.NotNil(t, l.output)
}

func TestLevelToString(t *testing.T) {
	assert.Equal(t, "DEBUG", levelToString(LevelDebug))
	assert.Equal(t, "ERROR", levelToString(LevelError))
	assert.Equal(t, "UNKNOWN", levelToString(Level(999)))
}

func TestParseLevelAndFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: " INFO ", want: LevelInfo},
		{in: "", want: LevelInfo},
		{in: "warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "trace", want: LevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
		} else {
			assert.NoError(t, err, tt.in)
		}
		assert.Equal(t, tt.want, got, tt.in)
	}

	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
