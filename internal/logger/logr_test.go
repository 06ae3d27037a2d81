package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, line string) logEntry {
	t.Helper()
	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(line)), &entry))
	return entry
}

func TestSinkInfoLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogr(New(LevelInfo, FormatJSON, buf))

	log.Info("shown", "view", "Displays")
	log.V(1).Info("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	entry := decode(t, lines[0])
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "Displays", entry.Fields["view"])
}

func TestSinkDebugLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogr(New(LevelDebug, FormatJSON, buf))

	log.V(2).Info("command failed", "command", "xrandr")
	entry := decode(t, buf.String())
	assert.Equal(t, "DEBUG", entry.Level)
	assert.Equal(t, "xrandr", entry.Fields["command"])
}

func TestSinkError(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogr(New(LevelError, FormatJSON, buf))

	log.Error(errors.New("no display server"), "cannot enumerate displays")
	log.Error(nil, "could not insert row", "id", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	first := decode(t, lines[0])
	assert.Equal(t, "ERROR", first.Level)
	assert.Equal(t, "no display server", first.Fields["error"])
	second := decode(t, lines[1])
	assert.NotContains(t, second.Fields, "error")
	assert.Equal(t, float64(3), second.Fields["id"])
}

func TestSinkWithNameAndValues(t *testing.T) {
	buf := &bytes.Buffer{}
	base := NewLogr(New(LevelInfo, FormatJSON, buf))

	log := base.WithName("sysview").WithName("Miscellaneous").WithValues("session", "x11")
	log.Info("refreshed", "rows", 32)

	entry := decode(t, buf.String())
	assert.Equal(t, "sysview.Miscellaneous", entry.Fields["logger"])
	assert.Equal(t, "x11", entry.Fields["session"])
	assert.Equal(t, float64(32), entry.Fields["rows"])

	// The parent logger is unaffected.
	buf.Reset()
	base.Info("plain")
	entry = decode(t, buf.String())
	assert.NotContains(t, entry.Fields, "logger")
	assert.NotContains(t, entry.Fields, "session")
}

func TestSinkOddKeyValues(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogr(New(LevelInfo, FormatJSON, buf))

	log.Info("odd", "a", 1, "dangling")
	entry := decode(t, buf.String())
	assert.Equal(t, float64(1), entry.Fields["a"])
	assert.NotContains(t, entry.Fields, "dangling")
}

func TestSinkConcurrentWrites(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogr(New(LevelInfo, FormatText, buf))

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Info("line", "n", i)
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, strings.Count(buf.String(), "\n"))
}
