package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/nvm/sysinspect/internal/config"
	"github.com/nvm/sysinspect/internal/platform"
	"github.com/nvm/sysinspect/internal/report"
	"github.com/nvm/sysinspect/internal/sysview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withFixedProvider isolates a test from the host and from config files
func withFixedProvider(t *testing.T) *platform.Fixed {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	p := &platform.Fixed{
		Session: "x11",
		Colours: map[platform.ColourID]platform.Colour{platform.ColourAccent: platform.RGB(53, 132, 228)},
		Paths:   map[platform.PathID]string{platform.PathHome: "/home/ada"},
		Env:     []string{"B=2", "A=1"},
	}
	orig := newProvider
	newProvider = func(*config.Config, logr.Logger) platform.Provider { return p }
	t.Cleanup(func() { newProvider = orig })
	return p
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDumpToStdout(t *testing.T) {
	withFixedProvider(t)

	out, _, err := execute(t, "dump", "--categories", "paths,environment")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	sections, err := report.Parse(lines, "\t")
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "Standard Paths", sections[0].Title)
	assert.Equal(t, []string{"Home", "/home/ada"}, sections[0].Rows[0])
	assert.Equal(t, "Environment Variables", sections[1].Title)
	assert.Equal(t, [][]string{{"A", "1"}, {"B", "2"}}, sections[1].Rows)
}

func TestDumpToFileWithSeparator(t *testing.T) {
	withFixedProvider(t)
	path := filepath.Join(t.TempDir(), "values.txt")

	out, errOut, err := execute(t, "dump", "--categories", "environment", "-o", path, "--separator", " = ")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Saved 5 lines to "+path)

	lines, err := report.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Environment Variables", report.Rule, "Name = Value", "A = 1", "B = 2"}, lines)
}

func TestDumpWaitsForHostName(t *testing.T) {
	p := withFixedProvider(t)
	p.MiscValues = map[platform.MiscID]string{platform.MiscHostName: "box"}

	out, _, err := execute(t, "dump", "--categories", "misc")
	require.NoError(t, err)
	assert.Contains(t, out, "Host Name\tbox")
	assert.Contains(t, out, "Full Host Name\t"+sysview.SentinelUnknown)
	assert.NotContains(t, out, sysview.SentinelEvaluating)
}

func TestDumpUsesConfig(t *testing.T) {
	withFixedProvider(t)
	require.NoError(t, os.WriteFile(config.DefaultFileName, []byte(`
categories: [environment]
export:
  separator: ";"
`), 0644))

	out, _, err := execute(t, "dump")
	require.NoError(t, err)
	assert.Contains(t, out, "Environment Variables\n")
	assert.Contains(t, out, "A;1\n")
	assert.NotContains(t, out, "Standard Paths")
}

func TestUnknownCategory(t *testing.T) {
	withFixedProvider(t)

	_, _, err := execute(t, "dump", "--categories", "printers")
	assert.ErrorContains(t, err, "printers")
}

func TestCheckConfig(t *testing.T) {
	withFixedProvider(t)

	out, _, err := execute(t, "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "defaults are valid")

	path := filepath.Join(t.TempDir(), "good.yaml")
	require.NoError(t, os.WriteFile(path, []byte("autoRefresh: false\n"), 0644))
	out, _, err = execute(t, "--check", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("timing:\n  refreshDelay: soon\n"), 0644))
	_, _, err = execute(t, "--check", "-c", bad)
	assert.Error(t, err)

	_, _, err = execute(t, "--check", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInvalidLogFormat(t *testing.T) {
	withFixedProvider(t)

	_, _, err := execute(t, "dump", "--log-format", "xml")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "sysinspect version "))
}

func TestWatchPaths(t *testing.T) {
	t.Setenv("HOME", "/home/ada")
	t.Setenv("XDG_CONFIG_HOME", "/home/ada/.config")

	cfg := &config.Config{Watch: []config.WatchPath{
		{Path: "~/.config/sway/config", Kind: "display"},
		{Path: "/etc/x", Kind: "bogus"},
	}}
	paths := watchPaths(cfg)

	last := paths[len(paths)-1]
	assert.Equal(t, "/home/ada/.config/sway/config", last.Path)
	for _, p := range paths {
		assert.NotEqual(t, "/etc/x", p.Path)
	}
}
