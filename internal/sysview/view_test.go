package sysview

import (
	"context"
	"errors"
	"runtime/debug"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/nvm/sysinspect/internal/catalog"
	"github.com/nvm/sysinspect/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixed() *platform.Fixed {
	return &platform.Fixed{
		Session: "x11",
		Colours: map[platform.ColourID]platform.Colour{
			platform.ColourAccent:             platform.RGB(53, 132, 228),
			platform.ColourTerminalBackground: {R: 0, G: 0, B: 0, A: 128},
		},
		Fonts: map[platform.FontID]platform.Font{
			platform.FontInterface: {Family: "Cantarell", Size: 11},
		},
		Metrics: map[platform.MetricID]int{
			platform.MetricCursorSize: 24,
		},
		DisplayList: []platform.Display{
			{
				Name: "eDP-1", Primary: true, Depth: 24, RefreshHz: 60,
				Geometry:   platform.Rect{Width: 1920, Height: 1080},
				ClientArea: platform.Rect{Y: 32, Width: 1920, Height: 1048},
				WidthMM:    344, HeightMM: 194,
			},
			{
				Name:       "HDMI-1",
				Geometry:   platform.Rect{X: 1920, Width: 2560, Height: 1440},
				ClientArea: platform.Rect{X: 1920, Width: 2560, Height: 1440},
			},
		},
		Paths:   map[platform.PathID]string{platform.PathHome: "/home/ada"},
		Options: map[string]string{"TERM": "xterm-256color"},
		Env:     []string{"PATH=/usr/bin", "HOME=/home/ada", "EMPTY=", "HOME=/shadowed", "=C:=C:\\"},
		MiscValues: map[platform.MiscID]string{
			platform.MiscAppName: "sysinspect",
		},
	}
}

func newView(t *testing.T, c Category, p platform.Provider, poster Poster) View {
	t.Helper()
	v, err := New(c, Deps{Provider: p, Poster: poster})
	require.NoError(t, err)
	t.Cleanup(v.Close)
	return v
}

func TestNew(t *testing.T) {
	_, err := New(Category(99), Deps{Provider: newFixed()})
	assert.Error(t, err)

	_, err = New(CategoryColours, Deps{})
	assert.Error(t, err)

	for _, c := range Categories {
		v := newView(t, c, newFixed(), func(any) {})
		assert.Equal(t, c, v.Category())
		assert.Equal(t, c.Title(), v.Title())
	}
}

func TestValuesHeaderAndRowCount(t *testing.T) {
	for _, c := range Categories {
		t.Run(c.Title(), func(t *testing.T) {
			v := newView(t, c, newFixed(), func(any) {})
			lines := v.Values("\t")
			require.NotEmpty(t, lines)
			assert.Len(t, lines, len(v.Rows())+1)
			assert.True(t, strings.HasPrefix(lines[0], v.Columns()[0]+"\t"))
		})
	}
}

func TestColourView(t *testing.T) {
	v := NewColourView(Deps{Provider: newFixed()})
	rows := v.Rows()
	require.Len(t, rows, len(catalog.Colours))

	byName := make(map[string]Row)
	for _, r := range rows {
		byName[r.Cells[0]] = r
	}
	accent := byName["accent-color"]
	assert.Equal(t, "rgb(53, 132, 228)", accent.Cells[1])
	require.NotNil(t, accent.Swatch)
	assert.Equal(t, platform.RGB(53, 132, 228), *accent.Swatch)

	bg := byName["terminal-background"]
	assert.Equal(t, "rgba(0, 0, 0, 0.502), not solid", bg.Cells[1])

	missing := byName["background-primary-color"]
	assert.Equal(t, SentinelInvalid, missing.Cells[1])
	require.NotNil(t, missing.Swatch)
	assert.Equal(t, DefaultOutlineColour, *missing.Swatch)
}

func TestColourViewHidesDeprecatedEntries(t *testing.T) {
	p := newFixed()
	p.Session = "wayland"
	v := NewColourView(Deps{Provider: p})
	for _, r := range v.Rows() {
		assert.False(t, strings.HasPrefix(r.Cells[0], "xresources-"), r.Cells[0])
	}
	assert.Less(t, len(v.Rows()), len(catalog.Colours))
}

func TestColourDetails(t *testing.T) {
	v := NewColourView(Deps{Provider: newFixed()})

	v.Select(-1)
	assert.False(t, v.CanShowDetails())
	_, err := v.Details()
	assert.ErrorIs(t, err, ErrNoSelection)

	for i, r := range v.Rows() {
		if r.Cells[0] == "accent-color" {
			v.Select(i)
		}
	}
	d, err := v.Details()
	require.NoError(t, err)
	assert.Equal(t, "Viewing accent-color", d.Title)
	assert.Contains(t, d.Lines, "Hex:   #3584e4")

	for i, r := range v.Rows() {
		if r.Cells[1] == SentinelInvalid {
			v.Select(i)
			break
		}
	}
	_, err = v.Details()
	assert.ErrorContains(t, err, "invalid colour for")
}

func TestFontAndMetricViews(t *testing.T) {
	f := NewFontView(Deps{Provider: newFixed()})
	assert.Equal(t, "Cantarell 11", f.Rows()[0].Cells[1])
	assert.Equal(t, SentinelInvalid, f.Rows()[1].Cells[1])

	f.Select(0)
	d, err := f.Details()
	require.NoError(t, err)
	assert.Contains(t, d.Lines, "Weight: Regular")

	m := NewMetricView(Deps{Provider: newFixed()})
	for _, r := range m.Rows() {
		if r.Cells[0] == catalog.Metrics[0].Name {
			assert.Equal(t, "24", r.Cells[1])
		} else {
			assert.Equal(t, SentinelInvalid, r.Cells[1])
		}
	}
	assert.False(t, m.CanShowDetails())
	_, err = m.Details()
	assert.ErrorIs(t, err, ErrNoDetails)
}

func TestDisplayView(t *testing.T) {
	p := newFixed()
	v := NewDisplayView(Deps{Provider: p})
	assert.Equal(t, []string{"Parameter", "Display(0)", "Display(1)"}, v.Columns())
	require.Len(t, v.Rows(), len(catalog.DisplayParams))

	cells := func(param catalog.DisplayParam) []string {
		for _, r := range v.Rows() {
			if r.ID == int(param) {
				return r.Cells
			}
		}
		t.Fatalf("missing row %d", param)
		return nil
	}
	assert.Equal(t, []string{"Name", "eDP-1", "HDMI-1"}, cells(catalog.DisplayName))
	assert.Equal(t, "Yes", cells(catalog.DisplayIsPrimary)[1])
	assert.Equal(t, "1920 x 1080", cells(catalog.DisplayResolution)[1])
	assert.Equal(t, SentinelUnknown, cells(catalog.DisplayBitsPerPixel)[2])
	assert.Equal(t, "1920, 0; 4479, 1439", cells(catalog.DisplayGeometryCoordinates)[2])
	assert.Equal(t, "0, 32; 1919, 1079", cells(catalog.DisplayClientAreaCoordinates)[1])
	assert.Equal(t, SentinelUnknown, cells(catalog.DisplayPPI)[2])

	lines := v.Values(";")
	assert.Equal(t, "Parameter;Display(0);Display(1)", lines[0])

	// Unplugging a display drops its column on refresh.
	p.DisplayList = p.DisplayList[:1]
	v.Refresh()
	assert.Len(t, v.Columns(), 2)
	for _, r := range v.Rows() {
		assert.Len(t, r.Cells, 2)
	}

	p.DisplayErr = errors.New("no display server")
	v.Refresh()
	assert.Equal(t, []string{"Parameter"}, v.Columns())
}

func TestPathAndOptionViews(t *testing.T) {
	paths := NewPathView(Deps{Provider: newFixed()})
	assert.Equal(t, "/home/ada", paths.Rows()[0].Cells[1])
	assert.Equal(t, SentinelUnknown, paths.Rows()[1].Cells[1])

	opts := NewOptionView(Deps{Provider: newFixed()})
	for _, r := range opts.Rows() {
		if r.Cells[0] == "TERM" {
			assert.Equal(t, "xterm-256color", r.Cells[1])
		} else {
			assert.Equal(t, SentinelNotSet, r.Cells[1])
		}
	}
}

func TestEnvironmentView(t *testing.T) {
	p := newFixed()
	v := NewEnvironmentView(Deps{Provider: p})

	var names []string
	for _, r := range v.Rows() {
		names = append(names, r.Cells[0])
	}
	assert.Equal(t, []string{"=C:", "EMPTY", "HOME", "PATH"}, names)
	assert.Equal(t, "/home/ada", v.Rows()[2].Cells[1])
	assert.Equal(t, "", v.Rows()[1].Cells[1])

	p.Env = append(p.Env, "AAA=1")
	v.Refresh()
	assert.Equal(t, "AAA", v.Rows()[1].Cells[0])

	p.EnvErr = errors.New("denied")
	v.Refresh()
	assert.Empty(t, v.Rows())
	assert.Equal(t, -1, v.Selected())
	assert.Equal(t, []string{"Name\tValue"}, v.Values("\t"))
}

func TestBuildView(t *testing.T) {
	p := newFixed()
	p.Build = &debug.BuildInfo{
		GoVersion: "go1.24.2",
		Path:      "github.com/nvm/sysinspect/cmd/sysinspect",
		Main:      debug.Module{Path: "github.com/nvm/sysinspect", Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "GOOS", Value: "linux"},
			{Key: "-tags", Value: ""},
		},
	}
	v := NewBuildView(Deps{Provider: p})

	values := make(map[string]string)
	for _, r := range v.Rows() {
		values[r.Cells[0]] = r.Cells[1]
	}
	assert.Equal(t, "go1.24.2", values["go"])
	assert.Equal(t, "github.com/nvm/sysinspect (devel)", values["mod"])
	assert.Equal(t, "linux", values["GOOS"])
	assert.Equal(t, SentinelDefined, values["-tags"])
	assert.Equal(t, SentinelNotDefined, values["vcs.revision"])

	p.Build.GoVersion = "changed"
	v.Refresh()
	assert.Len(t, v.Rows(), len(catalog.BuildSettings))
	assert.Equal(t, "go1.24.2", v.Rows()[0].Cells[1])

	none := NewBuildView(Deps{Provider: newFixed()})
	for _, r := range none.Rows() {
		assert.Equal(t, SentinelNotDefined, r.Cells[1])
	}
}

func TestListViewSelectionAndWidths(t *testing.T) {
	v := NewPathView(Deps{Provider: newFixed()})
	assert.Equal(t, 0, v.Selected())

	v.Select(4)
	v.SetColumnWidth(1, 40)
	v.Refresh()
	assert.Equal(t, 4, v.Selected())
	w, ok := v.ColumnWidth(1)
	assert.True(t, ok)
	assert.Equal(t, 40, w)

	v.Select(1000)
	assert.Equal(t, len(v.Rows())-1, v.Selected())

	v.SetColumnWidth(1, 0)
	_, ok = v.ColumnWidth(1)
	assert.False(t, ok)
}

func TestEnvironmentViewEscapesControlCharacters(t *testing.T) {
	p := newFixed()
	p.Env = []string{"BASH_FUNC_hi%%=() {  echo hi\n}", "TABS=a\tb\r", "BELL=\a"}
	v := NewEnvironmentView(Deps{Provider: p})

	values := map[string]string{}
	for _, r := range v.Rows() {
		values[r.Cells[0]] = r.Cells[1]
	}
	assert.Equal(t, `() {  echo hi\n}`, values["BASH_FUNC_hi%%"])
	assert.Equal(t, `a\tb\r`, values["TABS"])
	assert.Equal(t, `\x07`, values["BELL"])

	for _, line := range v.Values("\t") {
		assert.NotContains(t, line, "\n")
		assert.Equal(t, 1, strings.Count(line, "\t"), line)
	}
}

func TestEscapeControl(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"zażółć", "zażółć"},
		{"a\nb", `a\nb`},
		{"\x1b[0m", `\x1b[0m`},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeControl(tt.in), tt.in)
	}
}

func TestListViewRejectsDuplicateRows(t *testing.T) {
	l := newListView(CategoryPaths, discard(), "Name", "Value")
	assert.Equal(t, 0, l.appendRow(7, "a", "1"))
	assert.Equal(t, -1, l.appendRow(7, "b", "2"))
	assert.Len(t, l.Rows(), 1)

	rows := l.Rows()
	rows[0].Cells[0] = "mutated"
	assert.Equal(t, "a", l.Rows()[0].Cells[0])
}

type poster struct {
	ch chan HostNameMsg
}

func newPoster() *poster { return &poster{ch: make(chan HostNameMsg, 8)} }

func (p *poster) post(msg any) { p.ch <- msg.(HostNameMsg) }

func (p *poster) next(t *testing.T) HostNameMsg {
	t.Helper()
	select {
	case m := <-p.ch:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("no host name message posted")
	}
	return HostNameMsg{}
}

func miscCell(v *MiscView, key platform.MiscID) string {
	for _, r := range v.Rows() {
		if catalog.MiscParams[r.ID].Key == key {
			return r.Cells[1]
		}
	}
	return ""
}

func TestMiscViewHostLookup(t *testing.T) {
	p := newFixed()
	p.ResolveHostName = func(context.Context) (string, error) { return "box.example.org", nil }
	post := newPoster()
	v := NewMiscView(Deps{Provider: p, Poster: post.post})
	defer v.Close()

	assert.Equal(t, "sysinspect", miscCell(v, platform.MiscAppName))
	assert.Equal(t, SentinelUnknown, miscCell(v, platform.MiscUptime))
	assert.Equal(t, SentinelEvaluating, miscCell(v, platform.MiscFullHostName))

	msg := post.next(t)
	assert.True(t, v.Apply(msg))
	assert.Equal(t, "box.example.org", miscCell(v, platform.MiscFullHostName))

	// The row no longer awaits a result.
	assert.False(t, v.Apply(msg))
}

func TestMiscViewIgnoresStaleLookup(t *testing.T) {
	p := newFixed()
	release := make(chan struct{})
	p.ResolveHostName = func(ctx context.Context) (string, error) {
		select {
		case <-release:
			return "fresh.example.org", nil
		case <-ctx.Done():
			return "stale.example.org", nil
		}
	}
	post := newPoster()
	v := NewMiscView(Deps{Provider: p, Poster: post.post})
	defer v.Close()

	v.Refresh()
	close(release)

	got := map[string]HostNameMsg{}
	for range 2 {
		m := post.next(t)
		got[m.Value] = m
	}
	assert.False(t, v.Apply(got["stale.example.org"]))
	assert.Equal(t, SentinelEvaluating, miscCell(v, platform.MiscFullHostName))
	assert.True(t, v.Apply(got["fresh.example.org"]))
	assert.Equal(t, "fresh.example.org", miscCell(v, platform.MiscFullHostName))
}

func TestMiscViewLookupFailureAndClose(t *testing.T) {
	p := newFixed()
	post := newPoster()
	v := NewMiscView(Deps{Provider: p, Poster: post.post})

	msg := post.next(t)
	assert.ErrorIs(t, msg.Err, platform.ErrUnsupported)
	assert.True(t, v.Apply(msg))
	assert.Equal(t, SentinelUnknown, miscCell(v, platform.MiscFullHostName))

	v.Refresh()
	msg = post.next(t)
	v.Close()
	assert.False(t, v.Apply(msg))
}

func TestMiscViewWithoutPoster(t *testing.T) {
	v := NewMiscView(Deps{Provider: newFixed(), Log: discard()})
	defer v.Close()
	assert.Equal(t, SentinelEvaluating, miscCell(v, platform.MiscFullHostName))
}

func discard() logr.Logger { return logr.Discard() }
