package inspector

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nvm/sysinspect/internal/config"
	"github.com/nvm/sysinspect/internal/events"
	"github.com/nvm/sysinspect/internal/notify"
	"github.com/nvm/sysinspect/internal/platform"
	"github.com/nvm/sysinspect/internal/report"
	"github.com/nvm/sysinspect/internal/sysview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newProvider() *platform.Fixed {
	return &platform.Fixed{
		Session: "wayland",
		Colours: map[platform.ColourID]platform.Colour{platform.ColourAccent: platform.RGB(1, 2, 3)},
		Env:     []string{"B=2", "A=1"},
		DisplayList: []platform.Display{
			{Name: "eDP-1", Geometry: platform.Rect{Width: 800, Height: 600}},
		},
	}
}

func newInspector(t *testing.T, flags Flags, c *clock) *Inspector {
	t.Helper()
	in, err := New(Options{
		Flags:        flags,
		Provider:     newProvider(),
		Poster:       func(any) {},
		RefreshDelay: DefaultRefreshDelay,
		Now:          c.now,
	})
	require.NoError(t, err)
	t.Cleanup(in.Close)
	return in
}

func TestNewRequiresViews(t *testing.T) {
	_, err := New(Options{Flags: AutoRefresh, Provider: newProvider()})
	assert.ErrorIs(t, err, ErrNoViews)

	_, err = New(Options{Flags: ViewColours})
	assert.Error(t, err)
}

func TestNewSelectsViewsInTabOrder(t *testing.T) {
	in := newInspector(t, ViewEnvironment|ViewColours, &clock{})
	require.Len(t, in.Views(), 2)
	assert.Equal(t, sysview.CategoryColours, in.Views()[0].Category())
	assert.Equal(t, sysview.CategoryEnvironment, in.Views()[1].Category())
	assert.False(t, in.AutoRefresh())
}

func TestParseCategories(t *testing.T) {
	f, err := ParseCategories([]string{"Colours", " misc ", ""})
	require.NoError(t, err)
	assert.Equal(t, ViewColours|ViewMisc, f)

	f, err = ParseCategories([]string{"all"})
	require.NoError(t, err)
	assert.Equal(t, AllViews, f)

	_, err = ParseCategories([]string{"printers"})
	assert.Error(t, err)

	assert.Equal(t, config.CategoryNames, CategoryNames())
}

func TestBurstOfNotificationsRefreshesOnce(t *testing.T) {
	c := &clock{t: time.Unix(1000, 0)}
	in := newInspector(t, DefaultFlags, c)

	var seqs []uint64
	for i := range 10 {
		c.t = c.t.Add(50 * time.Millisecond)
		seq, armed := in.Notify(notify.Notification{Kind: notify.KindSetting, Detail: "burst"})
		require.True(t, armed, "notification %d", i)
		seqs = append(seqs, seq)
		assert.Equal(t, StatePendingRefresh, in.State())
		deadline, pending := in.Deadline()
		assert.True(t, pending)
		assert.Equal(t, c.t.Add(DefaultRefreshDelay), deadline)
	}

	// Every armed timer fires; only the last one counts.
	refreshed := 0
	for _, seq := range seqs {
		if in.DeadlineReached(seq) {
			refreshed++
		}
	}
	assert.Equal(t, 1, refreshed)
	assert.Equal(t, 1, in.Refreshes())
	assert.Equal(t, StateIdle, in.State())
}

func TestSpacedNotificationsRefreshEachTime(t *testing.T) {
	c := &clock{t: time.Unix(1000, 0)}
	in := newInspector(t, DefaultFlags, c)

	for range 3 {
		seq, armed := in.Notify(notify.Notification{Kind: notify.KindDisplay})
		require.True(t, armed)
		c.t = c.t.Add(2 * DefaultRefreshDelay)
		assert.True(t, in.DeadlineReached(seq))
	}
	assert.Equal(t, 3, in.Refreshes())
}

func TestAutoRefreshDisabled(t *testing.T) {
	in := newInspector(t, AllViews, &clock{t: time.Unix(0, 0)})

	for range 5 {
		seq, armed := in.Notify(notify.Notification{Kind: notify.KindTheme})
		assert.False(t, armed)
		assert.False(t, in.DeadlineReached(seq))
	}
	assert.Equal(t, 0, in.Refreshes())
	assert.Len(t, in.LogLines(), 5)

	in.Refresh()
	assert.Equal(t, 1, in.Refreshes())
}

func TestSetAutoRefreshDropsPendingRefresh(t *testing.T) {
	in := newInspector(t, DefaultFlags, &clock{})
	seq, armed := in.Notify(notify.Notification{Kind: notify.KindDPI})
	require.True(t, armed)

	in.SetAutoRefresh(false)
	assert.Equal(t, StateIdle, in.State())
	assert.False(t, in.DeadlineReached(seq))

	in.SetRefreshDelay(time.Second)
	in.SetRefreshDelay(-1)
	in.SetRefreshDelay(0)
	assert.Equal(t, time.Second, in.RefreshDelay())
}

func TestZeroOptionsKeepDebouncing(t *testing.T) {
	c := &clock{t: time.Unix(1000, 0)}
	in, err := New(Options{Flags: DefaultFlags, Provider: newProvider(), Now: c.now})
	require.NoError(t, err)
	defer in.Close()

	assert.Equal(t, DefaultRefreshDelay, in.RefreshDelay())
	assert.Equal(t, config.DefaultRefreshDelay, DefaultRefreshDelay)

	_, armed := in.Notify(notify.Notification{Kind: notify.KindDisplay})
	require.True(t, armed)
	deadline, pending := in.Deadline()
	assert.True(t, pending)
	assert.Equal(t, c.t.Add(DefaultRefreshDelay), deadline)
}

func TestRefreshLogsAndPublishes(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()
	var published []events.Event
	bus.Subscribe(events.EventValuesRefreshed, func(e events.Event) { published = append(published, e) })

	c := &clock{t: time.Date(2026, time.March, 4, 9, 5, 7, 0, time.UTC)}
	in, err := New(Options{Flags: ViewColours | ViewPaths, Provider: newProvider(), Bus: bus, Now: c.now})
	require.NoError(t, err)
	defer in.Close()

	in.Refresh()
	require.Len(t, published, 1)
	assert.Equal(t, 2, published[0].Data["views"])
	assert.Equal(t, []string{"Wed Mar  4 09:05:07 2026: System values were refreshed."}, in.LogLines())

	in.ClearLog()
	assert.Empty(t, in.LogLines())
}

func TestNotificationLogLine(t *testing.T) {
	in := newInspector(t, AllViews, &clock{t: time.Date(2026, time.March, 4, 9, 5, 7, 0, time.UTC)})
	in.Notify(notify.Notification{Kind: notify.KindSysColour})
	in.Notify(notify.Notification{Kind: notify.KindTheme, Detail: "WRITE"})

	lines := in.LogLines()
	assert.True(t, strings.HasSuffix(lines[0], ": System colour changed notification arrived."))
	assert.True(t, strings.HasSuffix(lines[1], ": Theme changed notification arrived: WRITE"))
}

func TestLogIsBounded(t *testing.T) {
	in, err := New(Options{Flags: ViewPaths, Provider: newProvider(), LogLimit: 3})
	require.NoError(t, err)
	defer in.Close()

	for _, m := range []string{"a", "b", "c", "d", "e"} {
		in.Log(m)
	}
	lines := in.LogLines()
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], ": c"))
	assert.True(t, strings.HasSuffix(lines[2], ": e"))
}

func TestValuesExport(t *testing.T) {
	in := newInspector(t, ViewColours|ViewDisplays|ViewEnvironment, &clock{})
	lines := in.Values("\t")

	assert.Equal(t, "System Colours", lines[0])
	assert.Equal(t, report.Rule, lines[1])
	assert.Equal(t, "Name\tValue", lines[2])

	sections, err := report.Parse(lines, "\t")
	require.NoError(t, err)
	require.Len(t, sections, 3)
	for i, v := range in.Views() {
		assert.Equal(t, v.Title(), sections[i].Title)
		assert.Len(t, sections[i].Rows, len(v.Rows()))
		for j, r := range v.Rows() {
			assert.Equal(t, r.Cells[0], sections[i].Rows[j][0])
		}
	}
	assert.Equal(t, []string{"Parameter", "Display(0)"}, sections[1].Header)
	assert.Equal(t, [][]string{{"A", "1"}, {"B", "2"}}, sections[2].Rows)
}

func TestValuesWithMultilineEnvironmentRoundTrip(t *testing.T) {
	p := newProvider()
	p.Env = []string{"A=1", "FUNC=() {\n\necho hi\n}", "Z=2"}
	in, err := New(Options{Flags: ViewEnvironment | ViewMetrics, Provider: p})
	require.NoError(t, err)
	defer in.Close()

	path := filepath.Join(t.TempDir(), "values.txt")
	lines := in.Values("\t")
	require.NoError(t, report.Save(path, lines))

	loaded, err := report.Load(path)
	require.NoError(t, err)
	assert.Equal(t, lines, loaded)

	sections, err := report.Parse(loaded, "\t")
	require.NoError(t, err)
	require.Len(t, sections, 2)
	env := sections[1]
	assert.Equal(t, in.Views()[1].Title(), env.Title)
	assert.Equal(t, [][]string{{"A", "1"}, {"FUNC", `() {\n\necho hi\n}`}, {"Z", "2"}}, env.Rows)
}

func TestApplyAsyncRoutesHostName(t *testing.T) {
	p := newProvider()
	p.ResolveHostName = func(context.Context) (string, error) { return "box.example.org", nil }
	msgs := make(chan any, 4)

	in, err := New(Options{Flags: ViewMisc | ViewPaths, Provider: p, Poster: func(m any) { msgs <- m }})
	require.NoError(t, err)
	defer in.Close()

	var msg any
	select {
	case msg = <-msgs:
	case <-time.After(2 * time.Second):
		t.Fatal("host name lookup did not finish")
	}
	assert.True(t, in.ApplyAsync(msg))
	assert.False(t, in.ApplyAsync("unrelated"))

	found := false
	for _, r := range in.Views()[1].Rows() {
		if r.Cells[1] == "box.example.org" {
			found = true
		}
	}
	assert.True(t, found)
}
