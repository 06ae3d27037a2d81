// Package inspector composes the category views into one window model. It
// owns the refresh policy: manual refreshes run at once, OS change
// notifications are coalesced by a debounce deadline and then refresh
// every view.
//
// An Inspector is owned by one goroutine. Timers are not started here; the
// caller schedules a callback for the deadline returned by Notify and hands
// the sequence number back to DeadlineReached.
package inspector

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/nvm/sysinspect/internal/config"
	"github.com/nvm/sysinspect/internal/events"
	"github.com/nvm/sysinspect/internal/notify"
	"github.com/nvm/sysinspect/internal/platform"
	"github.com/nvm/sysinspect/internal/report"
	"github.com/nvm/sysinspect/internal/sysview"
)

const (
	// DefaultRefreshDelay is the debounce delay after a notification.
	DefaultRefreshDelay = config.DefaultRefreshDelay
	// DefaultLogLimit bounds the number of log lines kept.
	DefaultLogLimit = 500

	logTimeFormat = time.ANSIC
)

// ErrNoViews is returned by New when the flags select no view.
var ErrNoViews = errors.New("at least one view must be selected")

// Flags select the views and the refresh behaviour.
type Flags uint32

const (
	AutoRefresh Flags = 1 << iota
	ViewColours
	ViewFonts
	ViewMetrics
	ViewDisplays
	ViewPaths
	ViewOptions
	ViewEnvironment
	ViewMisc
	ViewBuild

	AllViews = ViewColours | ViewFonts | ViewMetrics | ViewDisplays | ViewPaths |
		ViewOptions | ViewEnvironment | ViewMisc | ViewBuild
	DefaultFlags = AutoRefresh | AllViews
)

var viewFlags = []struct {
	flag     Flags
	category sysview.Category
	name     string
}{
	{ViewColours, sysview.CategoryColours, "colours"},
	{ViewFonts, sysview.CategoryFonts, "fonts"},
	{ViewMetrics, sysview.CategoryMetrics, "metrics"},
	{ViewDisplays, sysview.CategoryDisplays, "displays"},
	{ViewPaths, sysview.CategoryPaths, "paths"},
	{ViewOptions, sysview.CategoryOptions, "options"},
	{ViewEnvironment, sysview.CategoryEnvironment, "environment"},
	{ViewMisc, sysview.CategoryMisc, "misc"},
	{ViewBuild, sysview.CategoryBuild, "build"},
}

// ParseCategories converts category names to view flags. "all" selects
// every view.
func ParseCategories(names []string) (Flags, error) {
	var f Flags
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if name == "all" {
			f |= AllViews
			continue
		}
		found := false
		for _, vf := range viewFlags {
			if vf.name == name {
				f |= vf.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown category %q", name)
		}
	}
	return f, nil
}

// CategoryNames lists the names accepted by ParseCategories, in tab order.
func CategoryNames() []string {
	names := make([]string, len(viewFlags))
	for i, vf := range viewFlags {
		names[i] = vf.name
	}
	return names
}

// State is the state of the debounce state machine.
type State int

const (
	StateIdle State = iota
	StatePendingRefresh
)

func (s State) String() string {
	if s == StatePendingRefresh {
		return "PendingRefresh"
	}
	return "Idle"
}

// Options configure an Inspector.
type Options struct {
	Flags    Flags
	Provider platform.Provider
	// Poster delivers background results; they come back through ApplyAsync.
	Poster            sysview.Poster
	Bus               *events.Bus
	Log               logr.Logger
	// RefreshDelay is the debounce delay; zero selects DefaultRefreshDelay.
	RefreshDelay      time.Duration
	HostLookupTimeout time.Duration
	Now               func() time.Time
	LogLimit          int
}

// Inspector is the top-level window model.
type Inspector struct {
	views       []sysview.View
	autoRefresh bool
	delay       time.Duration
	bus         *events.Bus
	log         logr.Logger
	now         func() time.Time

	state     State
	seq       uint64
	deadline  time.Time
	refreshes int

	entries []string
	limit   int
}

// New creates the selected views, each populated by its first refresh.
func New(opts Options) (*Inspector, error) {
	if opts.Flags&AllViews == 0 {
		return nil, ErrNoViews
	}
	if opts.Provider == nil {
		return nil, errors.New("inspector requires a platform provider")
	}
	if opts.Log.GetSink() == nil {
		opts.Log = logr.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RefreshDelay <= 0 {
		opts.RefreshDelay = DefaultRefreshDelay
	}
	if opts.LogLimit <= 0 {
		opts.LogLimit = DefaultLogLimit
	}

	in := &Inspector{
		autoRefresh: opts.Flags&AutoRefresh != 0,
		delay:       opts.RefreshDelay,
		bus:         opts.Bus,
		log:         opts.Log.WithName("inspector"),
		now:         opts.Now,
		limit:       opts.LogLimit,
	}

	deps := sysview.Deps{
		Provider:          opts.Provider,
		Log:               opts.Log,
		Poster:            opts.Poster,
		HostLookupTimeout: opts.HostLookupTimeout,
	}
	for _, vf := range viewFlags {
		if opts.Flags&vf.flag == 0 {
			continue
		}
		v, err := sysview.New(vf.category, deps)
		if err != nil {
			in.Close()
			return nil, fmt.Errorf("create %s view: %w", vf.name, err)
		}
		in.views = append(in.views, v)
	}
	return in, nil
}

// Views returns the views in tab order.
func (in *Inspector) Views() []sysview.View { return in.views }

// AutoRefresh reports whether notifications trigger refreshes.
func (in *Inspector) AutoRefresh() bool { return in.autoRefresh }

// SetAutoRefresh turns automatic refreshes on or off. Turning them off
// drops a pending refresh.
func (in *Inspector) SetAutoRefresh(on bool) {
	in.autoRefresh = on
	if !on && in.state == StatePendingRefresh {
		in.state = StateIdle
		in.seq++
	}
}

// RefreshDelay returns the debounce delay.
func (in *Inspector) RefreshDelay() time.Duration { return in.delay }

// SetRefreshDelay changes the delay used by later notifications. A delay
// that is not positive is ignored.
func (in *Inspector) SetRefreshDelay(d time.Duration) {
	if d > 0 {
		in.delay = d
	}
}

// State returns the debounce state.
func (in *Inspector) State() State { return in.state }

// Deadline returns when the pending refresh is due.
func (in *Inspector) Deadline() (time.Time, bool) {
	return in.deadline, in.state == StatePendingRefresh
}

// Refreshes returns how many refreshes ran since New.
func (in *Inspector) Refreshes() int { return in.refreshes }

// Refresh re-reads every view at once. A pending debounced refresh is
// still honoured when its deadline arrives.
func (in *Inspector) Refresh() {
	for _, v := range in.views {
		v.Refresh()
	}
	in.refreshes++
	in.Log("System values were refreshed.")
	if in.bus != nil {
		in.bus.Publish(events.NewRefreshedEvent(len(in.views)))
	}
}

// Notify records an OS change notification. With auto-refresh on it
// (re)arms the debounce deadline and returns its sequence number; the
// caller must call DeadlineReached(seq) after RefreshDelay.
func (in *Inspector) Notify(n notify.Notification) (seq uint64, armed bool) {
	msg := n.Kind.Label() + " notification arrived."
	if n.Detail != "" {
		msg = fmt.Sprintf("%s notification arrived: %s", n.Kind.Label(), n.Detail)
	}
	in.Log(msg)

	if !in.autoRefresh {
		return 0, false
	}
	in.seq++
	in.state = StatePendingRefresh
	in.deadline = in.now().Add(in.delay)
	return in.seq, true
}

// DeadlineReached refreshes when seq belongs to the latest notification.
// Deadlines of superseded notifications are ignored.
func (in *Inspector) DeadlineReached(seq uint64) bool {
	if in.state != StatePendingRefresh || seq != in.seq {
		return false
	}
	in.state = StateIdle
	in.Refresh()
	return true
}

// ApplyAsync hands a background result to the view that requested it and
// reports whether it was used.
func (in *Inspector) ApplyAsync(msg any) bool {
	switch m := msg.(type) {
	case sysview.HostNameMsg:
		for _, v := range in.views {
			if mv, ok := v.(*sysview.MiscView); ok {
				return mv.Apply(m)
			}
		}
	}
	return false
}

// Values exports every view: a title line, a rule and the view's lines,
// with a blank line between views.
func (in *Inspector) Values(sep string) []string {
	titles := make([]string, len(in.views))
	values := make([][]string, len(in.views))
	for i, v := range in.views {
		titles[i] = v.Title()
		values[i] = v.Values(sep)
	}
	return report.Build(titles, values)
}

// Log appends a timestamped line to the window log.
func (in *Inspector) Log(msg string) {
	line := in.now().Format(logTimeFormat) + ": " + msg
	in.entries = append(in.entries, line)
	if over := len(in.entries) - in.limit; over > 0 {
		in.entries = append(in.entries[:0], in.entries[over:]...)
	}
	in.log.Info(msg)
}

// LogLines returns a copy of the window log.
func (in *Inspector) LogLines() []string {
	return append([]string(nil), in.entries...)
}

// ClearLog empties the window log.
func (in *Inspector) ClearLog() { in.entries = in.entries[:0] }

// Close stops background work of every view.
func (in *Inspector) Close() {
	for _, v := range in.views {
		v.Close()
	}
	in.state = StateIdle
}
