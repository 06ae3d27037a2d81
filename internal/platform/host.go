package platform

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/elastic/go-sysinfo"
	"github.com/elastic/go-sysinfo/types"
	"github.com/go-logr/logr"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	defaultCommandTimeout = 2 * time.Second
	// Outputs of helper commands are reused within one refresh pass.
	commandCacheTTL = time.Second
)

// CommandRunner executes a helper program and returns its standard output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// HostOptions configures a Host.
type HostOptions struct {
	Log            logr.Logger
	CommandTimeout time.Duration
	// Run overrides how helper programs (gsettings, xrandr, xrdb) are executed.
	Run CommandRunner
	// Output is the terminal queried for its colours. Defaults to stdout.
	Output *termenv.Output
	// Getenv overrides environment lookups.
	Getenv func(string) string
}

type cachedOutput struct {
	at  time.Time
	out string
	err error
}

type gsettingsKey struct {
	schema string
	key    string
}

// Host queries the running system.
type Host struct {
	log     logr.Logger
	run     CommandRunner
	timeout time.Duration
	getenv  func(string) string

	mu    sync.Mutex
	cache map[string]cachedOutput

	termFG, termBG     Colour
	termFGOK, termBGOK bool
	profile            string
	dark               bool

	sysHost func() (types.Host, error)
	static  func() staticFacts
}

// NewHost captures the terminal state and prepares lazy OS queries. It must
// be called before a TUI takes over the terminal.
func NewHost(opts HostOptions) *Host {
	h := &Host{
		log:     opts.Log,
		run:     opts.Run,
		timeout: opts.CommandTimeout,
		getenv:  opts.Getenv,
		cache:   make(map[string]cachedOutput),
	}
	if h.log.GetSink() == nil {
		h.log = logr.Discard()
	}
	if h.run == nil {
		h.run = execRunner
	}
	if h.timeout <= 0 {
		h.timeout = defaultCommandTimeout
	}
	if h.getenv == nil {
		h.getenv = os.Getenv
	}

	out := opts.Output
	if out == nil {
		out = termenv.NewOutput(os.Stdout, termenv.WithColorCache(true))
	}
	h.termFG, h.termFGOK = fromTermenv(out.ForegroundColor())
	h.termBG, h.termBGOK = fromTermenv(out.BackgroundColor())
	h.profile = out.Profile.Name()
	h.dark = out.HasDarkBackground()

	h.sysHost = sync.OnceValues(func() (types.Host, error) { return sysinfo.Host() })
	h.static = sync.OnceValue(h.collectStatic)
	return h
}

func fromTermenv(c termenv.Color) (Colour, bool) {
	if c == nil {
		return Colour{}, false
	}
	if _, none := c.(termenv.NoColor); none {
		return Colour{}, false
	}
	r, g, b := termenv.ConvertToRGB(c).RGB255()
	return RGB(r, g, b), true
}

// command runs a helper program with the configured timeout, reusing a
// recent result for identical invocations.
func (h *Host) command(name string, args ...string) (string, error) {
	key := name + " " + strings.Join(args, " ")

	h.mu.Lock()
	if c, ok := h.cache[key]; ok && time.Since(c.at) < commandCacheTTL {
		h.mu.Unlock()
		return c.out, c.err
	}
	h.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	raw, err := h.run(ctx, name, args...)
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			err = fmt.Errorf("%s: %w", name, ErrUnsupported)
		} else {
			err = fmt.Errorf("%s: %w", key, err)
		}
		h.log.V(1).Info("helper command failed", "command", key, "error", err.Error())
	}

	h.mu.Lock()
	h.cache[key] = cachedOutput{at: time.Now(), out: string(raw), err: err}
	h.mu.Unlock()
	return string(raw), err
}

func (h *Host) gsettings(k gsettingsKey) (string, error) {
	out, err := h.command("gsettings", "get", k.schema, k.key)
	if err != nil {
		return "", err
	}
	return parseGSettingsValue(out), nil
}

// SessionType returns XDG_SESSION_TYPE, e.g. "x11", "wayland" or "tty".
func (h *Host) SessionType() string {
	return h.getenv("XDG_SESSION_TYPE")
}

var colourKeys = map[ColourID]gsettingsKey{
	ColourAccent:           {"org.gnome.desktop.interface", "accent-color"},
	ColourDesktopPrimary:   {"org.gnome.desktop.background", "primary-color"},
	ColourDesktopSecondary: {"org.gnome.desktop.background", "secondary-color"},
}

// GNOME accent colour names and their values.
var accentPalette = map[string]Colour{
	"blue":   RGB(0x35, 0x84, 0xe4),
	"teal":   RGB(0x21, 0x90, 0xa4),
	"green":  RGB(0x3a, 0x94, 0x4a),
	"yellow": RGB(0xc8, 0x88, 0x00),
	"orange": RGB(0xed, 0x5b, 0x00),
	"red":    RGB(0xe6, 0x2d, 0x42),
	"pink":   RGB(0xd5, 0x61, 0x99),
	"purple": RGB(0x91, 0x41, 0xac),
	"slate":  RGB(0x6f, 0x83, 0x96),
}

// Colour returns a system colour.
func (h *Host) Colour(id ColourID) (Colour, error) {
	switch {
	case id == ColourTerminalForeground:
		if !h.termFGOK {
			return Colour{}, ErrUnsupported
		}
		return h.termFG, nil
	case id == ColourTerminalBackground:
		if !h.termBGOK {
			return Colour{}, ErrUnsupported
		}
		return h.termBG, nil
	case id == ColourXForeground:
		return h.xColour("foreground")
	case id == ColourXBackground:
		return h.xColour("background")
	case id == ColourXCursor:
		return h.xColour("cursorColor")
	case id >= ColourXPalette0 && id < ColourXPalette0+XPaletteSize:
		return h.xColour(fmt.Sprintf("color%d", id-ColourXPalette0))
	}

	k, ok := colourKeys[id]
	if !ok {
		return Colour{}, fmt.Errorf("colour %d: %w", id, ErrUnsupported)
	}
	v, err := h.gsettings(k)
	if err != nil {
		return Colour{}, err
	}
	if c, ok := accentPalette[v]; ok {
		return c, nil
	}
	return ParseColour(v)
}

func (h *Host) xColour(key string) (Colour, error) {
	out, err := h.command("xrdb", "-query")
	if err != nil {
		return Colour{}, err
	}
	v, ok := lookupXResource(parseXResources(out), key)
	if !ok {
		return Colour{}, fmt.Errorf("X resource %s: %w", key, ErrUnsupported)
	}
	return ParseColour(v)
}

var fontKeys = map[FontID]gsettingsKey{
	FontInterface: {"org.gnome.desktop.interface", "font-name"},
	FontDocument:  {"org.gnome.desktop.interface", "document-font-name"},
	FontMonospace: {"org.gnome.desktop.interface", "monospace-font-name"},
	FontTitlebar:  {"org.gnome.desktop.wm.preferences", "titlebar-font"},
}

// Font returns a system font.
func (h *Host) Font(id FontID) (Font, error) {
	k, ok := fontKeys[id]
	if !ok {
		return Font{}, fmt.Errorf("font %d: %w", id, ErrUnsupported)
	}
	v, err := h.gsettings(k)
	if err != nil {
		return Font{}, err
	}
	return ParseFontDescription(v)
}

var metricKeys = map[MetricID]gsettingsKey{
	MetricCursorSize:         {"org.gnome.desktop.interface", "cursor-size"},
	MetricCursorBlinkTime:    {"org.gnome.desktop.interface", "cursor-blink-time"},
	MetricCursorBlinkTimeout: {"org.gnome.desktop.interface", "cursor-blink-timeout"},
	MetricDoubleClickTime:    {"org.gnome.desktop.peripherals.mouse", "double-click"},
	MetricDragThreshold:      {"org.gnome.desktop.peripherals.mouse", "drag-threshold"},
	MetricSwapButtons:        {"org.gnome.desktop.peripherals.mouse", "left-handed"},
	MetricScalingFactor:      {"org.gnome.desktop.interface", "scaling-factor"},
	MetricVisualBell:         {"org.gnome.desktop.wm.preferences", "visual-bell"},
}

// Metric returns an integer system metric.
func (h *Host) Metric(id MetricID) (int, error) {
	switch id {
	case MetricTextScalingPercent:
		v, err := h.gsettings(gsettingsKey{"org.gnome.desktop.interface", "text-scaling-factor"})
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("text-scaling-factor %q: %w", v, err)
		}
		return int(math.Round(f * 100)), nil
	case MetricScreenWidth, MetricScreenHeight:
		displays, err := h.Displays()
		if err != nil {
			return 0, err
		}
		for _, d := range displays {
			if d.Primary || len(displays) == 1 {
				if id == MetricScreenWidth {
					return d.Geometry.Width, nil
				}
				return d.Geometry.Height, nil
			}
		}
		return 0, ErrUnsupported
	case MetricTerminalColumns, MetricTerminalRows:
		w, ht, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			return 0, fmt.Errorf("terminal size: %w", ErrUnsupported)
		}
		if id == MetricTerminalColumns {
			return w, nil
		}
		return ht, nil
	}

	k, ok := metricKeys[id]
	if !ok {
		return 0, fmt.Errorf("metric %d: %w", id, ErrUnsupported)
	}
	v, err := h.gsettings(k)
	if err != nil {
		return 0, err
	}
	return gsettingsInt(v)
}

// Displays lists the active X outputs. Depth and work area come from
// xdpyinfo and xprop when they are installed.
func (h *Host) Displays() ([]Display, error) {
	out, err := h.command("xrandr", "--query")
	if err != nil {
		return nil, err
	}
	displays := parseXrandr(out)

	depth := 0
	if info, err := h.command("xdpyinfo"); err == nil {
		depth = parseRootDepth(info)
	}
	work, haveWork := Rect{}, false
	if prop, err := h.command("xprop", "-root", "_NET_WORKAREA"); err == nil {
		work, haveWork = parseWorkArea(prop)
	}

	for i := range displays {
		displays[i].Depth = depth
		if haveWork {
			displays[i].ClientArea = displays[i].Geometry.Intersect(work)
		}
	}
	return displays, nil
}

// SystemOption looks up a runtime-affecting environment option.
func (h *Host) SystemOption(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Environ returns the process environment.
func (h *Host) Environ() ([]string, error) {
	env := os.Environ()
	if env == nil {
		return nil, errors.New("environment is unavailable")
	}
	return env, nil
}

// BuildInfo returns the build information embedded in the binary.
func (h *Host) BuildInfo() (*debug.BuildInfo, bool) {
	return debug.ReadBuildInfo()
}

// FullHostName resolves the fully-qualified host name. It may block on DNS
// until ctx is done.
func (h *Host) FullHostName(ctx context.Context) (string, error) {
	sh, err := h.sysHost()
	if err != nil {
		return "", fmt.Errorf("host info: %w", err)
	}
	return sh.FQDNWithContext(ctx)
}
