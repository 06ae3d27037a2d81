// Package catalog holds the static tables naming and describing every value
// sysinspect displays. The tables are never mutated.
package catalog

import (
	"fmt"

	"github.com/nvm/sysinspect/internal/platform"
)

// Entry pairs a platform key with its symbolic name and a human description.
type Entry[K comparable] struct {
	Key         K
	Name        string
	Description string
	// DeprecatedOn lists session types (XDG_SESSION_TYPE values) on which
	// the value is not meaningful and should be hidden.
	DeprecatedOn []string
}

// IsDeprecatedOn reports whether the entry is hidden for the session type.
func (e Entry[K]) IsDeprecatedOn(session string) bool {
	for _, s := range e.DeprecatedOn {
		if s == session {
			return true
		}
	}
	return false
}

// Colours lists the system colours.
var Colours = append([]Entry[platform.ColourID]{
	{Key: platform.ColourTerminalForeground, Name: "terminal-foreground", Description: "Default foreground colour of the controlling terminal."},
	{Key: platform.ColourTerminalBackground, Name: "terminal-background", Description: "Default background colour of the controlling terminal."},
	{Key: platform.ColourAccent, Name: "accent-color", Description: "Desktop accent colour used for selections and focused controls."},
	{Key: platform.ColourDesktopPrimary, Name: "background-primary-color", Description: "Primary colour of the desktop background."},
	{Key: platform.ColourDesktopSecondary, Name: "background-secondary-color", Description: "Secondary colour of a shaded desktop background."},
	{Key: platform.ColourXForeground, Name: "xresources-foreground", Description: "X resource foreground used by X11 terminals and toolkits.", DeprecatedOn: []string{"wayland"}},
	{Key: platform.ColourXBackground, Name: "xresources-background", Description: "X resource background used by X11 terminals and toolkits.", DeprecatedOn: []string{"wayland"}},
	{Key: platform.ColourXCursor, Name: "xresources-cursorColor", Description: "X resource text cursor colour.", DeprecatedOn: []string{"wayland"}},
}, paletteEntries()...)

var paletteNames = [platform.XPaletteSize]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright black", "bright red", "bright green", "bright yellow",
	"bright blue", "bright magenta", "bright cyan", "bright white",
}

func paletteEntries() []Entry[platform.ColourID] {
	entries := make([]Entry[platform.ColourID], 0, platform.XPaletteSize)
	for i := range platform.XPaletteSize {
		entries = append(entries, Entry[platform.ColourID]{
			Key:          platform.ColourXPalette0 + platform.ColourID(i),
			Name:         fmt.Sprintf("xresources-color%d", i),
			Description:  fmt.Sprintf("X resource ANSI palette entry %d (%s).", i, paletteNames[i]),
			DeprecatedOn: []string{"wayland"},
		})
	}
	return entries
}

// Fonts lists the system fonts.
var Fonts = []Entry[platform.FontID]{
	{Key: platform.FontInterface, Name: "font-name", Description: "Default font for user interface objects such as menus and dialogs."},
	{Key: platform.FontDocument, Name: "document-font-name", Description: "Font used for reading documents."},
	{Key: platform.FontMonospace, Name: "monospace-font-name", Description: "Fixed-pitch font used by terminals and editors."},
	{Key: platform.FontTitlebar, Name: "titlebar-font", Description: "Font used in window title bars."},
}

// Metrics lists the integer system metrics.
var Metrics = []Entry[platform.MetricID]{
	{Key: platform.MetricCursorSize, Name: "cursor-size", Description: "Size of the mouse cursor in pixels."},
	{Key: platform.MetricCursorBlinkTime, Name: "cursor-blink-time", Description: "Length of the text cursor blink cycle in milliseconds."},
	{Key: platform.MetricCursorBlinkTimeout, Name: "cursor-blink-timeout", Description: "Seconds after which the text cursor stops blinking."},
	{Key: platform.MetricDoubleClickTime, Name: "double-click", Description: "Maximum time in milliseconds between clicks of a double click."},
	{Key: platform.MetricDragThreshold, Name: "drag-threshold", Description: "Distance in pixels the pointer must move before a drag starts."},
	{Key: platform.MetricSwapButtons, Name: "left-handed", Description: "Nonzero if the meanings of the left and right mouse buttons are swapped."},
	{Key: platform.MetricScalingFactor, Name: "scaling-factor", Description: "Integer window scaling factor, 0 for automatic."},
	{Key: platform.MetricTextScalingPercent, Name: "text-scaling-percent", Description: "Text scaling applied on top of the font size, in percent."},
	{Key: platform.MetricVisualBell, Name: "visual-bell", Description: "Nonzero if the system bell is shown as a visual flash."},
	{Key: platform.MetricScreenWidth, Name: "screen-width", Description: "Width of the primary display in pixels."},
	{Key: platform.MetricScreenHeight, Name: "screen-height", Description: "Height of the primary display in pixels."},
	{Key: platform.MetricTerminalColumns, Name: "terminal-columns", Description: "Width of the controlling terminal in character cells."},
	{Key: platform.MetricTerminalRows, Name: "terminal-rows", Description: "Height of the controlling terminal in character cells."},
}

// DisplayParam identifies one row of the displays view.
type DisplayParam int

const (
	DisplayName DisplayParam = iota
	DisplayIsPrimary
	DisplayResolution
	DisplayBitsPerPixel
	DisplayRefreshFrequency
	DisplayGeometryCoordinates
	DisplayGeometrySize
	DisplayClientAreaCoordinates
	DisplayClientAreaSize
	DisplayPPI
)

// DisplayParams lists the fixed parameter rows of the displays view.
var DisplayParams = []Entry[DisplayParam]{
	{Key: DisplayName, Name: "Name"},
	{Key: DisplayIsPrimary, Name: "Is Primary"},
	{Key: DisplayResolution, Name: "Resolution"},
	{Key: DisplayBitsPerPixel, Name: "Bits Per Pixel"},
	{Key: DisplayRefreshFrequency, Name: "Refresh Frequency (Hz)"},
	{Key: DisplayGeometryCoordinates, Name: "Geometry Coordinates (left, top; right, bottom)"},
	{Key: DisplayGeometrySize, Name: "Geometry Size"},
	{Key: DisplayClientAreaCoordinates, Name: "Client Area Coordinates (left, top; right, bottom)"},
	{Key: DisplayClientAreaSize, Name: "Client Area Size"},
	{Key: DisplayPPI, Name: "Pixels Per Inch"},
}

// StandardPaths lists the standard directories.
var StandardPaths = []Entry[platform.PathID]{
	{Key: platform.PathHome, Name: "Home"},
	{Key: platform.PathConfig, Name: "Config"},
	{Key: platform.PathCache, Name: "Cache"},
	{Key: platform.PathData, Name: "Data"},
	{Key: platform.PathState, Name: "State"},
	{Key: platform.PathRuntime, Name: "Runtime"},
	{Key: platform.PathTemp, Name: "Temp"},
	{Key: platform.PathExecutable, Name: "Executable"},
	{Key: platform.PathWorkingDir, Name: "Working Directory"},
	{Key: platform.PathDesktop, Name: "Desktop"},
	{Key: platform.PathDocuments, Name: "Documents"},
	{Key: platform.PathDownloads, Name: "Downloads"},
	{Key: platform.PathMusic, Name: "Music"},
	{Key: platform.PathPictures, Name: "Pictures"},
	{Key: platform.PathVideos, Name: "Videos"},
	{Key: platform.PathTemplates, Name: "Templates"},
	{Key: platform.PathPublicShare, Name: "Public Share"},
}

// SystemOptions lists the environment options that change how the Go
// runtime, the terminal and the desktop toolkits behave.
var SystemOptions = []string{
	"GOMAXPROCS",
	"GOGC",
	"GOMEMLIMIT",
	"GOTRACEBACK",
	"GODEBUG",
	"TERM",
	"COLORTERM",
	"NO_COLOR",
	"CLICOLOR",
	"CLICOLOR_FORCE",
	"TZ",
	"DISPLAY",
	"WAYLAND_DISPLAY",
	"GDK_BACKEND",
	"GDK_SCALE",
	"GDK_DPI_SCALE",
	"GTK_THEME",
	"QT_QPA_PLATFORM",
	"QT_SCALE_FACTOR",
	"QT_AUTO_SCREEN_SCALE_FACTOR",
}

// MiscParams lists the miscellaneous facts.
var MiscParams = []Entry[platform.MiscID]{
	{Key: platform.MiscAppName, Name: "App Name"},
	{Key: platform.MiscExecutable, Name: "Executable"},
	{Key: platform.MiscProcessID, Name: "Process ID"},
	{Key: platform.MiscGoVersion, Name: "Go Version"},
	{Key: platform.MiscProcess64Bit, Name: "64-bit Process"},
	{Key: platform.MiscHasStderr, Name: "Stderr Is Terminal"},
	{Key: platform.MiscPathSeparator, Name: "Path Separator"},
	{Key: platform.MiscUserID, Name: "User Id"},
	{Key: platform.MiscUserName, Name: "User Name"},
	{Key: platform.MiscSystemEncoding, Name: "System Encoding"},
	{Key: platform.MiscSystemLanguage, Name: "System Language"},
	{Key: platform.MiscHostName, Name: "Host Name"},
	{Key: platform.MiscFullHostName, Name: "Full Host Name"},
	{Key: platform.MiscOSDescription, Name: "OS Description"},
	{Key: platform.MiscOSVersion, Name: "OS Version"},
	{Key: platform.MiscKernelVersion, Name: "Kernel Version"},
	{Key: platform.MiscArchitecture, Name: "Architecture"},
	{Key: platform.MiscPlatform64Bit, Name: "64-bit Platform"},
	{Key: platform.MiscLittleEndian, Name: "Little Endian"},
	{Key: platform.MiscVirtualization, Name: "Virtualization"},
	{Key: platform.MiscContainerized, Name: "Containerized"},
	{Key: platform.MiscCPUModel, Name: "CPU Model"},
	{Key: platform.MiscCPUCores, Name: "CPU Cores"},
	{Key: platform.MiscCPUFeatures, Name: "CPU Features"},
	{Key: platform.MiscGraphics, Name: "Graphics"},
	{Key: platform.MiscTotalMemory, Name: "Total Memory"},
	{Key: platform.MiscUptime, Name: "Uptime"},
	{Key: platform.MiscTimezone, Name: "Timezone"},
	{Key: platform.MiscColourProfile, Name: "Terminal Colour Profile"},
	{Key: platform.MiscDarkBackground, Name: "Dark Terminal Background"},
	{Key: platform.MiscSessionType, Name: "Session Type"},
	{Key: platform.MiscDesktop, Name: "Desktop"},
}

// BuildSettings lists the build settings reported by the build view. The
// first three are synthesized from the module information; the rest are
// keys of debug.BuildInfo.Settings.
var BuildSettings = []string{
	"go",
	"path",
	"mod",
	"-buildmode",
	"-compiler",
	"-tags",
	"-trimpath",
	"-race",
	"-ldflags",
	"CGO_ENABLED",
	"GOARCH",
	"GOOS",
	"GOAMD64",
	"GOARM64",
	"vcs",
	"vcs.revision",
	"vcs.time",
	"vcs.modified",
}
