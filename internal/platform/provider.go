// Package platform answers point queries about the host: desktop colours and
// fonts, input metrics, connected displays, standard paths, runtime options,
// environment variables and miscellaneous OS facts.
//
// All queries go through the Provider interface so the views consuming them
// can be exercised against a Fixed value table in tests. Host is the real
// implementation and is constructed once per process.
package platform

import (
	"context"
	"errors"
	"runtime/debug"
)

// ErrUnsupported is returned when the host cannot supply a value.
var ErrUnsupported = errors.New("value not supported on this host")

// ColourID identifies a system colour.
type ColourID int

const (
	ColourTerminalForeground ColourID = iota
	ColourTerminalBackground
	ColourAccent
	ColourDesktopPrimary
	ColourDesktopSecondary
	ColourXForeground
	ColourXBackground
	ColourXCursor
	// ColourXPalette0 is the first of 16 consecutive Xresources palette entries.
	ColourXPalette0
)

// XPaletteSize is the number of Xresources palette colours following ColourXPalette0.
const XPaletteSize = 16

// FontID identifies a system font.
type FontID int

const (
	FontInterface FontID = iota
	FontDocument
	FontMonospace
	FontTitlebar
)

// MetricID identifies an integer system metric.
type MetricID int

const (
	MetricCursorSize MetricID = iota
	MetricCursorBlinkTime
	MetricCursorBlinkTimeout
	MetricDoubleClickTime
	MetricDragThreshold
	MetricSwapButtons
	MetricScalingFactor
	MetricTextScalingPercent
	MetricVisualBell
	MetricScreenWidth
	MetricScreenHeight
	MetricTerminalColumns
	MetricTerminalRows
)

// PathID identifies a standard path.
type PathID int

const (
	PathHome PathID = iota
	PathConfig
	PathCache
	PathData
	PathState
	PathRuntime
	PathTemp
	PathExecutable
	PathWorkingDir
	PathDesktop
	PathDocuments
	PathDownloads
	PathMusic
	PathPictures
	PathVideos
	PathTemplates
	PathPublicShare
)

// MiscID identifies a miscellaneous platform fact.
type MiscID int

const (
	MiscAppName MiscID = iota
	MiscExecutable
	MiscProcessID
	MiscGoVersion
	MiscProcess64Bit
	MiscHasStderr
	MiscPathSeparator
	MiscUserID
	MiscUserName
	MiscSystemEncoding
	MiscSystemLanguage
	MiscHostName
	MiscFullHostName
	MiscOSDescription
	MiscOSVersion
	MiscKernelVersion
	MiscArchitecture
	MiscPlatform64Bit
	MiscLittleEndian
	MiscVirtualization
	MiscContainerized
	MiscCPUModel
	MiscCPUCores
	MiscCPUFeatures
	MiscGraphics
	MiscTotalMemory
	MiscUptime
	MiscTimezone
	MiscColourProfile
	MiscDarkBackground
	MiscSessionType
	MiscDesktop
)

// Provider answers platform queries. The views call it from one goroutine.
// Displays must also be safe for concurrent use, since the display poller
// calls it from its own goroutine, and FullHostName runs on a background
// worker.
type Provider interface {
	Colour(id ColourID) (Colour, error)
	Font(id FontID) (Font, error)
	Metric(id MetricID) (int, error)
	Displays() ([]Display, error)
	StandardPath(id PathID) (string, error)
	SystemOption(name string) (string, bool)
	Environ() ([]string, error)
	Misc(id MiscID) (string, error)
	FullHostName(ctx context.Context) (string, error)
	BuildInfo() (*debug.BuildInfo, bool)
	SessionType() string
}
