// Package sysview renders platform facts as tables. Each Category has one
// View; all views share the ListView row storage and only differ in how
// they derive their rows on Refresh.
//
// Views are not safe for concurrent use. The only background work, the
// full host name lookup of the miscellaneous view, reports back through a
// Poster and is applied on the caller's goroutine via MiscView.Apply.
package sysview

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/nvm/sysinspect/internal/platform"
)

// Sentinel values shown in place of unavailable values.
const (
	SentinelInvalid    = "<Invalid>"
	SentinelNotSet     = "<Not Set>"
	SentinelNotDefined = "<Is Not Defined>"
	SentinelDefined    = "<Is Defined>"
	SentinelUnknown    = "<Not Applicable / Unknown>"
	SentinelEvaluating = "evaluating…"
)

var (
	// ErrNoDetails is returned by views that cannot show details.
	ErrNoDetails = errors.New("view has no detailed information")
	// ErrNoSelection is returned when details are requested without a selected row.
	ErrNoSelection = errors.New("no row selected")
)

// Category identifies one group of facts shown as a tab.
type Category int

const (
	CategoryColours Category = iota
	CategoryFonts
	CategoryMetrics
	CategoryDisplays
	CategoryPaths
	CategoryOptions
	CategoryEnvironment
	CategoryMisc
	CategoryBuild
)

// Categories lists every category in tab order.
var Categories = []Category{
	CategoryColours,
	CategoryFonts,
	CategoryMetrics,
	CategoryDisplays,
	CategoryPaths,
	CategoryOptions,
	CategoryEnvironment,
	CategoryMisc,
	CategoryBuild,
}

var categoryTitles = map[Category]string{
	CategoryColours:     "System Colours",
	CategoryFonts:       "System Fonts",
	CategoryMetrics:     "System Metrics",
	CategoryDisplays:    "Displays",
	CategoryPaths:       "Standard Paths",
	CategoryOptions:     "System Options",
	CategoryEnvironment: "Environment Variables",
	CategoryMisc:        "Miscellaneous",
	CategoryBuild:       "Build Settings",
}

// Title returns the tab title of the category.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Row is one displayed entry. Cells[0] is the name or parameter label.
type Row struct {
	Cells  []string
	Swatch *platform.Colour
	ID     int
}

// Detail is the extended information shown for a selected row.
type Detail struct {
	Swatch *platform.Colour
	Title  string
	Lines  []string
}

// View is the capability shared by every category view.
type View interface {
	Category() Category
	Title() string
	Columns() []string
	Rows() []Row
	Refresh()
	Values(sep string) []string
	Selected() int
	Select(i int)
	SetColumnWidth(col, width int)
	ColumnWidth(col int) (int, bool)
	CanShowDetails() bool
	Details() (Detail, error)
	Close()
}

// Poster delivers a message to the goroutine owning the views. It must not
// block.
type Poster func(msg any)

// Deps carries what views need from their owner.
type Deps struct {
	Provider          platform.Provider
	Log               logr.Logger
	Poster            Poster
	HostLookupTimeout time.Duration
}

var constructors = map[Category]func(Deps) View{
	CategoryColours:     func(d Deps) View { return NewColourView(d) },
	CategoryFonts:       func(d Deps) View { return NewFontView(d) },
	CategoryMetrics:     func(d Deps) View { return NewMetricView(d) },
	CategoryDisplays:    func(d Deps) View { return NewDisplayView(d) },
	CategoryPaths:       func(d Deps) View { return NewPathView(d) },
	CategoryOptions:     func(d Deps) View { return NewOptionView(d) },
	CategoryEnvironment: func(d Deps) View { return NewEnvironmentView(d) },
	CategoryMisc:        func(d Deps) View { return NewMiscView(d) },
	CategoryBuild:       func(d Deps) View { return NewBuildView(d) },
}

// New constructs and populates the view for a category.
func New(c Category, d Deps) (View, error) {
	ctor, ok := constructors[c]
	if !ok {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	if d.Provider == nil {
		return nil, errors.New("view requires a platform provider")
	}
	if d.Log.GetSink() == nil {
		d.Log = logr.Discard()
	}
	return ctor(d), nil
}
