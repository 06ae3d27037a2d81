package sysview

import (
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nvm/sysinspect/internal/catalog"
	"github.com/nvm/sysinspect/internal/platform"
)

// Columns of the colour, font and metric views.
const (
	columnName = iota
	columnValue
	columnDescription
)

// DefaultOutlineColour marks colours the host cannot provide.
var DefaultOutlineColour = platform.RGB(202, 31, 123)

// ColourView lists system colours with a swatch per row. Colours the
// session type deprecates are not listed.
type ColourView struct {
	*ListView
	provider platform.Provider
	entries  []catalog.Entry[platform.ColourID]
	outline  platform.Colour
}

func NewColourView(d Deps) *ColourView {
	v := &ColourView{
		ListView: newListView(CategoryColours, d.Log, "Name", "Value", "Description"),
		provider: d.Provider,
		outline:  DefaultOutlineColour,
	}
	session := d.Provider.SessionType()
	for _, e := range catalog.Colours {
		if e.IsDeprecatedOn(session) {
			continue
		}
		v.entries = append(v.entries, e)
		v.appendRow(len(v.entries)-1, e.Name, "", e.Description)
	}
	v.Refresh()
	return v
}

func (v *ColourView) Refresh() {
	for i, r := range v.rows {
		c, err := v.provider.Colour(v.entries[r.ID].Key)
		if err != nil {
			v.setCell(i, columnValue, SentinelInvalid)
			v.setSwatch(i, v.outline)
			continue
		}
		text := c.CSS()
		if !c.IsSolid() {
			text += ", not solid"
		}
		v.setCell(i, columnValue, text)
		v.setSwatch(i, c)
	}
	v.finishRefresh()
}

func (v *ColourView) Values(sep string) []string { return v.nameValueLines(sep) }

func (v *ColourView) CanShowDetails() bool { return v.selected >= 0 }

// Details describes the selected colour in several notations.
func (v *ColourView) Details() (Detail, error) {
	if v.selected < 0 {
		return Detail{}, ErrNoSelection
	}
	e := v.entries[v.rows[v.selected].ID]
	c, err := v.provider.Colour(e.Key)
	if err != nil {
		v.log.Error(err, "invalid colour", "name", e.Name)
		return Detail{}, fmt.Errorf("invalid colour for %q: %w", e.Name, err)
	}

	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, l := cf.Hsl()
	return Detail{
		Title:  "Viewing " + e.Name,
		Swatch: &c,
		Lines: []string{
			"CSS:   " + c.CSS(),
			"Hex:   " + cf.Hex(),
			fmt.Sprintf("RGB:   %d, %d, %d", c.R, c.G, c.B),
			fmt.Sprintf("HSL:   %.0f°, %.0f%%, %.0f%%", h, s*100, l*100),
			fmt.Sprintf("Alpha: %d", c.A),
		},
	}, nil
}

// FontView lists system fonts by their user description.
type FontView struct {
	*ListView
	provider platform.Provider
}

func NewFontView(d Deps) *FontView {
	v := &FontView{
		ListView: newListView(CategoryFonts, d.Log, "Name", "Value", "Description"),
		provider: d.Provider,
	}
	for i, e := range catalog.Fonts {
		v.appendRow(i, e.Name, "", e.Description)
	}
	v.Refresh()
	return v
}

func (v *FontView) Refresh() {
	for i, r := range v.rows {
		f, err := v.provider.Font(catalog.Fonts[r.ID].Key)
		if err != nil {
			v.setCell(i, columnValue, SentinelInvalid)
			continue
		}
		v.setCell(i, columnValue, f.Description())
	}
	v.finishRefresh()
}

func (v *FontView) Values(sep string) []string { return v.nameValueLines(sep) }

func (v *FontView) CanShowDetails() bool { return v.selected >= 0 }

func (v *FontView) Details() (Detail, error) {
	if v.selected < 0 {
		return Detail{}, ErrNoSelection
	}
	e := catalog.Fonts[v.rows[v.selected].ID]
	f, err := v.provider.Font(e.Key)
	if err != nil {
		v.log.Error(err, "invalid font", "name", e.Name)
		return Detail{}, fmt.Errorf("invalid font for %q: %w", e.Name, err)
	}

	weight, style, size := f.Weight, f.Style, SentinelUnknown
	if weight == "" {
		weight = "Regular"
	}
	if style == "" {
		style = "Normal"
	}
	if f.Size > 0 {
		size = strconv.FormatFloat(f.Size, 'f', -1, 64) + " pt"
	}
	return Detail{
		Title: "Viewing " + e.Name,
		Lines: []string{
			"Family: " + f.Family,
			"Weight: " + weight,
			"Style:  " + style,
			"Size:   " + size,
		},
	}, nil
}

// MetricView lists integer system metrics.
type MetricView struct {
	*ListView
	provider platform.Provider
}

func NewMetricView(d Deps) *MetricView {
	v := &MetricView{
		ListView: newListView(CategoryMetrics, d.Log, "Name", "Value", "Description"),
		provider: d.Provider,
	}
	for i, e := range catalog.Metrics {
		v.appendRow(i, e.Name, "", e.Description)
	}
	v.Refresh()
	return v
}

func (v *MetricView) Refresh() {
	for i, r := range v.rows {
		n, err := v.provider.Metric(catalog.Metrics[r.ID].Key)
		if err != nil {
			v.setCell(i, columnValue, SentinelInvalid)
			continue
		}
		v.setCell(i, columnValue, strconv.Itoa(n))
	}
	v.finishRefresh()
}

func (v *MetricView) Values(sep string) []string { return v.nameValueLines(sep) }
