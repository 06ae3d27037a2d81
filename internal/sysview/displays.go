package sysview

import (
	"fmt"
	"strconv"

	"github.com/nvm/sysinspect/internal/catalog"
	"github.com/nvm/sysinspect/internal/platform"
)

// DisplayView shows one column per connected display. The parameter rows
// are fixed; the display columns are rebuilt on every refresh.
type DisplayView struct {
	*ListView
	provider platform.Provider
}

func NewDisplayView(d Deps) *DisplayView {
	v := &DisplayView{
		ListView: newListView(CategoryDisplays, d.Log, "Parameter"),
		provider: d.Provider,
	}
	for _, p := range catalog.DisplayParams {
		v.appendRow(int(p.Key), p.Name)
	}
	v.Refresh()
	return v
}

func (v *DisplayView) Refresh() {
	displays, err := v.provider.Displays()
	if err != nil {
		v.log.Error(err, "cannot enumerate displays")
		displays = nil
	}

	columns := []string{"Parameter"}
	for i := range displays {
		columns = append(columns, fmt.Sprintf("Display(%d)", i))
	}
	v.setColumns(columns...)

	for i, r := range v.rows {
		param := catalog.DisplayParam(r.ID)
		for j, d := range displays {
			v.setCell(i, j+1, displayValue(param, d))
		}
	}
	v.finishRefresh()
}

// Values renders "Parameter<sep>Display(0)<sep>..." lines.
func (v *DisplayView) Values(sep string) []string { return v.allColumnLines(sep) }

func displayValue(p catalog.DisplayParam, d platform.Display) string {
	switch p {
	case catalog.DisplayName:
		return d.Name
	case catalog.DisplayIsPrimary:
		return platform.YesNo(d.Primary)
	case catalog.DisplayResolution:
		return platform.FormatSize(d.Geometry.Width, d.Geometry.Height)
	case catalog.DisplayBitsPerPixel:
		return positiveOrUnknown(d.Depth)
	case catalog.DisplayRefreshFrequency:
		return positiveOrUnknown(d.RefreshHz)
	case catalog.DisplayGeometryCoordinates:
		return platform.FormatRect(d.Geometry)
	case catalog.DisplayGeometrySize:
		return platform.FormatSize(d.Geometry.Width, d.Geometry.Height)
	case catalog.DisplayClientAreaCoordinates:
		return platform.FormatRect(d.ClientArea)
	case catalog.DisplayClientAreaSize:
		return platform.FormatSize(d.ClientArea.Width, d.ClientArea.Height)
	case catalog.DisplayPPI:
		x, y, ok := d.PPI()
		if !ok {
			return SentinelUnknown
		}
		return platform.FormatSize(x, y)
	}
	return SentinelUnknown
}

func positiveOrUnknown(n int) string {
	if n <= 0 {
		return SentinelUnknown
	}
	return strconv.Itoa(n)
}
