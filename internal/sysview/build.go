package sysview

import (
	"runtime/debug"

	"github.com/nvm/sysinspect/internal/catalog"
	"github.com/nvm/sysinspect/internal/platform"
)

// BuildView lists how the running binary was built. Build information
// cannot change while the process runs, so it is read once.
type BuildView struct {
	*ListView
	provider  platform.Provider
	populated bool
}

func NewBuildView(d Deps) *BuildView {
	v := &BuildView{
		ListView: newListView(CategoryBuild, d.Log, "Name", "Value"),
		provider: d.Provider,
	}
	v.Refresh()
	return v
}

func (v *BuildView) Refresh() {
	if v.populated {
		v.finishRefresh()
		return
	}
	v.populated = true

	bi, ok := v.provider.BuildInfo()
	if !ok {
		v.log.V(1).Info("build information is not available")
	}
	for i, name := range catalog.BuildSettings {
		v.appendRow(i, name, buildSetting(bi, name))
	}
	v.finishRefresh()
}

func (v *BuildView) Values(sep string) []string { return v.nameValueLines(sep) }

func buildSetting(bi *debug.BuildInfo, name string) string {
	if bi == nil {
		return SentinelNotDefined
	}
	var value string
	switch name {
	case "go":
		value = bi.GoVersion
	case "path":
		value = bi.Path
	case "mod":
		if bi.Main.Path != "" {
			value = bi.Main.Path + " " + bi.Main.Version
		}
	default:
		found := false
		for _, s := range bi.Settings {
			if s.Key == name {
				value, found = s.Value, true
				break
			}
		}
		if !found {
			return SentinelNotDefined
		}
		if value == "" {
			return SentinelDefined
		}
		return value
	}
	if value == "" {
		return SentinelNotDefined
	}
	return value
}
