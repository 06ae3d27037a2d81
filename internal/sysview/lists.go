package sysview

import (
	"cmp"
	"slices"
	"strings"

	"github.com/nvm/sysinspect/internal/catalog"
	"github.com/nvm/sysinspect/internal/platform"
)

// PathView lists the standard directories.
type PathView struct {
	*ListView
	provider platform.Provider
}

func NewPathView(d Deps) *PathView {
	v := &PathView{
		ListView: newListView(CategoryPaths, d.Log, "Name", "Value"),
		provider: d.Provider,
	}
	for i, e := range catalog.StandardPaths {
		v.appendRow(i, e.Name)
	}
	v.Refresh()
	return v
}

func (v *PathView) Refresh() {
	for i, r := range v.rows {
		p, err := v.provider.StandardPath(catalog.StandardPaths[r.ID].Key)
		if err != nil || p == "" {
			v.setCell(i, columnValue, SentinelUnknown)
			continue
		}
		v.setCell(i, columnValue, p)
	}
	v.finishRefresh()
}

func (v *PathView) Values(sep string) []string { return v.nameValueLines(sep) }

// OptionView lists the runtime and toolkit options read from the
// environment.
type OptionView struct {
	*ListView
	provider platform.Provider
}

func NewOptionView(d Deps) *OptionView {
	v := &OptionView{
		ListView: newListView(CategoryOptions, d.Log, "Name", "Value"),
		provider: d.Provider,
	}
	for i, name := range catalog.SystemOptions {
		v.appendRow(i, name)
	}
	v.Refresh()
	return v
}

func (v *OptionView) Refresh() {
	for i, r := range v.rows {
		val, ok := v.provider.SystemOption(catalog.SystemOptions[r.ID])
		if !ok {
			val = SentinelNotSet
		}
		v.setCell(i, columnValue, val)
	}
	v.finishRefresh()
}

func (v *OptionView) Values(sep string) []string { return v.nameValueLines(sep) }

// EnvironmentView lists the process environment sorted by name. Its rows
// are rebuilt on every refresh.
type EnvironmentView struct {
	*ListView
	provider platform.Provider
}

func NewEnvironmentView(d Deps) *EnvironmentView {
	v := &EnvironmentView{
		ListView: newListView(CategoryEnvironment, d.Log, "Name", "Value"),
		provider: d.Provider,
	}
	v.Refresh()
	return v
}

func (v *EnvironmentView) Refresh() {
	v.clearRows()
	env, err := v.provider.Environ()
	if err != nil {
		v.log.Error(err, "cannot retrieve environment variables")
		v.finishRefresh()
		return
	}
	for i, kv := range splitEnviron(env) {
		v.appendRow(i, kv[0], kv[1])
	}
	v.finishRefresh()
}

func (v *EnvironmentView) Values(sep string) []string { return v.nameValueLines(sep) }

// splitEnviron turns "NAME=value" entries into sorted name/value pairs. The
// first occurrence of a name wins, as with os.Getenv. A leading '=' belongs
// to the name.
func splitEnviron(env []string) [][2]string {
	seen := make(map[string]bool, len(env))
	pairs := make([][2]string, 0, len(env))
	for _, kv := range env {
		if kv == "" {
			continue
		}
		name, value := kv, ""
		if i := strings.IndexByte(kv[1:], '='); i >= 0 {
			name, value = kv[:i+1], kv[i+2:]
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		pairs = append(pairs, [2]string{name, value})
	}
	slices.SortStableFunc(pairs, func(a, b [2]string) int { return cmp.Compare(a[0], b[0]) })
	return pairs
}
