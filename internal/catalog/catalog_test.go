package catalog

import (
	"testing"

	"github.com/nvm/sysinspect/internal/platform"
	"github.com/stretchr/testify/assert"
)

func assertUnique[K comparable](t *testing.T, name string, entries []Entry[K]) {
	t.Helper()
	keys := make(map[K]bool)
	names := make(map[string]bool)
	for _, e := range entries {
		assert.False(t, keys[e.Key], "%s: duplicate key %v", name, e.Key)
		assert.False(t, names[e.Name], "%s: duplicate name %q", name, e.Name)
		assert.NotEmpty(t, e.Name, "%s: empty name for key %v", name, e.Key)
		keys[e.Key] = true
		names[e.Name] = true
	}
}

func TestTablesHaveUniqueKeys(t *testing.T) {
	assertUnique(t, "colours", Colours)
	assertUnique(t, "fonts", Fonts)
	assertUnique(t, "metrics", Metrics)
	assertUnique(t, "displays", DisplayParams)
	assertUnique(t, "paths", StandardPaths)
	assertUnique(t, "misc", MiscParams)
}

func TestColourPalette(t *testing.T) {
	assert.Len(t, Colours, 8+platform.XPaletteSize)

	last := Colours[len(Colours)-1]
	assert.Equal(t, platform.ColourXPalette0+platform.XPaletteSize-1, last.Key)
	assert.Equal(t, "xresources-color15", last.Name)
	assert.Contains(t, last.Description, "bright white")
}

func TestIsDeprecatedOn(t *testing.T) {
	for _, e := range Colours {
		if e.Key == platform.ColourXForeground {
			assert.True(t, e.IsDeprecatedOn("wayland"))
			assert.False(t, e.IsDeprecatedOn("x11"))
		}
		if e.Key == platform.ColourAccent {
			assert.False(t, e.IsDeprecatedOn("wayland"))
		}
	}
}

func TestSettingTablesDescribeEveryEntry(t *testing.T) {
	for _, e := range Colours {
		assert.NotEmpty(t, e.Description, e.Name)
	}
	for _, e := range Fonts {
		assert.NotEmpty(t, e.Description, e.Name)
	}
	for _, e := range Metrics {
		assert.NotEmpty(t, e.Description, e.Name)
	}
}
