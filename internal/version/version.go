// Package version reports the version of the running binary.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Version is set via ldflags during build
var Version = ""

const devVersion = "0.0.0-dev"

// Info describes a build.
type Info struct {
	Version   string
	GoVersion string
	Revision  string
	Modified  bool
}

// Get returns the version of the running binary. The ldflags version wins
// over the module version recorded by the Go toolchain.
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	return fromBuildInfo(Version, bi)
}

func fromBuildInfo(ldflags string, bi *debug.BuildInfo) Info {
	info := Info{Version: normalizeVersion(ldflags)}
	if bi == nil {
		if info.Version == "" {
			info.Version = devVersion
		}
		return info
	}

	info.GoVersion = bi.GoVersion
	if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = normalizeVersion(bi.Main.Version)
	}
	if info.Version == "" {
		info.Version = devVersion
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String formats the version for the version command.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "sysinspect version %s", i.Version)

	var extra []string
	if i.Revision != "" {
		extra = append(extra, shortRevision(i.Revision))
	}
	if i.Modified {
		extra = append(extra, "modified")
	}
	if i.GoVersion != "" {
		extra = append(extra, i.GoVersion)
	}
	if len(extra) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(extra, ", "))
	}
	return b.String()
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// normalizeVersion removes surrounding space and a leading v
func normalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "v")
	v = strings.TrimPrefix(v, "V")
	return v
}
