package platform

import (
	"bufio"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var gvariantTypePrefixes = []string{
	"byte ", "int16 ", "uint16 ", "int32 ", "uint32 ", "int64 ", "uint64 ", "double ", "handle ",
}

// parseGSettingsValue strips the GVariant text decoration from one line of
// `gsettings get` output: type annotations and single or double quotes.
func parseGSettingsValue(out string) string {
	v := strings.TrimSpace(out)
	for _, p := range gvariantTypePrefixes {
		if strings.HasPrefix(v, p) {
			v = strings.TrimPrefix(v, p)
			break
		}
	}
	if len(v) >= 2 && (v[0] == '\'' && v[len(v)-1] == '\'' || v[0] == '"' && v[len(v)-1] == '"') {
		quote := v[0]
		v = v[1 : len(v)-1]
		v = strings.ReplaceAll(v, `\`+string(quote), string(quote))
		v = strings.ReplaceAll(v, `\\`, `\`)
	}
	return v
}

// gsettingsInt converts a gsettings value to an integer metric. Booleans map
// to 0 and 1, doubles are rounded.
func gsettingsInt(v string) (int, error) {
	switch v {
	case "true":
		return 1, nil
	case "false":
		return 0, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", v)
	}
	return int(math.Round(f)), nil
}

// parseXResources parses `xrdb -query` output into a resource map.
func parseXResources(out string) map[string]string {
	res := make(map[string]string)
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "!") {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		res[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return res
}

// lookupXResource finds a resource by its final component, preferring the
// wildcard class entries xterm-compatible terminals read.
func lookupXResource(res map[string]string, key string) (string, bool) {
	for _, name := range []string{"*" + key, "*." + key, key} {
		if v, ok := res[name]; ok {
			return v, true
		}
	}
	best := ""
	for name := range res {
		if strings.HasSuffix(name, "."+key) || strings.HasSuffix(name, "*"+key) {
			if best == "" || name < best {
				best = name
			}
		}
	}
	if best == "" {
		return "", false
	}
	return res[best], true
}

var (
	xrandrGeometry = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)
	xrandrMM       = regexp.MustCompile(`(\d+)mm x (\d+)mm`)
	xdpyinfoDepth  = regexp.MustCompile(`depth of root window:\s+(\d+) planes`)
)

// parseXrandr extracts the active outputs from `xrandr --query`. Outputs
// that are connected but not driven (no geometry) are skipped.
func parseXrandr(out string) []Display {
	var displays []Display
	var current *Display

	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if current != nil && current.RefreshHz == 0 {
				current.RefreshHz = activeRefreshRate(line)
			}
			continue
		}

		current = nil
		fields := strings.Fields(line)
		if len(fields) < 3 || fields[1] != "connected" {
			continue
		}

		d := Display{Name: fields[0]}
		found := false
		for _, f := range fields[2:] {
			if f == "primary" {
				d.Primary = true
				continue
			}
			if m := xrandrGeometry.FindStringSubmatch(f); m != nil {
				d.Geometry = Rect{X: atoi(m[3]), Y: atoi(m[4]), Width: atoi(m[1]), Height: atoi(m[2])}
				found = true
				break
			}
		}
		if !found {
			continue
		}
		if m := xrandrMM.FindStringSubmatch(line); m != nil {
			d.WidthMM, d.HeightMM = atoi(m[1]), atoi(m[2])
		}
		d.ClientArea = d.Geometry
		displays = append(displays, d)
		current = &displays[len(displays)-1]
	}
	return displays
}

// activeRefreshRate returns the rate marked with '*' on an xrandr mode line.
func activeRefreshRate(line string) int {
	for _, f := range strings.Fields(line)[1:] {
		if !strings.Contains(f, "*") {
			continue
		}
		rate, err := strconv.ParseFloat(strings.Trim(f, "*+"), 64)
		if err != nil {
			return 0
		}
		return int(math.Round(rate))
	}
	return 0
}

func parseRootDepth(out string) int {
	if m := xdpyinfoDepth.FindStringSubmatch(out); m != nil {
		return atoi(m[1])
	}
	return 0
}

// parseWorkArea reads the first desktop's work area from
// `xprop -root _NET_WORKAREA`.
func parseWorkArea(out string) (Rect, bool) {
	_, values, ok := strings.Cut(out, "=")
	if !ok {
		return Rect{}, false
	}
	parts := strings.Split(values, ",")
	if len(parts) < 4 {
		return Rect{}, false
	}
	var n [4]int
	for i := range n {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return Rect{}, false
		}
		n[i] = v
	}
	return Rect{X: n[0], Y: n[1], Width: n[2], Height: n[3]}, true
}

// parseUserDirs parses an XDG user-dirs.dirs file, expanding $HOME.
func parseUserDirs(content, home string) map[string]string {
	dirs := make(map[string]string)
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		value = strings.Replace(value, "$HOME", home, 1)
		dirs[strings.TrimSpace(key)] = value
	}
	return dirs
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
