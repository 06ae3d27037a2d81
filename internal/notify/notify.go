// Package notify turns operating system change signals into notifications
// on the event bus: desktop settings files changing on disk and the set of
// connected displays changing.
package notify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nvm/sysinspect/internal/events"
)

// Kind classifies a change notification.
type Kind int

const (
	KindSetting Kind = iota
	KindTheme
	KindDisplay
	KindSysColour
	KindDPI
)

var kindNames = map[Kind]string{
	KindSetting:   "setting",
	KindTheme:     "theme",
	KindDisplay:   "display",
	KindSysColour: "syscolour",
	KindDPI:       "dpi",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Label is the name used in the log pane.
func (k Kind) Label() string {
	switch k {
	case KindSetting:
		return "Setting changed"
	case KindTheme:
		return "Theme changed"
	case KindDisplay:
		return "Display changed"
	case KindSysColour:
		return "System colour changed"
	case KindDPI:
		return "DPI changed"
	}
	return k.String()
}

// ParseKind parses a kind name as written in the configuration.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown notification kind %q", s)
}

// Notification is one OS change signal.
type Notification struct {
	Kind   Kind
	Source string
	Detail string
	At     time.Time
}

// Event converts the notification for the bus.
func (n Notification) Event() events.Event {
	e := events.NewNotificationEvent(n.Kind.String(), n.Source, n.Detail)
	e.Data["at"] = n.At
	return e
}

// FromEvent recovers a notification published with Event.
func FromEvent(e events.Event) (Notification, bool) {
	if e.Type != events.EventNotification {
		return Notification{}, false
	}
	name, _ := e.Data["kind"].(string)
	kind, err := ParseKind(name)
	if err != nil {
		return Notification{}, false
	}
	n := Notification{Kind: kind, Source: e.Source}
	n.Detail, _ = e.Data["detail"].(string)
	n.At, _ = e.Data["at"].(time.Time)
	return n, true
}

// WatchPath is one file whose changes are reported as Kind.
type WatchPath struct {
	Path string
	Kind Kind
}

// DefaultPaths returns the desktop settings files watched on every system.
// Empty directories are left out.
func DefaultPaths(home, configDir string) []WatchPath {
	var paths []WatchPath
	if configDir != "" {
		paths = append(paths,
			WatchPath{Path: filepath.Join(configDir, "dconf", "user"), Kind: KindSetting},
			WatchPath{Path: filepath.Join(configDir, "gtk-3.0", "settings.ini"), Kind: KindTheme},
			WatchPath{Path: filepath.Join(configDir, "gtk-4.0", "settings.ini"), Kind: KindTheme},
			WatchPath{Path: filepath.Join(configDir, "kdeglobals"), Kind: KindSysColour},
			WatchPath{Path: filepath.Join(configDir, "monitors.xml"), Kind: KindDisplay},
		)
	}
	if home != "" {
		paths = append(paths,
			WatchPath{Path: filepath.Join(home, ".Xresources"), Kind: KindDPI},
			WatchPath{Path: filepath.Join(home, ".Xdefaults"), Kind: KindDPI},
		)
	}
	return paths
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}
