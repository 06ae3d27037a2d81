package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

var userDirKeys = map[PathID]string{
	PathDesktop:     "XDG_DESKTOP_DIR",
	PathDocuments:   "XDG_DOCUMENTS_DIR",
	PathDownloads:   "XDG_DOWNLOAD_DIR",
	PathMusic:       "XDG_MUSIC_DIR",
	PathPictures:    "XDG_PICTURES_DIR",
	PathVideos:      "XDG_VIDEOS_DIR",
	PathTemplates:   "XDG_TEMPLATES_DIR",
	PathPublicShare: "XDG_PUBLICSHARE_DIR",
}

// StandardPath resolves a well-known directory following the XDG base
// directory and user-dirs conventions.
func (h *Host) StandardPath(id PathID) (string, error) {
	switch id {
	case PathHome:
		return os.UserHomeDir()
	case PathConfig:
		return os.UserConfigDir()
	case PathCache:
		return os.UserCacheDir()
	case PathData:
		return h.xdgDir("XDG_DATA_HOME", ".local/share")
	case PathState:
		return h.xdgDir("XDG_STATE_HOME", ".local/state")
	case PathRuntime:
		if dir := h.getenv("XDG_RUNTIME_DIR"); dir != "" {
			return dir, nil
		}
		return "", fmt.Errorf("XDG_RUNTIME_DIR: %w", ErrUnsupported)
	case PathTemp:
		return os.TempDir(), nil
	case PathExecutable:
		return os.Executable()
	case PathWorkingDir:
		return os.Getwd()
	}

	key, ok := userDirKeys[id]
	if !ok {
		return "", fmt.Errorf("path %d: %w", id, ErrUnsupported)
	}
	return h.userDir(key)
}

func (h *Host) xdgDir(env, fallback string) (string, error) {
	if dir := h.getenv(env); dir != "" && filepath.IsAbs(dir) {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback), nil
}

func (h *Host) userDir(key string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	config, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(config, "user-dirs.dirs"))
	if err != nil {
		return "", fmt.Errorf("user-dirs.dirs: %w", ErrUnsupported)
	}
	dir, ok := parseUserDirs(string(data), home)[key]
	if !ok {
		return "", fmt.Errorf("%s: %w", key, ErrUnsupported)
	}
	return dir, nil
}
