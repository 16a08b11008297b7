// Package paths resolves where the console keeps its files.
//
// Layout (XDG-style):
//
//	Config:  ~/.config/solar-console/config.yaml     (override: SOLAR_CONFIG_DIR)
//	Apps:    ~/.config/solar-console/apps.applist
//	State:   ~/.local/state/solar-console/           (override: SOLAR_STATE_DIR)
//	Runtime: $TMPDIR/solar-console-<session>.sock
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const appDir = "solar-console"

var (
	configDirOnce   sync.Once
	configDirCached string

	stateDirOnce   sync.Once
	stateDirCached string
)

// ConfigDir resolves the config directory.
// Priority: SOLAR_CONFIG_DIR env > ~/.config/solar-console/
func ConfigDir() string {
	configDirOnce.Do(func() {
		configDirCached = resolve("SOLAR_CONFIG_DIR", ".config")
	})
	return configDirCached
}

// StateDir resolves the state directory (logs).
// Priority: SOLAR_STATE_DIR env > ~/.local/state/solar-console/
func StateDir() string {
	stateDirOnce.Do(func() {
		stateDirCached = resolve("SOLAR_STATE_DIR", filepath.Join(".local", "state"))
	})
	return stateDirCached
}

func resolve(env, homeRel string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, homeRel, appDir)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// EntriesPath returns the default app list location.
func EntriesPath() string {
	return filepath.Join(ConfigDir(), "apps.applist")
}

// StatePath returns the full path to a state file (e.g. "solar-console.log").
func StatePath(filename string) string {
	return filepath.Join(StateDir(), filename)
}

// SocketPath returns the remote-control socket for a session.
func SocketPath(session string) string {
	if session == "" {
		session = "default"
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s.sock", appDir, session))
}

// Expand replaces a leading ~ with the home directory.
func Expand(path string) string {
	if path == "~" || (len(path) > 1 && path[0] == '~' && path[1] == '/') {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// EnsureConfigDir creates the config directory if it doesn't exist and returns its path.
func EnsureConfigDir() (string, error) {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create config dir %s: %w", dir, err)
	}
	return dir, nil
}

// EnsureStateDir creates the state directory if it doesn't exist and returns its path.
func EnsureStateDir() (string, error) {
	dir := StateDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create state dir %s: %w", dir, err)
	}
	return dir, nil
}

// ResetForTest clears cached values so tests can re-run resolution logic.
// Only use in tests.
func ResetForTest() {
	configDirOnce = sync.Once{}
	configDirCached = ""
	stateDirOnce = sync.Once{}
	stateDirCached = ""
}
