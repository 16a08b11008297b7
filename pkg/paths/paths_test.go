package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestDirs(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("SOLAR_CONFIG_DIR", "")
	t.Setenv("SOLAR_STATE_DIR", "")
	t.Setenv("HOME", tmp)
	ResetForTest()
	return tmp
}

func TestConfigDir_EnvOverride(t *testing.T) {
	tmp := setupTestDirs(t)
	override := filepath.Join(tmp, "custom-config")
	t.Setenv("SOLAR_CONFIG_DIR", override)
	ResetForTest()

	if got := ConfigDir(); got != override {
		t.Errorf("ConfigDir() = %q, want %q", got, override)
	}
}

func TestConfigDir_Default(t *testing.T) {
	tmp := setupTestDirs(t)
	want := filepath.Join(tmp, ".config", "solar-console")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestStateDir_EnvOverride(t *testing.T) {
	tmp := setupTestDirs(t)
	override := filepath.Join(tmp, "custom-state")
	t.Setenv("SOLAR_STATE_DIR", override)
	ResetForTest()

	if got := StateDir(); got != override {
		t.Errorf("StateDir() = %q, want %q", got, override)
	}
}

func TestStateDir_Default(t *testing.T) {
	tmp := setupTestDirs(t)
	want := filepath.Join(tmp, ".local", "state", "solar-console")
	if got := StateDir(); got != want {
		t.Errorf("StateDir() = %q, want %q", got, want)
	}
}

func TestConfigAndEntriesPath(t *testing.T) {
	tmp := setupTestDirs(t)
	dir := filepath.Join(tmp, ".config", "solar-console")
	if got, want := ConfigPath(), filepath.Join(dir, "config.yaml"); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
	if got, want := EntriesPath(), filepath.Join(dir, "apps.applist"); got != want {
		t.Errorf("EntriesPath() = %q, want %q", got, want)
	}
}

func TestStatePath(t *testing.T) {
	tmp := setupTestDirs(t)
	want := filepath.Join(tmp, ".local", "state", "solar-console", "solar-console.log")
	if got := StatePath("solar-console.log"); got != want {
		t.Errorf("StatePath() = %q, want %q", got, want)
	}
}

func TestSocketPath(t *testing.T) {
	if got := SocketPath(""); !strings.HasSuffix(got, "solar-console-default.sock") {
		t.Errorf("SocketPath(\"\") = %q", got)
	}
	if got := SocketPath("tv"); !strings.HasSuffix(got, "solar-console-tv.sock") {
		t.Errorf("SocketPath(\"tv\") = %q", got)
	}
}

func TestExpand(t *testing.T) {
	tmp := setupTestDirs(t)
	tests := []struct {
		in, want string
	}{
		{"~/apps.applist", filepath.Join(tmp, "apps.applist")},
		{"~", tmp},
		{"/etc/apps", "/etc/apps"},
		{"~other/x", "~other/x"},
		{"rel/path", "rel/path"},
	}
	for _, tt := range tests {
		if got := Expand(tt.in); got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEnsureConfigDir_Creates(t *testing.T) {
	tmp := setupTestDirs(t)
	expected := filepath.Join(tmp, ".config", "solar-console")

	dir, err := EnsureConfigDir()
	if err != nil {
		t.Fatalf("EnsureConfigDir() error: %v", err)
	}
	if dir != expected {
		t.Errorf("EnsureConfigDir() = %q, want %q", dir, expected)
	}
	info, err := os.Stat(expected)
	if err != nil || !info.IsDir() {
		t.Errorf("EnsureConfigDir() did not create directory %q", expected)
	}
}

func TestEnsureStateDir_Creates(t *testing.T) {
	tmp := setupTestDirs(t)
	expected := filepath.Join(tmp, ".local", "state", "solar-console")

	dir, err := EnsureStateDir()
	if err != nil {
		t.Fatalf("EnsureStateDir() error: %v", err)
	}
	if dir != expected {
		t.Errorf("EnsureStateDir() = %q, want %q", dir, expected)
	}
	info, err := os.Stat(expected)
	if err != nil || !info.IsDir() {
		t.Errorf("EnsureStateDir() did not create directory %q", expected)
	}
}
