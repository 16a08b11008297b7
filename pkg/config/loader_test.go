package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b/solar-console/pkg/grid"
)

func writeTestConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeTestConfig(t, "title: Living Room\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Living Room", cfg.Title)
	assert.Equal(t, 4, cfg.Layout.Cols)
	assert.Equal(t, 0, cfg.Layout.Rows)
	assert.Equal(t, "truncate", cfg.Overflow.Mode)
	assert.Equal(t, "exec", cfg.Launch.Mode)
	assert.Equal(t, "{name}", cfg.Launch.Command)
	assert.Equal(t, ".png", cfg.Icons.Ext)
	assert.Equal(t, []string{"enter", " "}, cfg.Bindings.Confirm)
	assert.Equal(t, []string{"q", "esc", "ctrl+c"}, cfg.Bindings.Quit)
}

func TestLoadConfigReadsSections(t *testing.T) {
	path := writeTestConfig(t, `
entries_file: /srv/console/apps.applist
layout:
  rows: 2
  cols: 3
  tile_width: 18
  tile_height: 5
  gap: 2
overflow:
  mode: error
launch:
  mode: tmux
  command: "flatpak run {name}"
bindings:
  confirm: ["x"]
groups:
  - name: Games
    pattern: "^(Steam|RetroArch)$"
    theme:
      bg: "#8e44ad"
      icon: "G"
remote:
  session: tv
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/console/apps.applist", cfg.EntriesPath())
	assert.Equal(t, Layout{Rows: 2, Cols: 3, TileWidth: 18, TileHeight: 5, Gap: 2}, cfg.Layout)
	assert.Equal(t, "tmux", cfg.Launch.Mode)
	assert.Equal(t, "flatpak run {name}", cfg.Launch.Command)
	assert.Equal(t, []string{"x"}, cfg.Bindings.Confirm)
	assert.Equal(t, []string{"up", "k"}, cfg.Bindings.Up)
	require.Len(t, cfg.Groups, 1)
	assert.Equal(t, "#8e44ad", cfg.Groups[0].Theme.Bg)
	assert.False(t, cfg.Remote.Disabled)
	assert.Contains(t, cfg.SocketPath(), "solar-console-tv.sock")

	l := cfg.GridLayout(10)
	assert.Equal(t, grid.OverflowError, l.Overflow)
	assert.Equal(t, 2, l.Rows)
}

func TestLoadConfigRejectsUnknownModes(t *testing.T) {
	for _, contents := range []string{
		"overflow:\n  mode: wrap\n",
		"launch:\n  mode: systemd\n",
	} {
		_, err := LoadConfig(writeTestConfig(t, contents))
		assert.ErrorIs(t, err, ErrUnknownMode, contents)
	}
}

func TestLoadConfigRejectsBadLayout(t *testing.T) {
	for _, contents := range []string{
		"layout:\n  cols: 0\n",
		"layout:\n  cols: -2\n",
		"layout:\n  rows: -1\n",
		"layout:\n  tile_width: 2\n  gap: -2\n",
		"layout:\n  tile_height: 0\n",
		"layout:\n  gap: -1\n",
	} {
		_, err := LoadConfig(writeTestConfig(t, contents))
		assert.ErrorIs(t, err, ErrInvalidLayout, contents)
	}
}

func TestLoadConfigKeepsExplicitZeroGap(t *testing.T) {
	cfg, err := LoadConfig(writeTestConfig(t, "layout:\n  gap: 0\n  tile_width: 3\n  tile_height: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, Layout{Cols: 4, TileWidth: 3, TileHeight: 3, Gap: 0}, cfg.Layout)

	cfg, err = LoadConfig(writeTestConfig(t, "layout:\n"))
	require.NoError(t, err)
	assert.Equal(t, Layout{Cols: 4, TileWidth: 22, TileHeight: 7, Gap: 1}, cfg.Layout)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeTestConfig(t, "layout: [1, 2\n"))
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Solar Entertainment Console", cfg.Title)
	assert.False(t, cfg.Remote.Disabled)

	_, err = LoadOrDefault(writeTestConfig(t, "overflow:\n  mode: nope\n"))
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestGridLayoutAutoRows(t *testing.T) {
	cfg := Default()

	tests := []struct {
		entries int
		rows    int
	}{
		{0, 1},
		{1, 1},
		{4, 1},
		{5, 2},
		{9, 3},
	}
	for _, tt := range tests {
		l := cfg.GridLayout(tt.entries)
		assert.Equal(t, tt.rows, l.Rows, "entries=%d", tt.entries)
		assert.Equal(t, 4, l.Cols)
		assert.Equal(t, grid.OverflowTruncate, l.Overflow)
	}

	cfg.Layout.Rows = -1
	_, err := grid.Build(nil, cfg.GridLayout(3))
	assert.ErrorIs(t, err, grid.ErrConfiguration)
}

func TestSaveConfigPersistsGroups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	require.NoError(t, AddGroup(cfg, Group{Name: "Media", Pattern: "^Kodi$"}))
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	group := FindGroup(loaded, "Media")
	require.NotNil(t, group)
	assert.Equal(t, "^Kodi$", group.Pattern)
}

func TestGroupEditing(t *testing.T) {
	cfg := Default()
	require.NoError(t, AddGroup(cfg, Group{Name: "Games"}))
	assert.ErrorIs(t, AddGroup(cfg, Group{Name: "Games"}), ErrGroupExists)

	require.NoError(t, UpdateGroup(cfg, "Games", Group{Name: "Play", Pattern: "."}))
	assert.Nil(t, FindGroup(cfg, "Games"))
	assert.NotNil(t, FindGroup(cfg, "Play"))
	assert.ErrorIs(t, UpdateGroup(cfg, "Games", Group{}), ErrGroupNotFound)

	require.NoError(t, DeleteGroup(cfg, "Play"))
	assert.Empty(t, cfg.Groups)
	assert.ErrorIs(t, DeleteGroup(cfg, "Play"), ErrGroupNotFound)
}
