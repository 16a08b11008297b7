package config

import (
	"github.com/b/solar-console/pkg/grid"
	"github.com/b/solar-console/pkg/paths"
)

type Config struct {
	Title       string   `yaml:"title"`
	EntriesFile string   `yaml:"entries_file"`
	Layout      Layout   `yaml:"layout"`
	Overflow    Overflow `yaml:"overflow"`
	Launch      Launch   `yaml:"launch"`
	Icons       Icons    `yaml:"icons"`
	Theme       Theme    `yaml:"theme"`
	Groups      []Group  `yaml:"groups"`
	Bindings    Bindings `yaml:"bindings"`
	Remote      Remote   `yaml:"remote"`
	Log         Log      `yaml:"log"`
}

// Layout is measured in terminal cells. Rows 0 means "as many rows as the
// app list needs".
type Layout struct {
	Rows       int `yaml:"rows"`
	Cols       int `yaml:"cols"`
	TileWidth  int `yaml:"tile_width"`
	TileHeight int `yaml:"tile_height"`
	Gap        int `yaml:"gap"`
}

type Overflow struct {
	Mode string `yaml:"mode"` // "truncate" (default) or "error"
}

type Launch struct {
	Mode    string `yaml:"mode"`    // "exec" (default), "shell" or "tmux"
	Command string `yaml:"command"` // {name} is replaced by the entry name
	Dir     string `yaml:"dir"`     // working directory for launched programs
}

type Icons struct {
	Dir string `yaml:"dir"`
	Ext string `yaml:"ext"`
}

type Theme struct {
	Name       string `yaml:"name"`       // built-in palette
	Mode       string `yaml:"mode"`       // "auto", "dark" or "light"
	Background string `yaml:"background"` // overrides the palette background
	Accent     string `yaml:"accent"`     // overrides the palette active color
}

type Group struct {
	Name    string     `yaml:"name"`
	Pattern string     `yaml:"pattern"`
	Theme   GroupTheme `yaml:"theme"`
}

type GroupTheme struct {
	Bg       string `yaml:"bg"`
	Fg       string `yaml:"fg"`
	ActiveBg string `yaml:"active_bg"`
	ActiveFg string `yaml:"active_fg"`
	Icon     string `yaml:"icon"`
}

type Bindings struct {
	Up      []string `yaml:"up"`
	Down    []string `yaml:"down"`
	Left    []string `yaml:"left"`
	Right   []string `yaml:"right"`
	Confirm []string `yaml:"confirm"`
	Reload  []string `yaml:"reload"`
	Quit    []string `yaml:"quit"`
}

type Remote struct {
	Disabled bool   `yaml:"disabled"`
	Session  string `yaml:"session"`
	Socket   string `yaml:"socket"` // overrides the session socket path
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfigPath returns the config location under the console's config dir.
func DefaultConfigPath() string {
	return paths.ConfigPath()
}

// EntriesPath returns the app list this config points at.
func (c *Config) EntriesPath() string {
	if c.EntriesFile == "" {
		return paths.EntriesPath()
	}
	return paths.Expand(c.EntriesFile)
}

// SocketPath returns the remote-control socket path.
func (c *Config) SocketPath() string {
	if c.Remote.Socket != "" {
		return paths.Expand(c.Remote.Socket)
	}
	return paths.SocketPath(c.Remote.Session)
}

// GridLayout resolves the configured layout for an app list of entryCount
// names. Negative or zero columns are passed through so grid.Build can
// reject them.
func (c *Config) GridLayout(entryCount int) grid.Layout {
	l := grid.Layout{
		Rows:       c.Layout.Rows,
		Cols:       c.Layout.Cols,
		TileWidth:  c.Layout.TileWidth,
		TileHeight: c.Layout.TileHeight,
		Gap:        c.Layout.Gap,
		Overflow:   grid.ParseOverflow(c.Overflow.Mode),
	}
	if l.Rows == 0 && l.Cols > 0 {
		l.Rows = (entryCount + l.Cols - 1) / l.Cols
		if l.Rows < 1 {
			l.Rows = 1
		}
	}
	return l
}
