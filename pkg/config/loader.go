package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrGroupExists   = errors.New("group already exists")
	ErrUnknownMode   = errors.New("unknown mode")
	ErrInvalidLayout = errors.New("invalid layout")
)

// Smallest tile that still has room for a border around one line of text.
const minTileSize = 3

// LoadConfig reads a config file and fills in defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// Layout defaults go in before decoding so an explicit zero survives
	// and is rejected by validate.
	cfg := Config{Layout: defaultLayout()}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not
// exist. Any other failure is returned.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{Layout: defaultLayout()}
	applyDefaults(cfg)
	return cfg
}

// SaveConfig writes the config to the specified path
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// AddGroup appends a group. Names are unique.
func AddGroup(cfg *Config, group Group) error {
	if FindGroup(cfg, group.Name) != nil {
		return ErrGroupExists
	}
	cfg.Groups = append(cfg.Groups, group)
	return nil
}

// UpdateGroup updates an existing group by name
func UpdateGroup(cfg *Config, oldName string, group Group) error {
	for i, g := range cfg.Groups {
		if g.Name == oldName {
			cfg.Groups[i] = group
			return nil
		}
	}
	return ErrGroupNotFound
}

// DeleteGroup removes a group by name.
func DeleteGroup(cfg *Config, name string) error {
	for i, g := range cfg.Groups {
		if g.Name == name {
			cfg.Groups = append(cfg.Groups[:i], cfg.Groups[i+1:]...)
			return nil
		}
	}
	return ErrGroupNotFound
}

// FindGroup returns a pointer to the group with the given name, or nil if not found
func FindGroup(cfg *Config, name string) *Group {
	for i := range cfg.Groups {
		if cfg.Groups[i].Name == name {
			return &cfg.Groups[i]
		}
	}
	return nil
}

func defaultLayout() Layout {
	return Layout{Cols: 4, TileWidth: 22, TileHeight: 7, Gap: 1}
}

func applyDefaults(cfg *Config) {
	if cfg.Title == "" {
		cfg.Title = "Solar Entertainment Console"
	}
	if cfg.Overflow.Mode == "" {
		cfg.Overflow.Mode = "truncate"
	}
	if cfg.Launch.Mode == "" {
		cfg.Launch.Mode = "exec"
	}
	if cfg.Launch.Command == "" {
		cfg.Launch.Command = "{name}"
	}
	if cfg.Icons.Ext == "" {
		cfg.Icons.Ext = ".png"
	}
	if cfg.Theme.Name == "" {
		cfg.Theme.Name = "solar"
	}
	if cfg.Theme.Mode == "" {
		cfg.Theme.Mode = "auto"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	b := &cfg.Bindings
	defaultKeys(&b.Up, "up", "k")
	defaultKeys(&b.Down, "down", "j")
	defaultKeys(&b.Left, "left", "h")
	defaultKeys(&b.Right, "right", "l")
	defaultKeys(&b.Confirm, "enter", " ")
	defaultKeys(&b.Reload, "r")
	defaultKeys(&b.Quit, "q", "esc", "ctrl+c")
}

func defaultKeys(dst *[]string, keys ...string) {
	if len(*dst) == 0 {
		*dst = keys
	}
}

func validate(cfg *Config) error {
	l := cfg.Layout
	switch {
	case l.Rows < 0:
		return fmt.Errorf("layout.rows %d: %w: must not be negative", l.Rows, ErrInvalidLayout)
	case l.Cols < 1:
		return fmt.Errorf("layout.cols %d: %w: must be positive", l.Cols, ErrInvalidLayout)
	case l.TileWidth < minTileSize:
		return fmt.Errorf("layout.tile_width %d: %w: must be at least %d", l.TileWidth, ErrInvalidLayout, minTileSize)
	case l.TileHeight < minTileSize:
		return fmt.Errorf("layout.tile_height %d: %w: must be at least %d", l.TileHeight, ErrInvalidLayout, minTileSize)
	case l.Gap < 0:
		return fmt.Errorf("layout.gap %d: %w: must not be negative", l.Gap, ErrInvalidLayout)
	}
	switch cfg.Overflow.Mode {
	case "truncate", "error":
	default:
		return fmt.Errorf("overflow.mode %q: %w", cfg.Overflow.Mode, ErrUnknownMode)
	}
	switch cfg.Launch.Mode {
	case "exec", "shell", "tmux":
	default:
		return fmt.Errorf("launch.mode %q: %w", cfg.Launch.Mode, ErrUnknownMode)
	}
	return nil
}
