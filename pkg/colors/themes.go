package colors

import "sort"

// Theme is the color set for the console screen.
type Theme struct {
	Name        string
	Description string
	Dark        bool

	// Screen
	Background string
	TitleFg    string
	StatusFg   string
	ErrorFg    string

	// Tiles
	TileBg            string
	TileFg            string
	TileBorder        string
	ActiveBg          string
	ActiveFg          string
	ActiveBorder      string
	PlaceholderFg     string
	PlaceholderBorder string
}

// Themes holds the built-in themes. Names ending in -light or -dawn/-latte
// are paired with a dark sibling through counterparts.
var Themes = map[string]Theme{
	"solar": {
		Name:        "Solar",
		Description: "Dark console with a cyan selection ring",
		Dark:        true,

		Background: "#0d1117",
		TitleFg:    "#f5c542",
		StatusFg:   "#8b949e",
		ErrorFg:    "#f85149",

		TileBg:            "#161b22",
		TileFg:            "#c9d1d9",
		TileBorder:        "#6e7681",
		ActiveBg:          "#0b3a46",
		ActiveFg:          "#e6fdff",
		ActiveBorder:      "#00e5ff",
		PlaceholderFg:     "#30363d",
		PlaceholderBorder: "#21262d",
	},

	"solar-light": {
		Name:        "Solar Light",
		Description: "Light console with a teal selection ring",
		Dark:        false,

		Background: "#f6f8fa",
		TitleFg:    "#9a6700",
		StatusFg:   "#57606a",
		ErrorFg:    "#cf222e",

		TileBg:            "#ffffff",
		TileFg:            "#24292f",
		TileBorder:        "#8c959f",
		ActiveBg:          "#d3f5f9",
		ActiveFg:          "#0a3069",
		ActiveBorder:      "#0e7490",
		PlaceholderFg:     "#d0d7de",
		PlaceholderBorder: "#eaeef2",
	},

	"rose-pine": {
		Name:        "Rose Pine",
		Description: "Elegant dark theme with muted colors",
		Dark:        true,

		Background: "#191724",
		TitleFg:    "#ebbcba",
		StatusFg:   "#908caa",
		ErrorFg:    "#eb6f92",

		TileBg:            "#1f1d2e",
		TileFg:            "#e0def4",
		TileBorder:        "#403d52",
		ActiveBg:          "#26233a",
		ActiveFg:          "#e0def4",
		ActiveBorder:      "#9ccfd8",
		PlaceholderFg:     "#403d52",
		PlaceholderBorder: "#26233a",
	},

	"rose-pine-dawn": {
		Name:        "Rose Pine Dawn",
		Description: "Soft light theme with warm colors",
		Dark:        false,

		Background: "#faf4ed",
		TitleFg:    "#d7827e",
		StatusFg:   "#797593",
		ErrorFg:    "#b4637a",

		TileBg:            "#fffaf3",
		TileFg:            "#575279",
		TileBorder:        "#dfdad9",
		ActiveBg:          "#f2e9e1",
		ActiveFg:          "#575279",
		ActiveBorder:      "#286983",
		PlaceholderFg:     "#dfdad9",
		PlaceholderBorder: "#f2e9e1",
	},

	"nord": {
		Name:        "Nord",
		Description: "Arctic, north-bluish color palette",
		Dark:        true,

		Background: "#2e3440",
		TitleFg:    "#88c0d0",
		StatusFg:   "#d8dee9",
		ErrorFg:    "#bf616a",

		TileBg:            "#3b4252",
		TileFg:            "#eceff4",
		TileBorder:        "#4c566a",
		ActiveBg:          "#434c5e",
		ActiveFg:          "#eceff4",
		ActiveBorder:      "#88c0d0",
		PlaceholderFg:     "#4c566a",
		PlaceholderBorder: "#3b4252",
	},

	"gruvbox-dark": {
		Name:        "Gruvbox Dark",
		Description: "Retro groove color scheme",
		Dark:        true,

		Background: "#282828",
		TitleFg:    "#fabd2f",
		StatusFg:   "#a89984",
		ErrorFg:    "#fb4934",

		TileBg:            "#3c3836",
		TileFg:            "#ebdbb2",
		TileBorder:        "#665c54",
		ActiveBg:          "#504945",
		ActiveFg:          "#fbf1c7",
		ActiveBorder:      "#83a598",
		PlaceholderFg:     "#504945",
		PlaceholderBorder: "#3c3836",
	},

	"gruvbox-light": {
		Name:        "Gruvbox Light",
		Description: "Retro groove color scheme (light)",
		Dark:        false,

		Background: "#fbf1c7",
		TitleFg:    "#b57614",
		StatusFg:   "#7c6f64",
		ErrorFg:    "#9d0006",

		TileBg:            "#ebdbb2",
		TileFg:            "#3c3836",
		TileBorder:        "#bdae93",
		ActiveBg:          "#d5c4a1",
		ActiveFg:          "#282828",
		ActiveBorder:      "#076678",
		PlaceholderFg:     "#d5c4a1",
		PlaceholderBorder: "#ebdbb2",
	},

	"catppuccin-mocha": {
		Name:        "Catppuccin Mocha",
		Description: "Soothing pastel theme (dark)",
		Dark:        true,

		Background: "#1e1e2e",
		TitleFg:    "#f9e2af",
		StatusFg:   "#a6adc8",
		ErrorFg:    "#f38ba8",

		TileBg:            "#313244",
		TileFg:            "#cdd6f4",
		TileBorder:        "#45475a",
		ActiveBg:          "#45475a",
		ActiveFg:          "#cdd6f4",
		ActiveBorder:      "#89dceb",
		PlaceholderFg:     "#45475a",
		PlaceholderBorder: "#313244",
	},

	"catppuccin-latte": {
		Name:        "Catppuccin Latte",
		Description: "Soothing pastel theme (light)",
		Dark:        false,

		Background: "#eff1f5",
		TitleFg:    "#df8e1d",
		StatusFg:   "#6c6f85",
		ErrorFg:    "#d20f39",

		TileBg:            "#e6e9ef",
		TileFg:            "#4c4f69",
		TileBorder:        "#9ca0b0",
		ActiveBg:          "#ccd0da",
		ActiveFg:          "#4c4f69",
		ActiveBorder:      "#04a5e5",
		PlaceholderFg:     "#ccd0da",
		PlaceholderBorder: "#e6e9ef",
	},
}

// counterparts pairs each theme with its sibling for the other background.
var counterparts = map[string]string{
	"solar":            "solar-light",
	"solar-light":      "solar",
	"rose-pine":        "rose-pine-dawn",
	"rose-pine-dawn":   "rose-pine",
	"gruvbox-dark":     "gruvbox-light",
	"gruvbox-light":    "gruvbox-dark",
	"catppuccin-mocha": "catppuccin-latte",
	"catppuccin-latte": "catppuccin-mocha",
}

// DefaultTheme is used when a config names no theme or an unknown one.
const DefaultTheme = "solar"

// GetTheme returns a theme by name, or the default theme if not found
func GetTheme(name string) Theme {
	if theme, ok := Themes[name]; ok {
		return theme
	}
	return Themes[DefaultTheme]
}

// ListThemes returns all available theme names, sorted
func ListThemes() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveTheme picks the named theme, swaps to its sibling when the terminal
// background disagrees, then applies the background and accent overrides.
func ResolveTheme(name string, isDark bool, background, accent string) Theme {
	theme := GetTheme(name)
	if theme.Dark != isDark {
		if sibling, ok := counterparts[name]; ok {
			theme = Themes[sibling]
		}
	}

	if IsHex(background) {
		theme.Background = background
	}
	if IsHex(accent) {
		theme.ActiveBorder = accent
		theme.ActiveBg = DeriveInactiveBg(accent, theme.Dark)
		theme.ActiveFg = EnsureContrast(DeriveTextColor(theme.ActiveBg), theme.ActiveBg, 4.5)
	}
	return theme
}
