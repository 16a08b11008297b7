package colors

import (
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// ThemeMode represents the theme detection mode
type ThemeMode string

const (
	ThemeModeAuto  ThemeMode = "auto"
	ThemeModeDark  ThemeMode = "dark"
	ThemeModeLight ThemeMode = "light"
)

// ParseThemeMode maps a config value to a ThemeMode; unknown values are auto.
func ParseThemeMode(s string) ThemeMode {
	switch ThemeMode(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeModeDark:
		return ThemeModeDark
	case ThemeModeLight:
		return ThemeModeLight
	default:
		return ThemeModeAuto
	}
}

// BackgroundDetector handles detection of terminal background theme
type BackgroundDetector struct {
	mode          ThemeMode
	cachedIsDark  *bool
	detectedColor string

	// query is swapped out in tests so no OSC sequence hits the terminal.
	query func() (bool, bool)
}

// NewBackgroundDetector creates a new background detector with the given mode
func NewBackgroundDetector(mode ThemeMode) *BackgroundDetector {
	d := &BackgroundDetector{mode: mode}
	d.query = d.checkTermenvBackground
	return d
}

// IsDarkBackground returns true if the background is dark. The answer is
// computed once per detector.
func (d *BackgroundDetector) IsDarkBackground() bool {
	if d.cachedIsDark != nil {
		return *d.cachedIsDark
	}

	var isDark bool
	switch d.mode {
	case ThemeModeDark:
		isDark = true
	case ThemeModeLight:
		isDark = false
	default:
		isDark = d.detectDarkBackground()
	}

	d.cachedIsDark = &isDark
	return isDark
}

// GetDetectedColor returns the detected background color hex if available
func (d *BackgroundDetector) GetDetectedColor() string {
	return d.detectedColor
}

func (d *BackgroundDetector) detectDarkBackground() bool {
	// COLORFGBG is cheap and does not touch the terminal
	if isDark, ok := checkCOLORFGBG(os.Getenv("COLORFGBG")); ok {
		return isDark
	}
	if isDark, ok := d.query(); ok {
		return isDark
	}
	if isDark, ok := checkTerminalHints(); ok {
		return isDark
	}
	// Most console setups are dark
	return true
}

// checkCOLORFGBG parses "fg;bg" ANSI indexes. 0-7 are dark, 8-15 are light.
func checkCOLORFGBG(colorFGBG string) (bool, bool) {
	if colorFGBG == "" {
		return false, false
	}
	parts := strings.Split(colorFGBG, ";")
	if len(parts) < 2 {
		return false, false
	}
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return false, false
	}
	return bg < 8 || bg == 16, true
}

// checkTermenvBackground sends an OSC query. It does not work under
// tmux or screen; termenv reports NoColor there.
func (d *BackgroundDetector) checkTermenvBackground() (bool, bool) {
	output := termenv.NewOutput(os.Stdout)
	bgColor := output.BackgroundColor()
	if bgColor == nil {
		return false, false
	}
	if _, ok := bgColor.(termenv.NoColor); ok {
		return false, false
	}

	d.detectedColor = termenv.ConvertToRGB(bgColor).Hex()
	return output.HasDarkBackground(), true
}

func checkTerminalHints() (bool, bool) {
	profile := strings.ToLower(os.Getenv("ITERM_PROFILE"))
	if strings.Contains(profile, "light") {
		return false, true
	}
	if strings.Contains(profile, "dark") {
		return true, true
	}
	return false, false
}
