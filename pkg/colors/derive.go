package colors

// TileColors is the full color set for one entry tile in both states.
type TileColors struct {
	Bg       string
	Fg       string
	ActiveBg string
	ActiveFg string
}

// groupDefaults is used when a group names no base color at all.
var groupDefaults = []string{
	"#3498db", // Blue
	"#2ecc71", // Green
	"#e74c3c", // Red
	"#9b59b6", // Purple
	"#f39c12", // Orange
	"#1abc9c", // Turquoise
	"#e67e22", // Carrot
	"#34495e", // Dark blue-gray
}

// GetDefaultGroupColor returns a palette color for the n-th group.
func GetDefaultGroupColor(groupIndex int) string {
	if groupIndex < 0 {
		groupIndex = -groupIndex
	}
	return groupDefaults[groupIndex%len(groupDefaults)]
}

// DeriveTileColors fills the empty fields of c from its Bg.
// An empty Bg falls back to the first default group color.
func DeriveTileColors(c TileColors, isDarkTerminalBg bool) TileColors {
	if c.Bg == "" {
		c.Bg = GetDefaultGroupColor(0)
	}
	if c.ActiveBg == "" {
		c.ActiveBg = DeriveActiveBg(c.Bg, isDarkTerminalBg)
	}
	if c.Fg == "" {
		c.Fg = DeriveTextColor(c.Bg)
	}
	if c.ActiveFg == "" {
		c.ActiveFg = DeriveTextColor(c.ActiveBg)
	}

	c.Fg = EnsureContrast(c.Fg, c.Bg, 4.5)
	c.ActiveFg = EnsureContrast(c.ActiveFg, c.ActiveBg, 4.5)
	return c
}

// DeriveActiveBg creates a saturated, vibrant version for the selected tile
func DeriveActiveBg(baseColor string, isDarkTerminalBg bool) string {
	h, s, l := hexToHSL(baseColor)
	if h < 0 {
		return baseColor
	}

	s *= 1.4
	if s > 1.0 {
		s = 1.0
	}

	// Brighter on dark terminals, deeper on light ones
	if isDarkTerminalBg {
		l = clampf(l*1.2, 0.35, 0.6)
	} else {
		l = clampf(l*0.9, 0.25, 0.5)
	}

	return hslToHex(h, s, l)
}

// DeriveInactiveBg creates a subtle, desaturated version of a color
func DeriveInactiveBg(baseColor string, isDarkTerminalBg bool) string {
	h, s, l := hexToHSL(baseColor)
	if h < 0 {
		return baseColor
	}

	s *= 0.7
	if isDarkTerminalBg {
		l = clampf(l*1.1, 0, 0.45)
	} else {
		l = clampf(l*0.95, 0, 0.4)
	}

	return hslToHex(h, s, l)
}

// DeriveTextColor determines the best text color (white or black) for a background.
// Uses WCAG AA large-text threshold (3:1) to prefer white on colored backgrounds,
// falling back to black for truly light backgrounds.
func DeriveTextColor(bgColor string) string {
	if GetContrastRatio("#ffffff", bgColor) >= 3.0 {
		return "#ffffff"
	}
	if GetContrastRatio("#000000", bgColor) >= 3.0 {
		return "#000000"
	}
	if IsLightColor(bgColor) {
		return "#000000"
	}
	return "#ffffff"
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// hexToHSL converts hex color to HSL (hue 0-360, saturation 0-1, lightness 0-1)
// Returns -1, 0, 0 for invalid colors
func hexToHSL(hexColor string) (float64, float64, float64) {
	r, g, b := hexToRGB(hexColor)
	if r < 0 {
		return -1, 0, 0
	}

	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	max := rf
	if gf > max {
		max = gf
	}
	if bf > max {
		max = bf
	}
	min := rf
	if gf < min {
		min = gf
	}
	if bf < min {
		min = bf
	}

	l := (max + min) / 2.0
	if max == min {
		return 0, 0, l
	}

	d := max - min
	var h, s float64
	if l > 0.5 {
		s = d / (2.0 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2
	case bf:
		h = (rf-gf)/d + 4
	}
	h *= 60

	return h, s, l
}

func hslToHex(h, s, l float64) string {
	r, g, b := hslToRGB(h, s, l)
	return rgbToHex(int64(r*255.0), int64(g*255.0), int64(b*255.0))
}

func hslToRGB(h, s, l float64) (float64, float64, float64) {
	if s == 0 {
		return l, l, l
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return hueToRGB(p, q, h/360.0+1.0/3.0),
		hueToRGB(p, q, h/360.0),
		hueToRGB(p, q, h/360.0-1.0/3.0)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
