package grid

// OverflowPolicy decides what Build does with more entries than cells.
type OverflowPolicy int

const (
	// OverflowTruncate places the first Rows*Cols entries and reports the
	// rest through Grid.Dropped.
	OverflowTruncate OverflowPolicy = iota
	// OverflowError rejects the entry list with a *ConfigurationError.
	OverflowError
)

// ParseOverflow maps a config value to a policy. Unknown values truncate.
func ParseOverflow(mode string) OverflowPolicy {
	if mode == "error" {
		return OverflowError
	}
	return OverflowTruncate
}

func (p OverflowPolicy) String() string {
	if p == OverflowError {
		return "error"
	}
	return "truncate"
}

// Layout is the fixed shape of a grid plus the cell geometry renderers use.
// Only Rows, Cols and Overflow affect grid logic.
type Layout struct {
	Rows       int
	Cols       int
	TileWidth  int
	TileHeight int
	Gap        int
	Overflow   OverflowPolicy
}

// Capacity is the number of cells.
func (l Layout) Capacity() int {
	if l.Rows <= 0 || l.Cols <= 0 {
		return 0
	}
	return l.Rows * l.Cols
}

// Width is the rendered width of all columns including the gaps between them.
func (l Layout) Width() int {
	if l.Cols <= 0 {
		return 0
	}
	return l.Cols*l.TileWidth + (l.Cols-1)*l.Gap
}

// Height is the rendered height of all rows including the gaps between them.
func (l Layout) Height() int {
	if l.Rows <= 0 {
		return 0
	}
	return l.Rows*l.TileHeight + (l.Rows-1)*l.Gap
}

// Hit maps a point relative to the top-left corner of the grid to the cell
// drawn there. Points on a gap or outside the grid miss.
func (l Layout) Hit(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || l.TileWidth <= 0 || l.TileHeight <= 0 {
		return Cell{}, false
	}
	pitchX := l.TileWidth + l.Gap
	pitchY := l.TileHeight + l.Gap
	if pitchX <= 0 || pitchY <= 0 {
		return Cell{}, false
	}

	col, offX := x/pitchX, x%pitchX
	row, offY := y/pitchY, y%pitchY
	if col >= l.Cols || row >= l.Rows {
		return Cell{}, false
	}
	if offX >= l.TileWidth || offY >= l.TileHeight {
		return Cell{}, false
	}
	return Cell{Row: row, Col: col}, true
}
