// Package grid holds the launcher tiles and the single active cell.
//
// A Grid is built once from an ordered list of entry names and a fixed
// Layout. Entries fill cells in row-major order; cells past the end of the
// list hold placeholders. Exactly one tile is active from construction on,
// and SetActive is the only mutator.
package grid

import "fmt"

// Placeholder is the entry name of an empty tile. It never launches.
const Placeholder = ""

// Cell is a grid coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Tile is one cell of the grid.
type Tile struct {
	Row    int
	Col    int
	Name   string
	Active bool
}

// IsPlaceholder reports whether the tile has no launch target.
func (t Tile) IsPlaceholder() bool {
	return t.Name == Placeholder
}

// Cell returns the tile's coordinate.
func (t Tile) Cell() Cell {
	return Cell{Row: t.Row, Col: t.Col}
}

// Grid is a fixed rows x cols collection of tiles. It is not safe for
// concurrent use; callers mutate it from a single event loop.
type Grid struct {
	layout  Layout
	tiles   []Tile
	active  int
	dropped []string
}

// Build places entries into a new grid. Rows or Cols below one, or an
// overflowing entry list under OverflowError, fail with *ConfigurationError
// and no grid.
func Build(entries []string, layout Layout) (*Grid, error) {
	if layout.Rows <= 0 {
		return nil, &ConfigurationError{Field: "rows", Value: layout.Rows, Reason: "must be positive"}
	}
	if layout.Cols <= 0 {
		return nil, &ConfigurationError{Field: "cols", Value: layout.Cols, Reason: "must be positive"}
	}

	capacity := layout.Capacity()
	var dropped []string
	if len(entries) > capacity {
		if layout.Overflow == OverflowError {
			return nil, &ConfigurationError{
				Field:  "entries",
				Value:  len(entries),
				Reason: fmt.Sprintf("exceeds grid capacity %d", capacity),
			}
		}
		dropped = append([]string(nil), entries[capacity:]...)
	}

	g := &Grid{
		layout:  layout,
		tiles:   make([]Tile, capacity),
		dropped: dropped,
	}
	for k := range g.tiles {
		name := Placeholder
		if k < len(entries) {
			name = entries[k]
		}
		g.tiles[k] = Tile{Row: k / layout.Cols, Col: k % layout.Cols, Name: name}
	}
	g.tiles[0].Active = true
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.layout.Rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.layout.Cols }

// Len returns the number of tiles.
func (g *Grid) Len() int { return len(g.tiles) }

// Layout returns the layout the grid was built with.
func (g *Grid) Layout() Layout { return g.layout }

// Dropped returns the entries that did not fit, in their original order.
func (g *Grid) Dropped() []string {
	return append([]string(nil), g.dropped...)
}

func (g *Grid) index(row, col int) (int, error) {
	if row < 0 || row >= g.layout.Rows || col < 0 || col >= g.layout.Cols {
		return 0, &OutOfRangeError{Row: row, Col: col, Rows: g.layout.Rows, Cols: g.layout.Cols}
	}
	return row*g.layout.Cols + col, nil
}

// TileAt returns a copy of the tile at (row, col).
func (g *Grid) TileAt(row, col int) (Tile, error) {
	i, err := g.index(row, col)
	if err != nil {
		return Tile{}, err
	}
	return g.tiles[i], nil
}

// ActiveCell returns the coordinate of the active tile.
func (g *Grid) ActiveCell() Cell {
	return g.tiles[g.active].Cell()
}

// ActiveTile returns a copy of the active tile.
func (g *Grid) ActiveTile() Tile {
	return g.tiles[g.active]
}

// SetActive moves the active flag to (row, col). An invalid coordinate
// leaves the grid untouched.
func (g *Grid) SetActive(row, col int) error {
	i, err := g.index(row, col)
	if err != nil {
		return err
	}
	if i == g.active {
		return nil
	}
	g.tiles[g.active].Active = false
	g.tiles[i].Active = true
	g.active = i
	return nil
}

// Find returns the first tile holding name. Placeholders are never found.
func (g *Grid) Find(name string) (Cell, bool) {
	if name == Placeholder {
		return Cell{}, false
	}
	for _, t := range g.tiles {
		if t.Name == name {
			return t.Cell(), true
		}
	}
	return Cell{}, false
}

// Tiles returns a row-major snapshot of every tile.
func (g *Grid) Tiles() []Tile {
	return append([]Tile(nil), g.tiles...)
}
