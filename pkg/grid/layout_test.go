package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutSize(t *testing.T) {
	l := Layout{Rows: 2, Cols: 4, TileWidth: 10, TileHeight: 5, Gap: 2}
	assert.Equal(t, 8, l.Capacity())
	assert.Equal(t, 46, l.Width())
	assert.Equal(t, 12, l.Height())

	assert.Zero(t, Layout{Rows: 0, Cols: 4}.Capacity())
	assert.Zero(t, Layout{}.Width())
}

func TestLayoutHit(t *testing.T) {
	l := Layout{Rows: 2, Cols: 3, TileWidth: 10, TileHeight: 4, Gap: 2}

	tests := []struct {
		name string
		x, y int
		want Cell
		ok   bool
	}{
		{"origin", 0, 0, Cell{0, 0}, true},
		{"inside first tile", 9, 3, Cell{0, 0}, true},
		{"horizontal gap", 10, 0, Cell{}, false},
		{"second column", 12, 1, Cell{0, 1}, true},
		{"vertical gap", 0, 4, Cell{}, false},
		{"second row", 25, 6, Cell{1, 2}, true},
		{"right of grid", 36, 0, Cell{}, false},
		{"below grid", 0, 12, Cell{}, false},
		{"negative", -1, 0, Cell{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.Hit(tt.x, tt.y)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLayoutHitDegenerateGeometry(t *testing.T) {
	for _, l := range []Layout{
		{Rows: 2, Cols: 4, TileWidth: 2, TileHeight: 3, Gap: -2},
		{Rows: 2, Cols: 4, TileWidth: 3, TileHeight: 2, Gap: -5},
		{Rows: 2, Cols: 4},
	} {
		assert.NotPanics(t, func() {
			_, ok := l.Hit(5, 1)
			assert.False(t, ok, "%+v", l)
		})
	}
}

func TestParseOverflow(t *testing.T) {
	assert.Equal(t, OverflowError, ParseOverflow("error"))
	assert.Equal(t, OverflowTruncate, ParseOverflow("truncate"))
	assert.Equal(t, OverflowTruncate, ParseOverflow(""))
	assert.Equal(t, "error", OverflowError.String())
	assert.Equal(t, "truncate", OverflowTruncate.String())
}
