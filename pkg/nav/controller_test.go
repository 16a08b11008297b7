package nav

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b/solar-console/pkg/grid"
)

type recordingLauncher struct {
	launched []string
	err      error
}

func (r *recordingLauncher) Launch(name string) error {
	r.launched = append(r.launched, name)
	return r.err
}

func newController(t *testing.T, entries []string, rows, cols int) (*Controller, *recordingLauncher) {
	t.Helper()
	g, err := grid.Build(entries, grid.Layout{Rows: rows, Cols: cols})
	require.NoError(t, err)
	l := &recordingLauncher{}
	return New(g, l), l
}

func activeCount(g *grid.Grid) int {
	n := 0
	for _, tile := range g.Tiles() {
		if tile.Active {
			n++
		}
	}
	return n
}

func TestWraparound(t *testing.T) {
	tests := []struct {
		name  string
		start grid.Cell
		cmd   Command
		want  grid.Cell
	}{
		{"up from top row", grid.Cell{Row: 0, Col: 2}, Up, grid.Cell{Row: 2, Col: 2}},
		{"down from bottom row", grid.Cell{Row: 2, Col: 1}, Down, grid.Cell{Row: 0, Col: 1}},
		{"left from first column", grid.Cell{Row: 1, Col: 0}, Left, grid.Cell{Row: 1, Col: 4}},
		{"right from last column", grid.Cell{Row: 1, Col: 4}, Right, grid.Cell{Row: 1, Col: 0}},
		{"up inside", grid.Cell{Row: 2, Col: 3}, Up, grid.Cell{Row: 1, Col: 3}},
		{"left inside", grid.Cell{Row: 0, Col: 3}, Left, grid.Cell{Row: 0, Col: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newController(t, []string{"A"}, 3, 5)
			_, err := c.Hover(tt.start.Row, tt.start.Col)
			require.NoError(t, err)

			got, err := c.Handle(tt.cmd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, c.Active())
		})
	}
}

// Column wrap follows the configured width, not a fixed four columns.
func TestHorizontalWrapUsesConfiguredCols(t *testing.T) {
	for _, cols := range []int{1, 2, 3, 4, 6, 7} {
		c, _ := newController(t, nil, 2, cols)

		got, err := c.Handle(Left)
		require.NoError(t, err)
		assert.Equal(t, grid.Cell{Row: 0, Col: cols - 1}, got, "cols=%d", cols)

		got, err = c.Handle(Right)
		require.NoError(t, err)
		assert.Equal(t, grid.Cell{Row: 0, Col: 0}, got, "cols=%d", cols)
	}
}

func TestRoundTripFromEveryCell(t *testing.T) {
	pairs := [][2]Command{{Up, Down}, {Down, Up}, {Left, Right}, {Right, Left}}
	for _, shape := range [][2]int{{1, 1}, {1, 4}, {2, 4}, {3, 3}, {4, 1}} {
		rows, cols := shape[0], shape[1]
		c, _ := newController(t, []string{"A", "B"}, rows, cols)
		for r := 0; r < rows; r++ {
			for col := 0; col < cols; col++ {
				for _, p := range pairs {
					_, err := c.Hover(r, col)
					require.NoError(t, err)
					_, err = c.Handle(p[0])
					require.NoError(t, err)
					got, err := c.Handle(p[1])
					require.NoError(t, err)
					assert.Equal(t, grid.Cell{Row: r, Col: col}, got,
						"shape %dx%d, %v then %v", rows, cols, p[0], p[1])
				}
			}
		}
	}
}

func TestSingleActiveTileUnderRandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cmds := []Command{Up, Down, Left, Right, Confirm, None, Command(42)}

	for _, shape := range [][2]int{{1, 1}, {2, 4}, {3, 5}, {5, 2}} {
		c, _ := newController(t, []string{"A", "B", "C"}, shape[0], shape[1])
		for i := 0; i < 500; i++ {
			var got grid.Cell
			var err error
			if rng.Intn(5) == 0 {
				got, err = c.Hover(rng.Intn(shape[0]), rng.Intn(shape[1]))
			} else {
				got, err = c.Handle(cmds[rng.Intn(len(cmds))])
			}
			require.NoError(t, err)
			require.Equal(t, 1, activeCount(c.Grid()))
			require.Equal(t, got, c.Active())
			require.True(t, got.Row >= 0 && got.Row < shape[0])
			require.True(t, got.Col >= 0 && got.Col < shape[1])
		}
	}
}

func TestNextStaysInRange(t *testing.T) {
	for rows := 1; rows <= 4; rows++ {
		for cols := 1; cols <= 5; cols++ {
			for r := 0; r < rows; r++ {
				for c := 0; c < cols; c++ {
					for _, cmd := range []Command{Up, Down, Left, Right, Confirm, None} {
						n := Next(cmd, grid.Cell{Row: r, Col: c}, rows, cols)
						assert.True(t, n.Row >= 0 && n.Row < rows && n.Col >= 0 && n.Col < cols,
							"Next(%v, (%d,%d), %d, %d) = %v", cmd, r, c, rows, cols, n)
					}
				}
			}
		}
	}
}

func TestConfirmLaunchesActiveEntry(t *testing.T) {
	c, l := newController(t, []string{"A", "B"}, 1, 4)

	_, err := c.Handle(Right)
	require.NoError(t, err)
	at, err := c.Handle(Confirm)
	require.NoError(t, err)

	assert.Equal(t, grid.Cell{Row: 0, Col: 1}, at)
	assert.Equal(t, []string{"B"}, l.launched)
}

func TestConfirmOnPlaceholderDoesNotLaunch(t *testing.T) {
	c, l := newController(t, []string{"A"}, 1, 4)

	_, err := c.Handle(Left)
	require.NoError(t, err)
	_, err = c.Handle(Confirm)
	require.NoError(t, err)

	assert.Empty(t, l.launched)
}

func TestConfirmSurfacesLaunchError(t *testing.T) {
	c, l := newController(t, []string{"Steam"}, 1, 1)
	l.err = errors.New("exec: not found")

	at, err := c.Handle(Confirm)
	require.Error(t, err)
	assert.ErrorIs(t, err, l.err)
	assert.Contains(t, err.Error(), "Steam")
	assert.Equal(t, grid.Cell{}, at)
}

func TestConfirmWithoutLauncher(t *testing.T) {
	g, err := grid.Build([]string{"A"}, grid.Layout{Rows: 1, Cols: 1})
	require.NoError(t, err)

	_, err = New(g, nil).Handle(Confirm)
	assert.NoError(t, err)
}

func TestLauncherFunc(t *testing.T) {
	var got string
	g, err := grid.Build([]string{"Kodi"}, grid.Layout{Rows: 1, Cols: 2})
	require.NoError(t, err)

	c := New(g, LauncherFunc(func(name string) error {
		got = name
		return nil
	}))
	_, err = c.Handle(Confirm)
	require.NoError(t, err)
	assert.Equal(t, "Kodi", got)
}

func TestUnknownCommandIgnored(t *testing.T) {
	c, l := newController(t, []string{"A", "B"}, 2, 2)
	_, err := c.Hover(1, 1)
	require.NoError(t, err)

	for _, cmd := range []Command{None, Command(-3), Command(99)} {
		at, err := c.Handle(cmd)
		assert.NoError(t, err)
		assert.Equal(t, grid.Cell{Row: 1, Col: 1}, at)
	}
	assert.Empty(t, l.launched)
}

func TestScenarioTwoByFour(t *testing.T) {
	c, l := newController(t, []string{"A", "B", "C", "D", "E"}, 2, 4)

	assert.Equal(t, grid.Cell{Row: 0, Col: 0}, c.Active())
	assert.Equal(t, "A", c.Grid().ActiveTile().Name)

	for _, cmd := range []Command{Down, Right, Right} {
		_, err := c.Handle(cmd)
		require.NoError(t, err)
	}
	assert.Equal(t, grid.Cell{Row: 1, Col: 2}, c.Active())
	assert.True(t, c.Grid().ActiveTile().IsPlaceholder())

	_, err := c.Handle(Confirm)
	require.NoError(t, err)
	assert.Empty(t, l.launched)
}

func TestHoverAndKeysLastWriterWins(t *testing.T) {
	c, _ := newController(t, []string{"A", "B", "C", "D", "E"}, 2, 4)

	// key then hover: hover wins
	_, err := c.Handle(Right)
	require.NoError(t, err)
	_, err = c.Hover(1, 3)
	require.NoError(t, err)
	assert.Equal(t, grid.Cell{Row: 1, Col: 3}, c.Active())

	// hover then key: key moves from the hovered cell
	_, err = c.Hover(0, 2)
	require.NoError(t, err)
	got, err := c.Handle(Down)
	require.NoError(t, err)
	assert.Equal(t, grid.Cell{Row: 1, Col: 2}, got)
	assert.Equal(t, 1, activeCount(c.Grid()))
}

func TestHoverOutsideGridKeepsSelection(t *testing.T) {
	c, _ := newController(t, []string{"A"}, 2, 2)
	_, err := c.Hover(1, 0)
	require.NoError(t, err)

	at, err := c.Hover(2, 0)
	assert.ErrorIs(t, err, grid.ErrOutOfRange)
	assert.Equal(t, grid.Cell{Row: 1, Col: 0}, at)
	assert.Equal(t, 1, activeCount(c.Grid()))
}

func TestResetSwapsGrid(t *testing.T) {
	c, _ := newController(t, []string{"A"}, 1, 2)
	_, err := c.Handle(Right)
	require.NoError(t, err)

	g, err := grid.Build([]string{"X", "Y", "Z"}, grid.Layout{Rows: 3, Cols: 1})
	require.NoError(t, err)
	c.Reset(g)

	assert.Same(t, g, c.Grid())
	assert.Equal(t, grid.Cell{}, c.Active())
	got, err := c.Handle(Up)
	require.NoError(t, err)
	assert.Equal(t, grid.Cell{Row: 2, Col: 0}, got)
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want Command
		ok   bool
	}{
		{"up", Up, true},
		{"DOWN", Down, true},
		{" left ", Left, true},
		{"right", Right, true},
		{"confirm", Confirm, true},
		{"enter", Confirm, true},
		{"select", Confirm, true},
		{"jump", None, false},
		{"", None, false},
	}
	for _, tt := range tests {
		got, ok := ParseCommand(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseCommand(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseCommand(%q)", tt.in)
	}
	assert.Equal(t, "confirm", Confirm.String())
	assert.Equal(t, "none", Command(99).String())
}
