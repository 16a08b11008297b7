// Package nav moves the active tile of a grid in response to directional
// commands and pointer hover, and launches the active entry on Confirm.
package nav

import (
	"fmt"

	"github.com/b/solar-console/pkg/grid"
)

// Launcher starts the program associated with an entry. Launch returns once
// the program has been started; it does not wait for it to exit.
type Launcher interface {
	Launch(name string) error
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(name string) error

func (f LauncherFunc) Launch(name string) error { return f(name) }

// Controller drives a grid. It keeps no position of its own: every command
// starts from the grid's active cell, so keyboard, pointer and remote input
// resolve last-writer-wins.
type Controller struct {
	grid     *grid.Grid
	launcher Launcher
}

// New returns a controller for g. A nil launcher makes Confirm a no-op.
func New(g *grid.Grid, launcher Launcher) *Controller {
	return &Controller{grid: g, launcher: launcher}
}

// Grid returns the grid being driven.
func (c *Controller) Grid() *grid.Grid { return c.grid }

// Reset swaps in a rebuilt grid after a reconfiguration.
func (c *Controller) Reset(g *grid.Grid) { c.grid = g }

// Active returns the active cell.
func (c *Controller) Active() grid.Cell { return c.grid.ActiveCell() }

// Handle applies one command and returns the active cell afterwards.
// Unrecognized commands are ignored. A Confirm over a real entry returns the
// launcher's error, if any.
func (c *Controller) Handle(cmd Command) (grid.Cell, error) {
	at := c.grid.ActiveCell()
	switch cmd {
	case Up, Down, Left, Right:
		next := Next(cmd, at, c.grid.Rows(), c.grid.Cols())
		if err := c.grid.SetActive(next.Row, next.Col); err != nil {
			// Next only yields in-range cells.
			panic(fmt.Sprintf("nav: computed %v outside grid: %v", next, err))
		}
		return next, nil
	case Confirm:
		return at, c.confirm()
	}
	return at, nil
}

func (c *Controller) confirm() error {
	tile := c.grid.ActiveTile()
	if tile.IsPlaceholder() || c.launcher == nil {
		return nil
	}
	if err := c.launcher.Launch(tile.Name); err != nil {
		return fmt.Errorf("launch %q: %w", tile.Name, err)
	}
	return nil
}

// Hover makes the tile under the pointer active. Leaving the grid does not
// clear the selection.
func (c *Controller) Hover(row, col int) (grid.Cell, error) {
	if err := c.grid.SetActive(row, col); err != nil {
		return c.grid.ActiveCell(), err
	}
	return grid.Cell{Row: row, Col: col}, nil
}
