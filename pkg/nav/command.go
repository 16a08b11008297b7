package nav

import (
	"strings"

	"github.com/b/solar-console/pkg/grid"
)

// Command is one navigation input.
type Command int

const (
	None Command = iota
	Up
	Down
	Left
	Right
	Confirm
)

var commandNames = map[Command]string{
	Up:      "up",
	Down:    "down",
	Left:    "left",
	Right:   "right",
	Confirm: "confirm",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "none"
}

// ParseCommand maps a command name to a Command. "enter" and "select" are
// accepted as Confirm.
func ParseCommand(s string) (Command, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	case "confirm", "enter", "select":
		return Confirm, true
	}
	return None, false
}

// Next is the transition table. Directional commands wrap around the
// configured shape; anything else stays put. The result is always inside
// [0,rows)x[0,cols) when at is.
func Next(cmd Command, at grid.Cell, rows, cols int) grid.Cell {
	switch cmd {
	case Up:
		return grid.Cell{Row: (at.Row - 1 + rows) % rows, Col: at.Col}
	case Down:
		return grid.Cell{Row: (at.Row + 1) % rows, Col: at.Col}
	case Left:
		return grid.Cell{Row: at.Row, Col: (at.Col - 1 + cols) % cols}
	case Right:
		return grid.Cell{Row: at.Row, Col: (at.Col + 1) % cols}
	}
	return at
}
