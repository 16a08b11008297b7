// Package daemon is the console's remote-control socket. Clients send
// navigation commands and receive the grid state after every change.
// Messages are JSON objects, one per line.
package daemon

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/b/solar-console/pkg/grid"
	"github.com/b/solar-console/pkg/nav"
)

// MessageType identifies the type of message
type MessageType string

const (
	MsgSubscribe   MessageType = "subscribe"   // Client -> Server: start receiving state
	MsgUnsubscribe MessageType = "unsubscribe" // Client -> Server: stop and disconnect
	MsgInput       MessageType = "input"       // Client -> Server: navigation command
	MsgState       MessageType = "state"       // Server -> Client: grid snapshot
	MsgError       MessageType = "error"       // Server -> Client: rejected input
	MsgPing        MessageType = "ping"
	MsgPong        MessageType = "pong"
)

// HoverCommand is the input command that moves the selection to Row, Col.
const HoverCommand = "hover"

// ErrInvalidInput is returned for input the console cannot act on.
var ErrInvalidInput = errors.New("invalid input")

// Message is the envelope for everything on the socket
type Message struct {
	Type     MessageType `json:"type"`
	ClientID string      `json:"client_id,omitempty"`
	Payload  interface{} `json:"payload,omitempty"`
}

// InputPayload is a navigation command from a client. Row and Col are only
// used by hover.
type InputPayload struct {
	Command string `json:"command"`
	Row     *int   `json:"row,omitempty"`
	Col     *int   `json:"col,omitempty"`
}

// Hover builds the input that selects the tile at row, col.
func Hover(row, col int) InputPayload {
	return InputPayload{Command: HoverCommand, Row: &row, Col: &col}
}

// Validate checks the command name and the hover coordinates.
func (p *InputPayload) Validate() error {
	if strings.EqualFold(strings.TrimSpace(p.Command), HoverCommand) {
		if p.Row == nil || p.Col == nil {
			return fmt.Errorf("%w: hover needs row and col", ErrInvalidInput)
		}
		return nil
	}
	if _, ok := nav.ParseCommand(p.Command); !ok {
		return fmt.Errorf("%w: unknown command %q", ErrInvalidInput, p.Command)
	}
	return nil
}

// IsHover reports whether the input is a hover.
func (p *InputPayload) IsHover() bool {
	return strings.EqualFold(strings.TrimSpace(p.Command), HoverCommand)
}

// TileState is one tile as seen by remote clients
type TileState struct {
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Active      bool   `json:"active"`
	Placeholder bool   `json:"placeholder"`
}

// StatePayload is a full snapshot of the console grid
type StatePayload struct {
	SequenceNum uint64      `json:"seq"` // Monotonic, set by the server on publish
	Title       string      `json:"title"`
	Rows        int         `json:"rows"`
	Cols        int         `json:"cols"`
	Active      grid.Cell   `json:"active"`
	Tiles       []TileState `json:"tiles"`
	Dropped     []string    `json:"dropped,omitempty"`
	Status      string      `json:"status,omitempty"`
}

// ActiveTile returns the tile marked active, if any.
func (s *StatePayload) ActiveTile() (TileState, bool) {
	for _, t := range s.Tiles {
		if t.Active {
			return t, true
		}
	}
	return TileState{}, false
}

// ErrorPayload reports why an input was rejected
type ErrorPayload struct {
	Message string `json:"message"`
}

// Snapshot converts a grid into the wire state. icons maps entry names to
// icon paths and may be nil.
func Snapshot(title string, g *grid.Grid, icons map[string]string) *StatePayload {
	s := &StatePayload{
		Title:   title,
		Rows:    g.Rows(),
		Cols:    g.Cols(),
		Active:  g.ActiveCell(),
		Dropped: g.Dropped(),
	}
	for _, t := range g.Tiles() {
		s.Tiles = append(s.Tiles, TileState{
			Row:         t.Row,
			Col:         t.Col,
			Name:        t.Name,
			Icon:        icons[t.Name],
			Active:      t.Active,
			Placeholder: t.IsPlaceholder(),
		})
	}
	return s
}

// decodePayload re-decodes a generic payload into v.
func decodePayload(payload interface{}, v interface{}) error {
	if payload == nil {
		return fmt.Errorf("%w: missing payload", ErrInvalidInput)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
