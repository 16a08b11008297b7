package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/b/solar-console/pkg/colors"
	"github.com/b/solar-console/pkg/grid"
)

// headerLines is the title line plus the blank line under it.
const headerLines = 2

func color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// gridOrigin is the screen cell of the grid's top-left corner. The grid is
// centred horizontally below the header.
func (m *model) gridOrigin() (int, int) {
	x := (m.width - m.ctrl.Grid().Layout().Width()) / 2
	if x < 0 {
		x = 0
	}
	return x, headerLines
}

// cellAt maps a screen position to the tile drawn there.
func (m *model) cellAt(x, y int) (grid.Cell, bool) {
	ox, oy := m.gridOrigin()
	return m.ctrl.Grid().Layout().Hit(x-ox, y-oy)
}

func (m *model) View() string {
	bg := color(m.theme.Background)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(color(m.theme.TitleFg)).
		Background(bg).
		Width(m.width).
		Align(lipgloss.Center).
		Render(m.cfg.Title)

	ox, _ := m.gridOrigin()
	body := lipgloss.NewStyle().
		MarginLeft(ox).
		MarginBackground(bg).
		Render(m.renderGrid())

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		body,
		"",
		m.renderStatus(),
		m.help.View(m.keys),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(bg))
}

func (m *model) renderGrid() string {
	g := m.ctrl.Grid()
	l := g.Layout()

	var spacer string
	if l.Gap > 0 {
		spacer = lipgloss.NewStyle().
			Width(l.Gap).
			Height(l.TileHeight).
			Background(color(m.theme.Background)).
			Render("")
	}

	var rows []string
	for r := 0; r < g.Rows(); r++ {
		if r > 0 {
			for i := 0; i < l.Gap; i++ {
				rows = append(rows, "")
			}
		}
		cells := make([]string, 0, 2*g.Cols())
		for c := 0; c < g.Cols(); c++ {
			if c > 0 && spacer != "" {
				cells = append(cells, spacer)
			}
			t, err := g.TileAt(r, c)
			if err != nil {
				continue
			}
			cells = append(cells, m.renderTile(t, l))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderTile draws one tile at exactly TileWidth x TileHeight cells,
// border included.
func (m *model) renderTile(t grid.Tile, l grid.Layout) string {
	w := max(l.TileWidth-2, 1)
	h := max(l.TileHeight-2, 1)
	th := m.theme

	style := lipgloss.NewStyle().
		Width(w).
		Height(h).
		Align(lipgloss.Center, lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderBackground(color(th.Background))

	if t.IsPlaceholder() {
		return style.
			BorderForeground(color(th.PlaceholderBorder)).
			Foreground(color(th.PlaceholderFg)).
			Background(color(th.Background)).
			Render("·")
	}

	bg, fg, border := th.TileBg, th.TileFg, th.TileBorder
	var glyph string
	if s, ok := m.styles[t.Name]; ok {
		bg, fg, glyph = s.Bg, s.Fg, s.Icon
		if t.Active {
			bg, fg = s.ActiveBg, s.ActiveFg
		}
	} else if t.Active {
		bg, fg = th.ActiveBg, th.ActiveFg
	}
	if t.Active {
		style = style.Border(lipgloss.ThickBorder()).Bold(true)
		border = th.ActiveBorder
	}
	if glyph == "" && m.icons[t.Name] != "" {
		glyph = "▣"
	}

	limit := w
	if limit > 2 {
		limit -= 2
	}
	label := runewidth.Truncate(t.Name, limit, "…")
	if glyph != "" && h > 1 {
		label = glyph + "\n" + label
	}

	return style.
		BorderForeground(color(border)).
		Background(color(bg)).
		Foreground(color(fg)).
		Render(label)
}

func (m *model) renderStatus() string {
	text := m.status
	fg := m.theme.StatusFg
	if m.statusErr {
		fg = m.theme.ErrorFg
	}
	if text == "" {
		t := m.ctrl.Grid().ActiveTile()
		name := t.Name
		if t.IsPlaceholder() {
			name = "(empty)"
		}
		text = fmt.Sprintf("%s  %s", name, t.Cell())
	}
	return lipgloss.NewStyle().
		Foreground(color(fg)).
		Background(color(m.theme.Background)).
		Width(m.width).
		Align(lipgloss.Center).
		Render(strings.TrimSpace(text))
}

func helpStyles(th colors.Theme) help.Styles {
	s := help.New().Styles
	keyStyle := lipgloss.NewStyle().Foreground(color(th.TitleFg))
	descStyle := lipgloss.NewStyle().Foreground(color(th.StatusFg))
	sepStyle := lipgloss.NewStyle().Foreground(color(th.TileBorder))
	s.ShortKey, s.FullKey = keyStyle, keyStyle
	s.ShortDesc, s.FullDesc = descStyle, descStyle
	s.ShortSeparator, s.FullSeparator = sepStyle, sepStyle
	return s
}
