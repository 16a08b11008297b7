package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/b/solar-console/pkg/config"
	"github.com/b/solar-console/pkg/daemon"
	"github.com/b/solar-console/pkg/entries"
	"github.com/b/solar-console/pkg/grid"
	"github.com/b/solar-console/pkg/grouping"
)

func newTilesCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tiles",
		Short: "Print the grid built from the config and app list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*opts)
			if err != nil {
				return err
			}
			names, err := entries.Load(cfg.EntriesPath())
			if err != nil {
				return err
			}
			g, err := grid.Build(names, cfg.GridLayout(len(names)))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(daemon.Snapshot(cfg.Title, g, entries.Icons(iconDir(cfg), cfg.Icons.Ext, names)))
			}

			width := 80
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
				width = w
			}
			renderPlain(out, cfg, g, names, width)
			if dropped := g.Dropped(); len(dropped) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "did not fit: %s\n", strings.Join(dropped, ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tile state as JSON")
	return cmd
}

// renderPlain prints the grid as a text table sized to width. The active
// tile is marked with '>' and placeholders print as '·'.
func renderPlain(w io.Writer, cfg *config.Config, g *grid.Grid, names []string, width int) {
	fmt.Fprintln(w, cfg.Title)

	cell := (width - (g.Cols() - 1)) / g.Cols()
	if cell < 4 {
		cell = 4
	}
	for r := 0; r < g.Rows(); r++ {
		parts := make([]string, 0, g.Cols())
		for c := 0; c < g.Cols(); c++ {
			t, _ := g.TileAt(r, c)
			label := "·"
			if !t.IsPlaceholder() {
				label = t.Name
			}
			mark := " "
			if t.Active {
				mark = ">"
			}
			parts = append(parts, mark+runewidth.FillRight(runewidth.Truncate(label, cell-1, "…"), cell-1))
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, " "), " "))
	}

	if len(cfg.Groups) == 0 {
		return
	}
	resolver, err := grouping.NewResolver(cfg.Groups, true)
	if err != nil {
		fmt.Fprintf(w, "groups: %v\n", err)
	}
	for _, group := range resolver.GroupEntries(names) {
		fmt.Fprintf(w, "%s%s: %s\n", iconPrefix(group.Theme.Icon), group.Name, strings.Join(group.Entries, ", "))
	}
}

func iconPrefix(icon string) string {
	if icon == "" {
		return ""
	}
	return icon + " "
}
