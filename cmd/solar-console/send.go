package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/b/solar-console/pkg/daemon"
	"github.com/b/solar-console/pkg/nav"
)

func newSendCmd(opts *options) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "send <up|down|left|right|confirm | hover ROW COL>",
		Short: "Send a navigation command to a running console",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := parseInput(args)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(*opts)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			c, err := daemon.Dial(ctx, cfg.SocketPath(), fmt.Sprintf("send-%d", os.Getpid()))
			if err != nil {
				return err
			}
			defer c.Close()

			state, err := sendAndWait(c, input, timeout)
			if err != nil {
				return err
			}
			printActive(cmd, state)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Second, "how long to wait for the console")
	return cmd
}

// parseInput turns command-line arguments into a remote input.
func parseInput(args []string) (daemon.InputPayload, error) {
	if len(args) == 3 && args[0] == daemon.HoverCommand {
		row, err := strconv.Atoi(args[1])
		if err != nil {
			return daemon.InputPayload{}, fmt.Errorf("row %q: %w", args[1], err)
		}
		col, err := strconv.Atoi(args[2])
		if err != nil {
			return daemon.InputPayload{}, fmt.Errorf("col %q: %w", args[2], err)
		}
		return daemon.Hover(row, col), nil
	}
	if len(args) != 1 {
		return daemon.InputPayload{}, fmt.Errorf("%w: expected one command or hover ROW COL", daemon.ErrInvalidInput)
	}
	if _, ok := nav.ParseCommand(args[0]); !ok {
		return daemon.InputPayload{}, fmt.Errorf("%w: unknown command %q", daemon.ErrInvalidInput, args[0])
	}
	return daemon.InputPayload{Command: args[0]}, nil
}

// sendAndWait subscribes, sends the input and returns the first state
// published after it.
func sendAndWait(c *daemon.Client, input daemon.InputPayload, timeout time.Duration) (*daemon.StatePayload, error) {
	if err := c.Subscribe(); err != nil {
		return nil, err
	}
	current, err := c.NextState(timeout)
	if err != nil {
		return nil, err
	}
	if err := c.Send(input); err != nil {
		return nil, err
	}
	for {
		state, err := c.NextState(timeout)
		if err != nil {
			return nil, err
		}
		if state.SequenceNum > current.SequenceNum {
			return state, nil
		}
	}
}

func printActive(cmd *cobra.Command, state *daemon.StatePayload) {
	tile, ok := state.ActiveTile()
	if !ok {
		return
	}
	name := tile.Name
	if tile.Placeholder {
		name = "(empty)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d,%d)\n", name, tile.Row, tile.Col)
	if state.Status != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), state.Status)
	}
}
