// Package tmux opens launched programs in tmux windows when the console
// itself runs inside tmux.
package tmux

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// run executes tmux and returns its stdout. Replaced in tests.
var run = func(args ...string) ([]byte, error) {
	return exec.Command("tmux", args...).Output()
}

// InSession reports whether the process runs inside a tmux client.
func InSession() bool {
	return os.Getenv("TMUX") != ""
}

// ListWindowNames returns the window names of the current session, in
// index order.
func ListWindowNames() ([]string, error) {
	out, err := run("list-windows", "-F", "#{window_name}")
	if err != nil {
		return nil, fmt.Errorf("tmux list-windows failed: %w", err)
	}
	var names []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// HasWindow reports whether a window with exactly this name exists.
func HasWindow(name string) (bool, error) {
	names, err := ListWindowNames()
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// SelectWindow switches to the window called name.
func SelectWindow(name string) error {
	if _, err := run("select-window", "-t", "="+name); err != nil {
		return fmt.Errorf("tmux select-window %q failed: %w", name, err)
	}
	return nil
}

// NewWindowArgs builds the new-window invocation for argv.
func NewWindowArgs(name, dir string, argv []string) []string {
	args := []string{"new-window", "-n", name}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	return append(args, argv...)
}

// NewWindow runs argv in a new window called name.
func NewWindow(name, dir string, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("tmux new-window %q: no command", name)
	}
	if _, err := run(NewWindowArgs(name, dir, argv)...); err != nil {
		return fmt.Errorf("tmux new-window %q failed: %w", name, err)
	}
	return nil
}
