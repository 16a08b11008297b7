// Package launch starts the program behind a confirmed tile.
package launch

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/b/solar-console/pkg/config"
	"github.com/b/solar-console/pkg/tmux"
)

// NamePlaceholder is replaced by the entry name in the command template.
const NamePlaceholder = "{name}"

// Mode selects how a command is started.
type Mode string

const (
	ModeExec  Mode = "exec"  // run argv directly
	ModeShell Mode = "shell" // run the template through sh -c
	ModeTmux  Mode = "tmux"  // open a tmux window, or focus an existing one
)

// ErrEmptyCommand is returned when the template expands to nothing.
var ErrEmptyCommand = errors.New("empty launch command")

// Launcher turns entry names into running programs. It satisfies
// nav.Launcher.
type Launcher struct {
	mode     Mode
	template string
	dir      string
	log      *logrus.Entry

	start func(cmd *exec.Cmd) error
}

// New builds a launcher from the launch section of the config.
func New(cfg config.Launch, log *logrus.Entry) *Launcher {
	l := &Launcher{
		mode:     Mode(cfg.Mode),
		template: cfg.Command,
		dir:      cfg.Dir,
		log:      log,
	}
	if l.mode == "" {
		l.mode = ModeExec
	}
	if strings.TrimSpace(l.template) == "" {
		l.template = NamePlaceholder
	}
	l.start = l.startAndReap
	return l
}

// Command returns the argv that launching name would run.
func (l *Launcher) Command(name string) ([]string, error) {
	if l.mode == ModeShell {
		script := strings.ReplaceAll(l.template, NamePlaceholder, shellQuote(name))
		if strings.TrimSpace(script) == "" {
			return nil, ErrEmptyCommand
		}
		return []string{"sh", "-c", script}, nil
	}

	// Substitute per field so names with spaces stay one argument
	var argv []string
	for _, field := range strings.Fields(l.template) {
		argv = append(argv, strings.ReplaceAll(field, NamePlaceholder, name))
	}
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, ErrEmptyCommand
	}
	return argv, nil
}

// Launch starts the program for name and returns once it is running. The
// process is reaped in the background.
func (l *Launcher) Launch(name string) error {
	argv, err := l.Command(name)
	if err != nil {
		return err
	}
	log := l.log.WithFields(logrus.Fields{"entry": name, "mode": l.mode})

	if l.mode == ModeTmux {
		if tmux.InSession() {
			return l.launchTmux(name, argv)
		}
		log.Warn("not inside tmux, launching directly")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = l.dir
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("start %s: %w", argv[0], err)
	}
	log.WithField("argv", argv).Info("launched")
	return nil
}

func (l *Launcher) launchTmux(name string, argv []string) error {
	exists, err := tmux.HasWindow(name)
	if err != nil {
		return err
	}
	if exists {
		l.log.WithField("entry", name).Info("focusing existing window")
		return tmux.SelectWindow(name)
	}
	if err := tmux.NewWindow(name, l.dir, argv); err != nil {
		return err
	}
	l.log.WithFields(logrus.Fields{"entry": name, "argv": argv}).Info("launched in tmux window")
	return nil
}

func (l *Launcher) startAndReap(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		err := cmd.Wait()
		entry := l.log.WithField("pid", cmd.Process.Pid)
		if err != nil {
			entry.WithError(err).Warn("launched program exited")
			return
		}
		entry.Debug("launched program exited")
	}()
	return nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
