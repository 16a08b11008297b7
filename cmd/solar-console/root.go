package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/b/solar-console/pkg/config"
	"github.com/b/solar-console/pkg/daemon"
	"github.com/b/solar-console/pkg/logging"
	"github.com/b/solar-console/pkg/tmux"
)

// options are the command-line overrides shared by every subcommand.
type options struct {
	configPath  string
	entriesPath string
	rows        *int
	cols        *int
	noRemote    bool
}

func (o options) path() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.DefaultConfigPath()
}

// apply writes the overrides into cfg.
func (o options) apply(cfg *config.Config) {
	if o.entriesPath != "" {
		cfg.EntriesFile = o.entriesPath
	}
	if o.rows != nil {
		cfg.Layout.Rows = *o.rows
	}
	if o.cols != nil {
		cfg.Layout.Cols = *o.cols
	}
	if o.noRemote {
		cfg.Remote.Disabled = true
	}
}

// loadConfig reads the config file, or the defaults when there is none,
// and applies the command-line overrides.
func loadConfig(o options) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(o.path())
	if err != nil {
		return nil, err
	}
	o.apply(cfg)
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	var (
		opts       options
		rows, cols int
	)

	cmd := &cobra.Command{
		Use:          "solar-console",
		Short:        "Full-screen launcher grid for a media console",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flags().Changed("rows") {
				opts.rows = &rows
			}
			if cmd.Flags().Changed("cols") {
				opts.cols = &cols
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.DefaultConfigPath()+")")
	pf.StringVarP(&opts.entriesPath, "entries", "e", "", "app list file, one name per line")
	pf.IntVar(&rows, "rows", 0, "grid rows (0 = as many as the app list needs)")
	pf.IntVar(&cols, "cols", 4, "grid columns")
	cmd.Flags().BoolVar(&opts.noRemote, "no-remote", false, "do not open the remote-control socket")

	cmd.AddCommand(
		newSendCmd(&opts),
		newTilesCmd(&opts),
		newInitCmd(&opts),
		newGroupsCmd(&opts),
	)
	return cmd
}

func runConsole(opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logging.Setup(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	defer logging.Close()
	log := logging.NewLogger("main")

	m, err := newModel(opts, cfg)
	if err != nil {
		log.WithError(err).Error("cannot build grid")
		return err
	}

	// tmux passes 24-bit escapes through unreliably
	if tmux.InSession() {
		lipgloss.SetColorProfile(termenv.ANSI256)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if !cfg.Remote.Disabled {
		server := daemon.NewServer(cfg.SocketPath())
		server.OnInput = func(_ string, input *daemon.InputPayload) {
			p.Send(remoteInputMsg{input: *input})
		}
		if err := server.Start(); err != nil {
			if errors.Is(err, daemon.ErrAlreadyRunning) {
				return fmt.Errorf("%w (use --no-remote or another remote.session)", err)
			}
			log.WithError(err).Warn("remote control unavailable")
		} else {
			defer server.Stop()
			m.publish = server.Publish
			m.publishState()
		}
	}

	stop, err := watchFiles(p, opts.path(), cfg.EntriesPath())
	if err != nil {
		log.WithError(err).Warn("live reload unavailable")
	} else {
		defer stop()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGUSR1)
	done := make(chan struct{})
	defer func() {
		signal.Stop(sigChan)
		close(done)
	}()
	go forwardSignals(p, sigChan, done)

	log.WithField("entries", cfg.EntriesPath()).Info("console started")
	if _, err := p.Run(); err != nil {
		log.WithError(err).Error("console exited")
		return err
	}
	return nil
}
