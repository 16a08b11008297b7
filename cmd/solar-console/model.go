package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/b/solar-console/pkg/colors"
	"github.com/b/solar-console/pkg/config"
	"github.com/b/solar-console/pkg/daemon"
	"github.com/b/solar-console/pkg/entries"
	"github.com/b/solar-console/pkg/grid"
	"github.com/b/solar-console/pkg/grouping"
	"github.com/b/solar-console/pkg/launch"
	"github.com/b/solar-console/pkg/logging"
	"github.com/b/solar-console/pkg/nav"
	"github.com/b/solar-console/pkg/paths"
	"github.com/b/solar-console/pkg/perf"
)

type reloadMsg struct{}

type remoteInputMsg struct {
	input daemon.InputPayload
}

func reloadCmd() tea.Msg { return reloadMsg{} }

type model struct {
	opts options
	cfg  *config.Config
	log  *logrus.Entry

	ctrl     *nav.Controller
	launcher nav.Launcher

	themeMode colors.ThemeMode
	detector  *colors.BackgroundDetector
	theme     colors.Theme
	styles    map[string]grouping.Style
	icons     map[string]string

	keys keyMap
	help help.Model

	width     int
	height    int
	status    string
	statusErr bool

	// publish is nil when remote control is off.
	publish func(*daemon.StatePayload)
}

func newModel(opts options, cfg *config.Config) (*model, error) {
	m := &model{
		opts: opts,
		log:  logging.NewLogger("console"),
		help: help.New(),
	}
	if err := m.apply(cfg); err != nil {
		return nil, err
	}
	return m, nil
}

// apply makes cfg current: it rebuilds the grid from the app list and
// everything derived from the config. On error the model is unchanged.
// The selection follows its entry by name across rebuilds.
func (m *model) apply(cfg *config.Config) error {
	defer perf.Start("rebuild").Stop()

	names, err := entries.Load(cfg.EntriesPath())
	if err != nil {
		return err
	}
	g, err := grid.Build(names, cfg.GridLayout(len(names)))
	if err != nil {
		return err
	}

	mode := colors.ParseThemeMode(cfg.Theme.Mode)
	if m.detector == nil || mode != m.themeMode {
		m.detector = colors.NewBackgroundDetector(mode)
		m.themeMode = mode
	}
	isDark := m.detector.IsDarkBackground()

	resolver, err := grouping.NewResolver(cfg.Groups, isDark)
	if err != nil {
		m.log.WithError(err).Warn("ignoring invalid group patterns")
	}

	if m.ctrl != nil {
		prev := m.ctrl.Grid().ActiveTile()
		if cell, ok := g.Find(prev.Name); ok {
			_ = g.SetActive(cell.Row, cell.Col)
		}
		m.ctrl.Reset(g)
	} else {
		m.ctrl = nav.New(g, nav.LauncherFunc(m.launch))
	}

	m.cfg = cfg
	m.launcher = launch.New(cfg.Launch, logging.NewLogger("launch"))
	m.icons = entries.Icons(iconDir(cfg), cfg.Icons.Ext, names)
	m.styles = resolver.Styles(names)
	m.theme = colors.ResolveTheme(cfg.Theme.Name, isDark, cfg.Theme.Background, cfg.Theme.Accent)
	m.keys = newKeyMap(cfg.Bindings)
	m.help.Styles = helpStyles(m.theme)

	m.status, m.statusErr = "", false
	if dropped := g.Dropped(); len(dropped) > 0 {
		m.log.WithField("dropped", dropped).Warn("app list does not fit the grid")
		m.setStatus(fmt.Sprintf("%d apps did not fit: %s", len(dropped), strings.Join(dropped, ", ")), true)
	}
	m.log.WithFields(logrus.Fields{
		"entries": len(names),
		"rows":    g.Rows(),
		"cols":    g.Cols(),
	}).Info("grid built")
	return nil
}

// iconDir defaults to the directory holding the app list.
func iconDir(cfg *config.Config) string {
	if cfg.Icons.Dir != "" {
		return paths.Expand(cfg.Icons.Dir)
	}
	return filepath.Dir(cfg.EntriesPath())
}

func (m *model) launch(name string) error {
	return m.launcher.Launch(name)
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reload):
			return m, reloadCmd
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		if cmd, ok := m.keys.command(msg); ok {
			m.handle(cmd)
		}

	case tea.MouseMsg:
		m.mouse(msg)

	case remoteInputMsg:
		m.remote(msg.input)

	case reloadMsg:
		m.reload()
	}
	return m, nil
}

// handle runs one navigation command and publishes the result.
func (m *model) handle(cmd nav.Command) {
	cell, err := m.ctrl.Handle(cmd)
	switch {
	case err != nil:
		m.log.WithError(err).Error("launch failed")
		m.setStatus(err.Error(), true)
	case cmd == nav.Confirm:
		if t := m.ctrl.Grid().ActiveTile(); !t.IsPlaceholder() {
			m.setStatus("Launched "+t.Name, false)
		}
	default:
		m.log.WithFields(logrus.Fields{"command": cmd, "cell": cell}).Debug("moved")
	}
	m.publishState()
}

func (m *model) hover(row, col int) {
	before := m.ctrl.Active()
	cell, err := m.ctrl.Hover(row, col)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	if cell != before {
		m.publishState()
	}
}

// mouse maps pointer events onto tiles. Motion selects; a left click
// selects and launches. Events off the grid are ignored, so the selection
// survives the pointer leaving.
func (m *model) mouse(msg tea.MouseMsg) {
	cell, ok := m.cellAt(msg.X, msg.Y)
	if !ok {
		return
	}
	switch {
	case msg.Action == tea.MouseActionMotion:
		m.hover(cell.Row, cell.Col)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.hover(cell.Row, cell.Col)
		m.handle(nav.Confirm)
	}
}

func (m *model) remote(input daemon.InputPayload) {
	if input.IsHover() {
		if input.Row == nil || input.Col == nil {
			return
		}
		if _, err := m.ctrl.Hover(*input.Row, *input.Col); err != nil {
			m.log.WithError(err).Warn("remote hover rejected")
			m.setStatus("remote: "+err.Error(), true)
		}
		m.publishState()
		return
	}
	cmd, ok := nav.ParseCommand(input.Command)
	if !ok {
		return
	}
	m.handle(cmd)
}

// reload re-reads the config and the app list. A failed reload keeps the
// current grid on screen.
func (m *model) reload() {
	cfg, err := loadConfig(m.opts)
	if err == nil {
		err = m.apply(cfg)
	}
	if err != nil {
		m.log.WithError(err).Warn("reload failed")
		m.setStatus("reload failed: "+err.Error(), true)
		return
	}
	if m.status == "" {
		m.setStatus("Reloaded", false)
	}
	m.publishState()
}

func (m *model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m *model) publishState() {
	if m.publish == nil {
		return
	}
	state := daemon.Snapshot(m.cfg.Title, m.ctrl.Grid(), m.icons)
	state.Status = m.status
	m.publish(state)
}
