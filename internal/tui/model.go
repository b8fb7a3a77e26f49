package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"imgsort/internal/config"
	"imgsort/internal/log"
	"imgsort/internal/session"
	"imgsort/internal/tui/common"
	"imgsort/internal/tui/components"
	"imgsort/internal/tui/messages"
	"imgsort/internal/tui/styles"
	"imgsort/internal/tui/views"
	"imgsort/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

// chromeRows is the number of terminal rows the view uses around the image
const chromeRows = 6

type Model struct {
	session *session.Session
	cfg     *config.Config
	keys    types.KeyMap
	theme   styles.Theme

	help    help.Model
	command *components.CommandLine
	image   *components.ImageView
	status  *components.StatusBar

	mode          common.Mode
	snap          session.Snapshot
	err           error
	width, height int
	showHelp      bool
}

// New creates the terminal model around sess
func New(cfg *config.Config, sess *session.Session) *Model {
	if cfg == nil {
		cfg = config.New()
	}
	theme := styles.FromConfig(cfg.Theme)
	h := help.New()
	h.Styles.ShortKey = theme.Help
	h.Styles.FullKey = theme.Help

	m := &Model{
		session: sess,
		cfg:     cfg,
		keys:    types.NewKeyMap(cfg.Keys),
		theme:   theme,
		help:    h,
		command: components.NewCommandLine(),
		image:   components.NewImageView(),
		status:  components.NewStatusBar(theme),
		mode:    common.Normal,
	}
	m.apply(sess.Snapshot(), nil)
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	if src := m.cfg.Directories.Source; src != "" {
		return func() tea.Msg { return messages.DirectoryChangeMsg{Path: src} }
	}
	return nil
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case messages.DirectoryChangeMsg:
		m.apply(m.session.Open(msg.Path))
	case messages.DestinationMsg:
		m.apply(m.session.SetDestination(msg.Slot, msg.Path))
	case messages.ErrorMsg:
		m.apply(m.session.Snapshot(), msg.Err)
	case tea.KeyMsg:
		if m.mode == common.Command {
			return m.handleCommandMode(msg)
		}
		return m.handleNormalKeys(msg)
	}
	return m, nil
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch c := m.keys.Lookup(msg); c {
	case types.ControlQuit:
		return m, tea.Quit
	case types.ControlOpenFolder:
		return m.enterCommand("o ")
	case types.ControlNone:
	default:
		m.apply(m.session.Handle(c))
		return m, nil
	}

	switch {
	case msg.String() == m.keys.Command.Help().Key:
		return m.enterCommand("")
	case msg.String() == m.keys.Help.Help().Key:
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.resize(m.width, m.height)
	}
	return m, nil
}

func (m *Model) enterCommand(initial string) (tea.Model, tea.Cmd) {
	m.mode = common.Command
	return m, m.command.Open(initial)
}

func (m *Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.command.Close()
		m.mode = common.Normal
		return m, nil
	case tea.KeyEnter:
		line := m.command.Close()
		m.mode = common.Normal
		return m, m.executeCommand(line)
	}
	return m, m.command.Update(msg)
}

// executeCommand runs a ":" command. Folder changes go through messages so
// they are applied by Update like any other event.
func (m *Model) executeCommand(line string) tea.Cmd {
	verb, arg := components.ParseCommand(line)
	switch verb {
	case "":
		return nil
	case "q", "quit":
		return tea.Quit
	case "u", "undo":
		m.apply(m.session.Handle(types.ControlUndo))
		return nil
	case "d", "delete":
		m.apply(m.session.Handle(types.ControlDelete))
		return nil
	case "o", "open":
		if arg == "" {
			return errorCmd(fmt.Errorf("usage: o <folder>"))
		}
		path := expandPath(arg)
		return func() tea.Msg { return messages.DirectoryChangeMsg{Path: path} }
	}

	slot, err := types.ParseSlot(verb)
	if err != nil {
		return errorCmd(fmt.Errorf("unknown command %q", verb))
	}
	if arg == "" {
		m.apply(m.session.Handle(types.SortControl(slot)))
		return nil
	}
	path := expandPath(arg)
	return func() tea.Msg { return messages.DestinationMsg{Slot: slot, Path: path} }
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg { return messages.ErrorMsg{Err: err} }
}

// resize fits the preview into the terminal area left over by the chrome
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.command.SetWidth(width)

	rows := height - chromeRows
	if m.showHelp {
		rows -= len(m.keys.FullHelp())
	}
	if width < 1 || rows < 1 {
		return
	}
	m.apply(m.session.Resize(width-2, rows*2))
}

// apply stores a snapshot and the error of the call that produced it
func (m *Model) apply(snap session.Snapshot, err error) {
	m.snap = snap
	m.err = err
	m.image.SetImage(snap.Bitmap)
	if err != nil {
		log.LogWithError(err).Debug("Reported to terminal")
		m.status.SetError(errorText(snap.Status, err))
		return
	}
	m.status.SetText(snap.Status)
}

func errorText(status string, err error) string {
	if strings.Contains(status, err.Error()) {
		return status
	}
	return "Error: " + err.Error()
}

func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// Getters

func (m *Model) Snapshot() session.Snapshot {
	return m.snap
}

func (m *Model) Mode() common.Mode {
	return m.mode
}

func (m *Model) CommandView() string {
	return m.command.View()
}

func (m *Model) HelpView() string {
	return m.help.View(m.keys)
}

func (m *Model) Keys() types.KeyMap {
	return m.keys
}

func (m *Model) Size() (int, int) {
	return m.width, m.height
}

func (m *Model) Err() error {
	return m.err
}

// Theme returns the styles in use
func (m *Model) Theme() styles.Theme {
	return m.theme
}

// ImageView returns the rendered preview
func (m *Model) ImageView() string {
	return m.image.View()
}

// StatusView returns the rendered status line
func (m *Model) StatusView() string {
	return m.status.View()
}

// Run starts the terminal UI and blocks until it exits
func Run(cfg *config.Config, sess *session.Session) error {
	p := tea.NewProgram(New(cfg, sess), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
