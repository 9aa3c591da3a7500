// Package tui provides the BubbleTea-based terminal front end. It paints the
// toast document and feeds keyboard and mouse input back into it.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/toasty/internal/audio"
	"github.com/jmylchreest/toasty/internal/clock"
	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/dbus"
	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/model"
	"github.com/jmylchreest/toasty/internal/toast"
	"github.com/jmylchreest/toasty/internal/trigger"
)

// Options configures a Model.
type Options struct {
	Config    *config.Config
	Scheduler clock.Scheduler
	Player    *audio.Player // optional
	Logger    *slog.Logger
}

// stats is shared by every copy of the Model and updated on the loop.
type stats struct {
	shown     int
	expired   int
	dismissed int
	closed    int
	last      time.Time
}

// Model is the main TUI model.
type Model struct {
	cfg    *config.Config
	sched  clock.Scheduler
	logger *slog.Logger

	doc      *dom.Document
	page     *trigger.Page
	notifier *toast.Notifier
	player   *audio.Player
	server   *dbus.Server

	keys KeyMap
	help help.Model
	bars map[model.Type]progress.Model

	stats *stats
	// Container under the pointer, if any
	hover *dom.Node
	// Last pointer position seen in a mouse event
	pointerX, pointerY int
	hasPointer         bool

	width  int
	height int
	ready  bool

	statusMsg string
	statusErr bool
}

// loopMsg carries a scheduler callback onto the Update goroutine.
type loopMsg func()

// configMsg delivers a reloaded config.
type configMsg struct {
	cfg *config.Config
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// New creates the document, the notifier, and the trigger page.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if opts.Scheduler == nil {
		return Model{}, errors.New("tui: scheduler is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	st := &stats{}
	doc := dom.NewDocument(dom.WithMeasurer(cellMeasurer{}))
	n, err := toast.New(doc, opts.Scheduler, cfg.Position(), cfg.Toast.Timeout.Duration(),
		toast.WithLogger(logger),
		toast.WithPauseOnHover(cfg.Toast.PauseOnHover),
		toast.WithMaxVisible(cfg.Toast.MaxVisible),
		toast.WithObserver(st.observe),
	)
	if err != nil {
		return Model{}, err
	}

	player := opts.Player
	if player != nil {
		n.Subscribe(func(c toast.Change) {
			if c.Kind == toast.ChangeState && c.State == model.StateVisible {
				if err := player.Play(c.Type); err != nil {
					logger.Debug("chime failed", "error", err)
				}
			}
		})
	}

	page := trigger.NewPage(doc)
	trigger.BindNotifier(page.Container, n, logger)

	h := help.New()
	h.ShowAll = false

	return Model{
		cfg:      cfg,
		sched:    opts.Scheduler,
		logger:   logger,
		doc:      doc,
		page:     page,
		notifier: n,
		player:   player,
		keys:     DefaultKeyMap(),
		help:     h,
		bars:     newBars(),
		stats:    st,
	}, nil
}

func newBars() map[model.Type]progress.Model {
	bars := make(map[model.Type]progress.Model, len(model.Types()))
	for _, t := range model.Types() {
		bars[t] = progress.New(
			progress.WithSolidFill(t.Colour()),
			progress.WithoutPercentage(),
			progress.WithWidth(innerWidth),
		)
	}
	return bars
}

func (s *stats) observe(c toast.Change) {
	if c.Kind != toast.ChangeState {
		return
	}
	switch c.State {
	case model.StateVisible:
		s.shown++
		s.last = c.At
	case model.StateDismissing:
		switch c.Reason {
		case model.CloseReasonExpired:
			s.expired++
		case model.CloseReasonDismissed:
			s.dismissed++
		case model.CloseReasonClosed:
			s.closed++
		}
	}
}

// Notifier returns the toast notifier. It must only be used on the loop.
func (m Model) Notifier() *toast.Notifier { return m.notifier }

// WithServer attaches a D-Bus server so config reloads reach its limiter.
func (m Model) WithServer(s *dbus.Server) Model {
	m.server = s
	return m
}

// Close tears down the notifier. Call it once the program has exited.
func (m Model) Close() {
	m.notifier.Close()
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		next, cmd := m.handleKey(msg)
		return next.syncHover(), cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m.syncHover(), nil

	case loopMsg:
		// Callbacks render, collapse, and remove toasts, all of which move
		// the stack under a pointer that may not have moved.
		msg()
		return m.syncHover(), nil

	case configMsg:
		next, cmd := m.applyConfig(msg.cfg)
		return next.syncHover(), cmd

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Success):
		return m.press(model.TypeSuccess)
	case key.Matches(msg, m.keys.Info):
		return m.press(model.TypeInfo)
	case key.Matches(msg, m.keys.Warning):
		return m.press(model.TypeWarning)
	case key.Matches(msg, m.keys.Error):
		return m.press(model.TypeError)

	case key.Matches(msg, m.keys.Dismiss):
		for _, it := range m.notifier.Items() {
			if it.State() == model.StateVisible {
				it.DismissButton.Click()
				return m, nil
			}
		}
		return m, status("Nothing to dismiss", false)

	case key.Matches(msg, m.keys.DismissAll):
		m.notifier.DismissAll(model.CloseReasonDismissed)
		return m, nil

	case key.Matches(msg, m.keys.Position):
		positions := model.Positions()
		next := positions[(slices.Index(positions, m.notifier.Position())+1)%len(positions)]
		if err := m.notifier.SetPosition(next); err != nil {
			return m, status(err.Error(), true)
		}
		return m, status("Position: "+next.String(), false)
	}

	return m, nil
}

// press clicks a trigger button the same way a mouse click would.
func (m Model) press(t model.Type) (Model, tea.Cmd) {
	if !m.page.Press(t) {
		return m, status(fmt.Sprintf("No %s button", t), true)
	}
	return m, nil
}

// handleMouse routes pointer movement and clicks into the document.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ready {
		return m, nil
	}

	// Every mouse event carries a position, so hover tracks all of them.
	m.pointerX, m.pointerY, m.hasPointer = msg.X, msg.Y, true
	f := m.frame()
	m = m.hoverFrame(f)

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if r, ok := f.hit(msg.X, msg.Y, regionDismiss, regionButton); ok {
		r.node.Click()
		return m.syncHover(), nil
	}
	return m, nil
}

// syncHover re-runs the hit test at the last pointer position so that hover
// follows the toast drawn under it after a re-layout.
func (m Model) syncHover() Model {
	if !m.ready || !m.hasPointer {
		return m
	}
	return m.hoverFrame(m.frame())
}

// hoverFrame sends mouseleave and mouseenter when the toast under the
// pointer differs from the one last hovered.
func (m Model) hoverFrame(f frame) Model {
	var over *dom.Node
	if r, ok := f.hit(m.pointerX, m.pointerY, regionToast); ok {
		over = r.node
	}
	if over == m.hover {
		return m
	}
	if m.hover != nil && m.hover.Connected() {
		m.hover.Dispatch(dom.NewEvent(dom.EventMouseLeave))
	}
	if over != nil {
		over.Dispatch(dom.NewEvent(dom.EventMouseEnter))
	}
	m.hover = over
	return m
}

// applyConfig applies a reloaded config to live components.
func (m Model) applyConfig(cfg *config.Config) (Model, tea.Cmd) {
	m.cfg = cfg
	if err := m.notifier.SetPosition(cfg.Position()); err != nil {
		return m, status("Config: "+err.Error(), true)
	}
	if err := m.notifier.SetTimeout(cfg.Toast.Timeout.Duration()); err != nil {
		return m, status("Config: "+err.Error(), true)
	}
	m.notifier.SetPauseOnHover(cfg.Toast.PauseOnHover)
	m.notifier.SetMaxVisible(cfg.Toast.MaxVisible)
	if m.player != nil {
		m.player.Apply(cfg.Sound)
	}
	if m.server != nil {
		m.server.SetRate(cfg.DBus)
	}
	m.logger.Info("config reloaded")
	return m, status("Config reloaded", false)
}
