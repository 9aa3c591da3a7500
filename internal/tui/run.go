package tui

import (
	"log/slog"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/toasty/internal/audio"
	"github.com/jmylchreest/toasty/internal/clock"
	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/dbus"
)

// RunOptions configures the TUI.
type RunOptions struct {
	Config     *config.Config
	ConfigPath string // File to watch for changes (empty = default path)
	Watch      bool   // Reload the config file when it changes
	Logger     *slog.Logger
}

// programSender posts loop work to the running program.
type programSender struct {
	p      atomic.Pointer[tea.Program]
	logger *slog.Logger
}

func (s *programSender) post(f func()) {
	p := s.p.Load()
	if p == nil {
		s.logger.Warn("dropping loop callback, program not started")
		return
	}
	p.Send(loopMsg(f))
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sender := &programSender{logger: logger}
	loop := clock.NewLoop(clock.WithDispatcher(sender.post), clock.WithLogger(logger))

	player := audio.NewPlayer(cfg.Sound, logger)
	defer player.Close()

	m, err := New(Options{
		Config:    cfg,
		Scheduler: loop,
		Player:    player,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer m.Close()

	// The D-Bus server is optional; failing to claim the name is not fatal.
	var server *dbus.Server
	if cfg.DBus.Enabled {
		server = dbus.NewServer(dbus.NewLoopTarget(sender.post, m.Notifier()), cfg.DBus, logger)
		if err := server.Start(); err != nil {
			logger.Warn("D-Bus service unavailable", "error", err)
			server = nil
		} else {
			m.Notifier().Subscribe(server.Observe)
			m = m.WithServer(server)
			defer func() { _ = server.Stop() }()
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	sender.p.Store(p)

	if opts.Watch {
		watcher, err := config.NewWatcher(opts.ConfigPath, func(c *config.Config) {
			p.Send(configMsg{cfg: c})
		}, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		} else {
			defer func() { _ = watcher.Stop() }()
		}
	}

	_, err = p.Run()
	return err
}
