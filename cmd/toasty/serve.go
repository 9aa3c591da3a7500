package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toasty/internal/audio"
	"github.com/jmylchreest/toasty/internal/clock"
	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/dbus"
	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/model"
	"github.com/jmylchreest/toasty/internal/toast"
)

var serveOpts struct {
	noWatch bool
}

// serveEvent is one line of serve output.
type serveEvent struct {
	At      time.Time `json:"at"`
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
	State   string    `json:"state"`
	Reason  string    `json:"reason,omitempty"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the widget headless on the session bus",
	Long: `Run the widget without a terminal front end. Toasts are rendered with
"toasty send" and every state transition is written to stdout as one JSON
object per line. Nothing can hover a headless toast, so each one runs
its full timeout unless dismissed.

The process exits on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveOpts.noWatch, "no-watch", false,
		"Do not reload the config file when it changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loop := clock.NewLoop(clock.WithLogger(logger))

	n, err := toast.New(dom.NewDocument(), loop, cfg.Position(), cfg.Toast.Timeout.Duration(),
		toast.WithLogger(logger),
		toast.WithPauseOnHover(cfg.Toast.PauseOnHover),
		toast.WithMaxVisible(cfg.Toast.MaxVisible),
	)
	if err != nil {
		return err
	}
	defer n.Close()

	enc := json.NewEncoder(os.Stdout)
	n.Subscribe(func(c toast.Change) {
		if c.Kind != toast.ChangeState {
			return
		}
		ev := serveEvent{
			At:      c.At,
			ID:      c.ID,
			Type:    c.Type.String(),
			Message: c.Message,
			State:   c.State.String(),
		}
		if c.Reason != model.CloseReasonNone {
			ev.Reason = c.Reason.String()
		}
		if err := enc.Encode(ev); err != nil {
			logger.Warn("failed to write event", "error", err)
		}
	})

	player := audio.NewPlayer(cfg.Sound, logger)
	defer player.Close()
	n.Subscribe(func(c toast.Change) {
		if c.Kind == toast.ChangeState && c.State == model.StateVisible {
			if err := player.Play(c.Type); err != nil {
				logger.Debug("chime failed", "error", err)
			}
		}
	})

	server := dbus.NewServer(dbus.NewLoopTarget(loop.Post, n), cfg.DBus, logger)
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start D-Bus service: %w", err)
	}
	defer func() { _ = server.Stop() }()
	n.Subscribe(server.Observe)

	if !serveOpts.noWatch {
		watcher, err := config.NewWatcher(configPath(), func(c *config.Config) {
			loop.Post(func() { applyServeConfig(n, player, server, c) })
		}, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		} else {
			defer func() { _ = watcher.Stop() }()
		}
	}

	logger.Info("serving toasts", "bus_name", dbus.DBusBusName, "position", n.Position())

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("shutting down")
	return nil
}

// applyServeConfig runs on the loop.
func applyServeConfig(n *toast.Notifier, player *audio.Player, server *dbus.Server, c *config.Config) {
	if err := n.SetPosition(c.Position()); err != nil {
		logger.Warn("failed to apply position", "error", err)
	}
	if err := n.SetTimeout(c.Toast.Timeout.Duration()); err != nil {
		logger.Warn("failed to apply timeout", "error", err)
	}
	n.SetPauseOnHover(c.Toast.PauseOnHover)
	n.SetMaxVisible(c.Toast.MaxVisible)
	player.Apply(c.Sound)
	server.SetRate(c.DBus)
	logger.Info("config reloaded")
}
