package dbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"golang.org/x/time/rate"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/model"
)

const (
	// DBusInterface is the toast interface name.
	DBusInterface = "io.github.jmylchreest.Toasty"
	// DBusPath is the toast object path.
	DBusPath = "/io/github/jmylchreest/Toasty"
	// DBusBusName is the bus name to claim.
	DBusBusName = "io.github.jmylchreest.Toasty"
)

// CallTimeout bounds how long a bus call waits for the widget loop.
const CallTimeout = 2 * time.Second

// Server implements the io.github.jmylchreest.Toasty D-Bus interface.
type Server struct {
	conn    *dbus.Conn
	logger  *slog.Logger
	target  Target
	limiter *rate.Limiter

	mu      sync.RWMutex
	running bool
}

// NewServer creates a server that forwards calls to target, throttled per cfg.
func NewServer(target Target, cfg config.DBusConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger:  logger,
		target:  target,
		limiter: rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
	}
}

// SetRate applies a reloaded rate limit.
func (s *Server) SetRate(cfg config.DBusConfig) {
	s.limiter.SetLimit(rate.Limit(cfg.Rate))
	s.limiter.SetBurst(cfg.Burst)
	s.logger.Debug("D-Bus rate updated", "rate", cfg.Rate, "burst", cfg.Burst)
}

// Start connects to the session bus and exports the service.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, DBusPath, DBusInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: DBusPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    DBusInterface,
				Methods: toastMethods(),
				Signals: toastSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), DBusPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(DBusBusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", DBusBusName)
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.logger.Info("D-Bus toast service started", "interface", DBusInterface, "path", DBusPath)
	return nil
}

// Stop releases the bus name and unexports the object.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(DBusBusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		_ = s.conn.Export(nil, DBusPath, DBusInterface)
		_ = s.conn.Export(nil, DBusPath, "org.freedesktop.DBus.Introspectable")
		// Don't close the connection as it's shared (SessionBus)
	}

	s.logger.Info("D-Bus toast service stopped")
	return nil
}

// Render renders a toast of the named type.
// D-Bus method: Render(ss) -> s
func (s *Server) Render(typ string, message string) (string, *dbus.Error) {
	s.logger.Debug("Render called", "type", typ, "message", message)

	t, err := model.ParseType(typ)
	if err != nil {
		return "", (&ServiceError{Name: ErrorUnknownType, Err: err}).DBus()
	}
	if !s.limiter.Allow() {
		s.logger.Warn("render throttled", "type", t)
		return "", (&ServiceError{Name: ErrorRateLimited, Err: ErrRateLimited}).DBus()
	}

	ctx, cancel := context.WithTimeout(context.Background(), CallTimeout)
	defer cancel()

	id, err := s.target.Render(ctx, t, message)
	if err != nil {
		return "", s.failed("render", err)
	}
	return id, nil
}

// DismissAll starts removal of every visible toast.
// D-Bus method: DismissAll() -> nothing
func (s *Server) DismissAll() *dbus.Error {
	s.logger.Debug("DismissAll called")

	ctx, cancel := context.WithTimeout(context.Background(), CallTimeout)
	defer cancel()

	if err := s.target.DismissAll(ctx); err != nil {
		return s.failed("dismiss all", err)
	}
	return nil
}

// Status reports the visible count, anchor, and timeout in milliseconds.
// D-Bus method: Status() -> (usu)
func (s *Server) Status() (uint32, string, uint32, *dbus.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), CallTimeout)
	defer cancel()

	st, err := s.target.Status(ctx)
	if err != nil {
		return 0, "", 0, s.failed("status", err)
	}
	return uint32(st.Visible), st.Position.String(), uint32(st.Timeout.Milliseconds()), nil
}

func (s *Server) failed(op string, err error) *dbus.Error {
	s.logger.Warn("D-Bus call failed", "op", op, "error", err)
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("widget loop did not respond: %w", err)
	}
	return (&ServiceError{Name: ErrorFailed, Err: err}).DBus()
}

// toastMethods returns the D-Bus method introspection data.
func toastMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "Render",
			Args: []introspect.Arg{
				{Name: "type", Type: "s", Direction: "in"},
				{Name: "message", Type: "s", Direction: "in"},
				{Name: "id", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "DismissAll",
		},
		{
			Name: "Status",
			Args: []introspect.Arg{
				{Name: "visible", Type: "u", Direction: "out"},
				{Name: "position", Type: "s", Direction: "out"},
				{Name: "timeout_ms", Type: "u", Direction: "out"},
			},
		},
	}
}

// toastSignals returns the D-Bus signal introspection data.
func toastSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "ToastClosed",
			Args: []introspect.Arg{
				{Name: "id", Type: "s"},
				{Name: "reason", Type: "s"},
			},
		},
	}
}
