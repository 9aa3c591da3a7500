package dbus

import (
	"fmt"

	"github.com/jmylchreest/toasty/internal/model"
	"github.com/jmylchreest/toasty/internal/toast"
)

// EmitToastClosed emits the ToastClosed signal.
func (s *Server) EmitToastClosed(id string, reason model.CloseReason) error {
	if s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	err := s.conn.Emit(DBusPath, DBusInterface+".ToastClosed", id, reason.String())
	if err != nil {
		return fmt.Errorf("failed to emit ToastClosed signal: %w", err)
	}

	s.logger.Debug("emitted ToastClosed signal", "id", id, "reason", reason)
	return nil
}

// Observe is a toast.Observer that announces removed toasts on the bus.
func (s *Server) Observe(c toast.Change) {
	if c.Kind != toast.ChangeState || c.State != model.StateRemoved {
		return
	}

	s.mu.RLock()
	running := s.running
	s.mu.RUnlock()
	if !running {
		return
	}

	if err := s.EmitToastClosed(c.ID, c.Reason); err != nil {
		s.logger.Warn("failed to emit ToastClosed signal", "id", c.ID, "error", err)
	}
}
