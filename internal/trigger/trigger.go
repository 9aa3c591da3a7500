// Package trigger wires clickable page elements to toast rendering.
package trigger

import (
	"log/slog"
	"strings"

	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/model"
	"github.com/jmylchreest/toasty/internal/toast"
)

// ContainerClass marks the element that receives delegated clicks.
const ContainerClass = "container"

// Renderer renders a toast. *toast.Notifier implements it.
type Renderer interface {
	Render(t model.Type, message string) (*toast.Item, error)
}

// Message returns the toast text for a button label.
func Message(label string) string {
	return label + " toast notification"
}

// Bind registers one click listener on container. A click on a button inside
// it whose label names a toast type renders a toast of that type. Any other
// click is ignored. The returned function removes the listener.
func Bind(container *dom.Node, r Renderer, logger *slog.Logger) (unbind func()) {
	if logger == nil {
		logger = slog.Default()
	}
	return container.AddEventListener(dom.EventClick, func(e *dom.Event) {
		button := buttonFor(container, e.Target)
		if button == nil {
			return
		}
		label := strings.TrimSpace(button.TextContent())
		t, err := model.ParseType(label)
		if err != nil {
			logger.Debug("ignoring click on unknown trigger", "label", label)
			return
		}
		if _, err := r.Render(t, Message(label)); err != nil {
			logger.Warn("failed to render toast", "type", t, "error", err)
		}
	})
}

// BindNotifier binds container to n and registers the unbind with n so that
// closing the notifier also removes the listener.
func BindNotifier(container *dom.Node, n *toast.Notifier, logger *slog.Logger) (unbind func()) {
	unbind = Bind(container, n, logger)
	n.AddCleanup(unbind)
	return unbind
}

// buttonFor walks from target up to container looking for a button.
func buttonFor(container, target *dom.Node) *dom.Node {
	for n := target; n != nil && n != container; n = n.Parent() {
		if n.Kind() == dom.KindElement && n.Tag() == "button" {
			return n
		}
	}
	return nil
}
