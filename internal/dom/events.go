package dom

import "slices"

// Event types used by the widget.
const (
	EventClick      = "click"
	EventMouseEnter = "mouseenter"
	EventMouseLeave = "mouseleave"
)

// Event is dispatched to listeners. Click events bubble from the target up to
// the document body; mouseenter and mouseleave do not.
type Event struct {
	Type          string
	Target        *Node
	CurrentTarget *Node
	Bubbles       bool

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Listener handles an event.
type Listener func(*Event)

type listener struct {
	fn Listener
}

// NewEvent returns an event of the given type with the default bubbling
// behaviour for that type.
func NewEvent(typ string) *Event {
	return &Event{
		Type:    typ,
		Bubbles: typ != EventMouseEnter && typ != EventMouseLeave,
	}
}

// AddEventListener registers fn for events of the given type on n. The
// returned function removes the listener; calling it more than once is safe.
func (n *Node) AddEventListener(typ string, fn Listener) (remove func()) {
	if n.listeners == nil {
		n.listeners = make(map[string][]*listener)
	}
	l := &listener{fn: fn}
	n.listeners[typ] = append(n.listeners[typ], l)
	return func() {
		n.listeners[typ] = slices.DeleteFunc(n.listeners[typ], func(x *listener) bool { return x == l })
	}
}

// ListenerCount returns the number of listeners registered for typ.
func (n *Node) ListenerCount(typ string) int {
	return len(n.listeners[typ])
}

// Dispatch delivers ev to n and, for bubbling events, to each ancestor in
// turn. It reports whether any listener ran.
func (n *Node) Dispatch(ev *Event) bool {
	ev.Target = n
	handled := false
	for cur := n; cur != nil; cur = cur.parent {
		ev.CurrentTarget = cur
		// Snapshot so listeners may remove themselves while running.
		for _, l := range slices.Clone(cur.listeners[ev.Type]) {
			l.fn(ev)
			handled = true
		}
		if !ev.Bubbles || ev.stopped {
			break
		}
	}
	return handled
}

// Click dispatches a bubbling click event on n.
func (n *Node) Click() bool {
	return n.Dispatch(NewEvent(EventClick))
}
