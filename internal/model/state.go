package model

// State is the lifecycle state of a single toast.
// Hovering does not change the state; it only pauses the countdown.
type State int

const (
	// StateRendering means the nodes are built but the countdown has not started.
	StateRendering State = iota
	// StateVisible means the toast is in the stack and counting down.
	StateVisible
	// StateDismissing means the collapse animation is running.
	StateDismissing
	// StateRemoved means the toast has been detached. It is terminal.
	StateRemoved
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateRendering:
		return "rendering"
	case StateVisible:
		return "visible"
	case StateDismissing:
		return "dismissing"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CloseReason records why a toast left the stack.
type CloseReason int

const (
	// CloseReasonNone is used for transitions that are not closes.
	CloseReasonNone CloseReason = iota
	// CloseReasonExpired means the countdown reached the timeout.
	CloseReasonExpired
	// CloseReasonDismissed means the user clicked the dismiss button.
	CloseReasonDismissed
	// CloseReasonClosed means the toast was closed programmatically.
	CloseReasonClosed
)

// String returns the string representation of CloseReason.
func (r CloseReason) String() string {
	switch r {
	case CloseReasonNone:
		return ""
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r CloseReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
