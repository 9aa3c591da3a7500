package toast

import (
	"time"

	"github.com/jmylchreest/toasty/internal/clock"
	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/model"
)

// Item is one toast in the stack.
type Item struct {
	ID        string
	Type      model.Type
	Message   string
	CreatedAt time.Time

	// Element handles.
	Container      *dom.Node // li in the stack
	Content        *dom.Node // icon, message, dismiss button
	Timeline       *dom.Node // countdown bar
	TimelineBorder *dom.Node // coloured wrapper inside the bar
	DismissButton  *dom.Node

	timeout time.Duration
	elapsed time.Duration
	hovered bool
	state   model.State
	reason  model.CloseReason

	poll    clock.Timer
	fadeIn  clock.Timer
	removal clock.Timer
	unbind  []func()
}

// Elapsed returns how much of the countdown has run.
func (it *Item) Elapsed() time.Duration { return it.elapsed }

// Remaining returns the countdown left before expiry.
func (it *Item) Remaining() time.Duration {
	if it.elapsed >= it.timeout {
		return 0
	}
	return it.timeout - it.elapsed
}

// Progress returns the fraction of the countdown still to run, from 1 down
// to 0. The timeline bar shrinks with it.
func (it *Item) Progress() float64 {
	if it.timeout <= 0 {
		return 0
	}
	return float64(it.Remaining()) / float64(it.timeout)
}

// Timeout returns the countdown length captured when the item was built.
func (it *Item) Timeout() time.Duration { return it.timeout }

// Hovered reports whether the pointer is over the item.
func (it *Item) Hovered() bool { return it.hovered }

// State returns the lifecycle state.
func (it *Item) State() model.State { return it.state }

// Reason returns why the item left the stack, if it has.
func (it *Item) Reason() model.CloseReason { return it.reason }

// Polling reports whether the countdown timer is still scheduled.
func (it *Item) Polling() bool { return it.poll != nil }

// stopTimers cancels the poll and fade-in timers.
func (it *Item) stopTimers() {
	if it.poll != nil {
		it.poll.Stop()
		it.poll = nil
	}
	if it.fadeIn != nil {
		it.fadeIn.Stop()
		it.fadeIn = nil
	}
}

func (it *Item) release() {
	for _, fn := range it.unbind {
		fn()
	}
	it.unbind = nil
}
