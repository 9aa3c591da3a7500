package dbus

import (
	"context"
	"time"

	"github.com/jmylchreest/toasty/internal/clock"
	"github.com/jmylchreest/toasty/internal/model"
	"github.com/jmylchreest/toasty/internal/toast"
)

// Status describes the widget as reported over the bus.
type Status struct {
	Visible  int
	Position model.Position
	Timeout  time.Duration
}

// Target is what the service drives. Implementations must be safe to call
// from the bus goroutine.
type Target interface {
	Render(ctx context.Context, t model.Type, message string) (string, error)
	DismissAll(ctx context.Context) error
	Status(ctx context.Context) (Status, error)
}

// LoopTarget runs every call on the widget loop through post and waits for
// the result.
type LoopTarget struct {
	post     clock.Dispatcher
	notifier *toast.Notifier
}

// NewLoopTarget returns a Target for n. post must run functions on the
// goroutine that owns n.
func NewLoopTarget(post clock.Dispatcher, n *toast.Notifier) *LoopTarget {
	return &LoopTarget{post: post, notifier: n}
}

// result is what a posted call hands back to the waiting caller.
type result[T any] struct {
	val T
	err error
}

// call runs fn on the loop and waits for its result. The buffered channel
// lets a late fn finish after the caller has given up, and nothing else is
// shared between the two goroutines.
func call[T any](ctx context.Context, post clock.Dispatcher, fn func() (T, error)) (T, error) {
	done := make(chan result[T], 1)
	post(func() {
		v, err := fn()
		done <- result[T]{val: v, err: err}
	})
	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Render renders a toast and returns its id.
func (l *LoopTarget) Render(ctx context.Context, t model.Type, message string) (string, error) {
	return call(ctx, l.post, func() (string, error) {
		it, err := l.notifier.Render(t, message)
		if err != nil {
			return "", err
		}
		return it.ID, nil
	})
}

// DismissAll starts removal of every visible toast.
func (l *LoopTarget) DismissAll(ctx context.Context) error {
	_, err := call(ctx, l.post, func() (struct{}, error) {
		l.notifier.DismissAll(model.CloseReasonClosed)
		return struct{}{}, nil
	})
	return err
}

// Status reports the widget state.
func (l *LoopTarget) Status(ctx context.Context) (Status, error) {
	return call(ctx, l.post, func() (Status, error) {
		return Status{
			Visible:  l.notifier.Visible(),
			Position: l.notifier.Position(),
			Timeout:  l.notifier.Timeout(),
		}, nil
	})
}
