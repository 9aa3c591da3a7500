package clock

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultQueueSize is the buffer of the built-in callback queue.
const DefaultQueueSize = 256

// Dispatcher hands a callback to the host loop. It must be safe to call from
// any goroutine.
type Dispatcher func(func())

// Loop is a real-time Scheduler. Timer goroutines never run callbacks
// themselves; they pass them to the dispatcher so that all callbacks run
// serially on one goroutine.
type Loop struct {
	dispatch Dispatcher
	queue    chan func()
	logger   *slog.Logger

	// done is closed when Run returns. Senders blocked on a full queue give
	// up once it is closed.
	done     chan struct{}
	doneOnce sync.Once
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithDispatcher routes callbacks into an existing event loop, for example a
// bubbletea program. Run is not needed when a dispatcher is set.
func WithDispatcher(d Dispatcher) LoopOption {
	return func(l *Loop) {
		l.dispatch = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		l.logger = logger
	}
}

// NewLoop creates a Loop. Without WithDispatcher callbacks are queued and
// executed by Run.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	if l.dispatch == nil {
		l.queue = make(chan func(), DefaultQueueSize)
		l.done = make(chan struct{})
		l.dispatch = func(f func()) { l.send(f, nil) }
	}
	return l
}

// send queues f unless the loop has stopped or cancel is closed first. A
// nil cancel never fires.
func (l *Loop) send(f func(), cancel <-chan struct{}) {
	if l.queue == nil {
		l.dispatch(f)
		return
	}
	select {
	case l.queue <- f:
	case <-l.done:
	case <-cancel:
	}
}

// Now returns the current wall-clock time.
func (l *Loop) Now() time.Time { return time.Now() }

// Post schedules f to run on the loop as soon as possible.
func (l *Loop) Post(f func()) {
	l.dispatch(f)
}

// Run executes queued callbacks until ctx is cancelled. It returns
// immediately when the loop was built with an external dispatcher. Callbacks
// posted after Run has returned are dropped.
func (l *Loop) Run(ctx context.Context) error {
	if l.queue == nil {
		return nil
	}
	defer l.doneOnce.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.queue:
			f()
		}
	}
}

// AfterFunc runs f on the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{done: make(chan struct{})}
	t.timer = time.AfterFunc(d, func() {
		l.send(func() {
			// Stop may have been called after the timer fired but before the
			// callback reached the loop.
			if t.fired.CompareAndSwap(false, true) {
				f()
			}
		}, t.done)
	})
	return t
}

// Every runs f on the loop every d until stopped.
func (l *Loop) Every(d time.Duration, f func()) Timer {
	t := &loopTicker{ticker: time.NewTicker(d), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				l.send(func() {
					if !t.stopped.Load() {
						f()
					}
				}, t.done)
			}
		}
	}()
	l.logger.Debug("interval started", "every", d)
	return t
}

type loopTimer struct {
	timer    *time.Timer
	fired    atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
}

func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	t.stopOnce.Do(func() { close(t.done) })
	// Claiming the fired flag cancels a callback already in the queue.
	return t.fired.CompareAndSwap(false, true)
}

type loopTicker struct {
	ticker  *time.Ticker
	done    chan struct{}
	stopped atomic.Bool
}

func (t *loopTicker) Stop() bool {
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	t.ticker.Stop()
	close(t.done)
	return true
}
