// Package clock provides the timers the toast widget runs on.
//
// Every callback is delivered on a single host loop so widget code never
// needs locking. Loop is backed by real time; Manual is driven by Advance and
// is used by tests and the simulator.
package clock

import "time"

// Timer is a scheduled one-shot or repeating callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the call stopped a timer
	// that was still pending; stopping twice returns false.
	Stop() bool
}

// Scheduler creates timers whose callbacks run on the host loop.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
	Every(d time.Duration, f func()) Timer
}
