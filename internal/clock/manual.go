package clock

import (
	"container/heap"
	"time"
)

// Manual is a virtual-time Scheduler. Time only moves when Advance is called,
// and due callbacks run synchronously inside Advance in deadline order.
// Callbacks may schedule or stop other timers. Manual is not safe for
// concurrent use; like the widget itself it belongs to one goroutine.
type Manual struct {
	now    time.Time
	seq    uint64
	timers timerHeap
}

// NewManual creates a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time { return m.now }

// AfterFunc schedules f to run once at Now()+d.
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	return m.add(d, 0, f)
}

// Every schedules f to run at every multiple of d from Now().
func (m *Manual) Every(d time.Duration, f func()) Timer {
	if d <= 0 {
		panic("clock: non-positive interval")
	}
	return m.add(d, d, f)
}

func (m *Manual) add(d, period time.Duration, f func()) *manualTimer {
	m.seq++
	t := &manualTimer{
		at:     m.now.Add(d),
		period: period,
		seq:    m.seq,
		fn:     f,
	}
	heap.Push(&m.timers, t)
	return t
}

// Pending returns the number of timers that have not fired or been stopped.
// Repeating timers count until stopped.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves time forward by d, running every callback that falls due.
func (m *Manual) Advance(d time.Duration) {
	m.AdvanceTo(m.now.Add(d))
}

// AdvanceTo moves time forward to target. A target in the past is ignored.
func (m *Manual) AdvanceTo(target time.Time) {
	for len(m.timers) > 0 {
		next := m.timers[0]
		if next.stopped {
			heap.Pop(&m.timers)
			continue
		}
		if next.at.After(target) {
			break
		}
		m.now = next.at
		if next.period > 0 {
			next.at = next.at.Add(next.period)
			m.seq++
			next.seq = m.seq
			heap.Fix(&m.timers, 0)
		} else {
			heap.Pop(&m.timers)
			next.stopped = true
		}
		next.fn()
	}
	if target.After(m.now) {
		m.now = target
	}
}

type manualTimer struct {
	at      time.Time
	period  time.Duration
	seq     uint64
	fn      func()
	stopped bool
	index   int
}

func (t *manualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

type timerHeap []*manualTimer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*manualTimer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
