package toast

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/jmylchreest/toasty/internal/clock"
	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/model"
)

// Timing constants. RemovalDelay matches the CSS transition duration.
const (
	PollInterval = 100 * time.Millisecond
	FadeInDelay  = 50 * time.Millisecond
	RemovalDelay = 300 * time.Millisecond
)

// ErrClosed is returned by Render and Build after Close.
var ErrClosed = errors.New("notifier closed")

// ChangeKind distinguishes lifecycle changes from hover changes.
type ChangeKind int

const (
	ChangeState ChangeKind = iota
	ChangeHover
)

// String returns the string representation of ChangeKind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeState:
		return "state"
	case ChangeHover:
		return "hover"
	default:
		return "unknown"
	}
}

// Change describes something that happened to an item.
type Change struct {
	Kind    ChangeKind
	At      time.Time
	ID      string
	Type    model.Type
	Message string
	State   model.State
	Reason  model.CloseReason
	Hovered bool
	Elapsed time.Duration
}

// Observer receives every Change. It runs on the loop goroutine.
type Observer func(Change)

// Option configures a Notifier.
type Option func(*Notifier)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Notifier) {
		n.logger = logger
	}
}

// WithPauseOnHover controls whether hovering freezes the countdown.
// It is enabled by default.
func WithPauseOnHover(enabled bool) Option {
	return func(n *Notifier) {
		n.pauseOnHover = enabled
	}
}

// WithMaxVisible caps the number of counting items. When a render exceeds
// the cap the oldest counting item is closed. Zero means unlimited.
func WithMaxVisible(limit int) Option {
	return func(n *Notifier) {
		n.maxVisible = limit
	}
}

// WithObserver registers an observer for item changes.
func WithObserver(obs Observer) Option {
	return func(n *Notifier) {
		n.observers = append(n.observers, obs)
	}
}

// Notifier manages the stack container and the items in it.
type Notifier struct {
	doc    *dom.Document
	sched  clock.Scheduler
	logger *slog.Logger

	position     model.Position
	timeout      time.Duration
	pauseOnHover bool
	maxVisible   int

	root      *dom.Node
	items     []*Item // newest first, until removed
	observers []Observer
	cleanups  []func()
	closed    bool
}

// New creates the stack container for position and attaches it to the
// document body.
func New(doc *dom.Document, sched clock.Scheduler, position model.Position, timeout time.Duration, opts ...Option) (*Notifier, error) {
	if !position.Valid() {
		return nil, fmt.Errorf("failed to create notifier: %w: %d", model.ErrUnknownPosition, int(position))
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("failed to create notifier: %w", model.ErrInvalidTimeout)
	}

	n := &Notifier{
		doc:          doc,
		sched:        sched,
		logger:       slog.Default(),
		position:     position,
		timeout:      timeout,
		pauseOnHover: true,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.logger == nil {
		n.logger = slog.Default()
	}

	n.createRoot()
	return n, nil
}

func (n *Notifier) createRoot() {
	n.root = n.doc.CreateElement("ul")
	n.root.AddClass(n.position.OffsetClasses()...)
	n.root.AddClass(model.RootClasses...)
	n.doc.Body().Append(n.root)
}

// Root returns the stack container.
func (n *Notifier) Root() *dom.Node { return n.root }

// Position returns the current anchor.
func (n *Notifier) Position() model.Position { return n.position }

// Timeout returns the countdown applied to new items.
func (n *Notifier) Timeout() time.Duration { return n.timeout }

// SetPosition moves the stack to a new anchor.
func (n *Notifier) SetPosition(p model.Position) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", model.ErrUnknownPosition, int(p))
	}
	if p == n.position {
		return nil
	}
	n.root.RemoveClass(n.position.OffsetClasses()...)
	// Classes shared by both anchors (top-5, left-1/2, ...) must survive.
	n.root.AddClass(p.OffsetClasses()...)
	n.logger.Debug("toast position changed", "from", n.position, "to", p)
	n.position = p
	return nil
}

// SetTimeout changes the countdown for items rendered from now on. Items
// already in the stack keep the timeout they were built with.
func (n *Notifier) SetTimeout(d time.Duration) error {
	if d <= 0 {
		return model.ErrInvalidTimeout
	}
	n.timeout = d
	return nil
}

// PauseOnHover reports whether hovering freezes the countdown.
func (n *Notifier) PauseOnHover() bool { return n.pauseOnHover }

// SetPauseOnHover changes hover behaviour. It applies from the next poll.
func (n *Notifier) SetPauseOnHover(enabled bool) {
	n.pauseOnHover = enabled
}

// SetMaxVisible changes the cap on counting items and enforces it at once.
func (n *Notifier) SetMaxVisible(limit int) {
	n.maxVisible = limit
	n.enforceMaxVisible()
}

// Subscribe adds an observer.
func (n *Notifier) Subscribe(obs Observer) {
	n.observers = append(n.observers, obs)
}

// AddCleanup registers fn to run on Close. Trigger bindings use it so that
// tearing down the notifier also removes them.
func (n *Notifier) AddCleanup(fn func()) {
	n.cleanups = append(n.cleanups, fn)
}

// Items returns the items still in the stack, newest first. Items that are
// collapsing are included until they are detached.
func (n *Notifier) Items() []*Item {
	return slices.Clone(n.items)
}

// Visible returns the number of items that are counting down.
func (n *Notifier) Visible() int {
	count := 0
	for _, it := range n.items {
		if it.state == model.StateVisible {
			count++
		}
	}
	return count
}

// Lookup returns the item with the given id.
func (n *Notifier) Lookup(id string) (*Item, bool) {
	for _, it := range n.items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}

// ItemAt returns the item whose container is node or contains it.
func (n *Notifier) ItemAt(node *dom.Node) (*Item, bool) {
	for _, it := range n.items {
		if it.Container.Contains(node) {
			return it, true
		}
	}
	return nil, false
}

// Render builds a toast, inserts it at the top of the stack, and starts its
// countdown.
func (n *Notifier) Render(t model.Type, message string) (*Item, error) {
	it, err := n.Build(t, message)
	if err != nil {
		return nil, err
	}

	n.root.Prepend(it.Container)
	n.items = append([]*Item{it}, n.items...)

	it.Container.SetStyle("height", px(it.Content.ClientHeight()))
	it.TimelineBorder.SetStyle("width", px(it.Content.ClientWidth()))
	it.TimelineBorder.SetStyle("height", px(it.Content.ClientHeight()))

	it.unbind = append(it.unbind,
		it.Container.AddEventListener(dom.EventMouseEnter, func(*dom.Event) { n.setHover(it, true) }),
		it.Container.AddEventListener(dom.EventMouseLeave, func(*dom.Event) { n.setHover(it, false) }),
	)

	it.poll = n.sched.Every(PollInterval, func() { n.tick(it) })
	it.state = model.StateVisible

	n.logger.Debug("rendered toast",
		"id", it.ID,
		"type", it.Type,
		"timeout", it.timeout,
		"stack", len(n.items),
	)
	n.emit(it, ChangeState)

	n.enforceMaxVisible()
	return it, nil
}

func (n *Notifier) enforceMaxVisible() {
	if n.maxVisible <= 0 {
		return
	}
	for n.Visible() > n.maxVisible {
		// items are newest first, so the oldest counting item is the last one.
		for i := len(n.items) - 1; i >= 0; i-- {
			if n.items[i].state == model.StateVisible {
				n.Remove(n.items[i], model.CloseReasonClosed)
				break
			}
		}
	}
}

func (n *Notifier) setHover(it *Item, hovered bool) {
	if it.hovered == hovered {
		return
	}
	it.hovered = hovered
	n.emit(it, ChangeHover)
}

// tick advances the countdown by one poll interval unless the item is
// hovered, and starts removal once the timeout is reached.
func (n *Notifier) tick(it *Item) {
	if it.state != model.StateVisible {
		return
	}
	if it.hovered && n.pauseOnHover {
		it.Timeline.SetStyle(AnimationPlayStateStyle, "paused")
	} else {
		it.elapsed += PollInterval
		it.Timeline.SetStyle(AnimationPlayStateStyle, "running")
	}

	if it.elapsed >= it.timeout {
		n.Remove(it, model.CloseReasonExpired)
	}
}

// Remove collapses the item and detaches it after RemovalDelay. The countdown
// is cancelled immediately. Calling Remove on an item that is already
// collapsing or removed does nothing.
func (n *Notifier) Remove(it *Item, reason model.CloseReason) {
	if it == nil || it.state >= model.StateDismissing {
		return
	}
	it.stopTimers()

	it.TimelineBorder.Remove()
	it.Container.SetStyle("height", "0px")
	it.Container.SetStyle("margin-bottom", "0px")
	it.Content.RemoveClass(VisibleClass)

	it.state = model.StateDismissing
	it.reason = reason
	n.logger.Debug("dismissing toast", "id", it.ID, "reason", reason, "elapsed", it.elapsed)
	n.emit(it, ChangeState)

	it.removal = n.sched.AfterFunc(RemovalDelay, func() {
		it.removal = nil
		n.detach(it)
	})
}

func (n *Notifier) detach(it *Item) {
	it.Container.Remove()
	it.release()
	it.hovered = false
	n.items = slices.DeleteFunc(n.items, func(x *Item) bool { return x == it })
	it.state = model.StateRemoved
	n.emit(it, ChangeState)
}

// DismissAll starts removal of every counting item.
func (n *Notifier) DismissAll(reason model.CloseReason) {
	for _, it := range slices.Clone(n.items) {
		n.Remove(it, reason)
	}
}

// Close cancels every timer, detaches all items and the stack container,
// and runs registered cleanups. Render fails with ErrClosed afterwards.
func (n *Notifier) Close() {
	if n.closed {
		return
	}
	n.closed = true

	for _, it := range slices.Clone(n.items) {
		it.stopTimers()
		if it.removal != nil {
			it.removal.Stop()
			it.removal = nil
		}
		if it.state < model.StateDismissing {
			it.reason = model.CloseReasonClosed
		}
		n.detach(it)
	}
	n.root.Remove()

	for _, fn := range n.cleanups {
		fn()
	}
	n.cleanups = nil
	n.logger.Debug("notifier closed")
}

func (n *Notifier) emit(it *Item, kind ChangeKind) {
	if len(n.observers) == 0 {
		return
	}
	c := Change{
		Kind:    kind,
		At:      n.sched.Now(),
		ID:      it.ID,
		Type:    it.Type,
		Message: it.Message,
		State:   it.state,
		Reason:  it.reason,
		Hovered: it.hovered,
		Elapsed: it.elapsed,
	}
	for _, obs := range n.observers {
		obs(c)
	}
}

func px(v int) string {
	return strconv.Itoa(v) + "px"
}
