package sim

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmylchreest/toasty/internal/clock"
	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/model"
	"github.com/jmylchreest/toasty/internal/toast"
	"github.com/jmylchreest/toasty/internal/trigger"
)

// Epoch is the virtual start time of every run.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Event is one recorded transition. At is measured from the scenario start.
type Event struct {
	At      time.Duration     `json:"at" yaml:"at"`
	Kind    string            `json:"kind" yaml:"kind"`
	ID      string            `json:"id" yaml:"id"`
	Type    model.Type        `json:"type" yaml:"type"`
	Message string            `json:"message" yaml:"message"`
	State   model.State       `json:"state" yaml:"state"`
	Reason  model.CloseReason `json:"reason,omitempty" yaml:"reason,omitempty"`
	Hovered bool              `json:"hovered" yaml:"hovered"`
	Elapsed time.Duration     `json:"elapsed" yaml:"elapsed"`
}

// Result is the outcome of a run.
type Result struct {
	Scenario string  `json:"scenario" yaml:"scenario"`
	Events   []Event `json:"events" yaml:"events"`
	// Pending is the number of timers still scheduled at the horizon.
	Pending int `json:"pending" yaml:"pending"`
	// Remaining is the number of toasts still attached at the horizon.
	Remaining int `json:"remaining" yaml:"remaining"`
}

// Run plays the scenario to its horizon.
func Run(s *Scenario, logger *slog.Logger) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	clk := clock.NewManual(Epoch)
	doc := dom.NewDocument()
	res := &Result{Scenario: s.Name}
	recording := true

	opts := []toast.Option{
		toast.WithLogger(logger),
		toast.WithMaxVisible(s.MaxVisible),
		toast.WithObserver(func(c toast.Change) {
			if !recording {
				return
			}
			res.Events = append(res.Events, Event{
				At:      c.At.Sub(Epoch),
				Kind:    c.Kind.String(),
				ID:      c.ID,
				Type:    c.Type,
				Message: c.Message,
				State:   c.State,
				Reason:  c.Reason,
				Hovered: c.Hovered,
				Elapsed: c.Elapsed,
			})
		}),
	}
	if s.PauseOnHover != nil {
		opts = append(opts, toast.WithPauseOnHover(*s.PauseOnHover))
	}

	n, err := toast.New(doc, clk, s.Position, s.Timeout.Duration(), opts...)
	if err != nil {
		return nil, err
	}

	page := trigger.NewPage(doc)
	trigger.BindNotifier(page.Container, n, logger)

	// Items in render order so steps can address them by index.
	var rendered []*toast.Item
	n.Subscribe(func(c toast.Change) {
		if c.Kind != toast.ChangeState || c.State != model.StateVisible {
			return
		}
		if it, ok := n.Lookup(c.ID); ok {
			rendered = append(rendered, it)
		}
	})

	var stepErr error
	for i, st := range s.Steps {
		clk.AfterFunc(st.At.Duration(), func() {
			if stepErr != nil {
				return
			}
			if err := apply(n, page, rendered, st); err != nil {
				stepErr = fmt.Errorf("step %d (%s at %v): %w", i, st.Action, st.At, err)
			}
		})
	}

	clk.Advance(s.Horizon.Duration())
	res.Pending = clk.Pending()
	res.Remaining = len(n.Items())

	// Teardown transitions are not part of the scenario.
	recording = false
	n.Close()
	if stepErr != nil {
		return nil, stepErr
	}
	logger.Debug("scenario finished",
		"scenario", s.Name,
		"events", len(res.Events),
		"remaining", res.Remaining,
	)
	return res, nil
}

func apply(n *toast.Notifier, page *trigger.Page, rendered []*toast.Item, st Step) error {
	switch st.Action {
	case ActionPress:
		if !page.Press(st.Type) {
			return fmt.Errorf("no button for %s", st.Type)
		}
		return nil
	case ActionRender:
		_, err := n.Render(st.Type, st.Message)
		return err
	}

	if st.Target >= len(rendered) {
		return fmt.Errorf("target %d not rendered yet", st.Target)
	}
	it := rendered[st.Target]
	switch st.Action {
	case ActionHover:
		it.Container.Dispatch(dom.NewEvent(dom.EventMouseEnter))
	case ActionLeave:
		it.Container.Dispatch(dom.NewEvent(dom.EventMouseLeave))
	case ActionDismiss:
		it.DismissButton.Click()
	default:
		return fmt.Errorf("%w %q", ErrUnknownAction, st.Action)
	}
	return nil
}

// Final returns the last event recorded for id.
func (r *Result) Final(id string) (Event, bool) {
	for i := len(r.Events) - 1; i >= 0; i-- {
		if r.Events[i].ID == id {
			return r.Events[i], true
		}
	}
	return Event{}, false
}

// IDs returns the toast ids in the order they first appear.
func (r *Result) IDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, ev := range r.Events {
		if !seen[ev.ID] {
			seen[ev.ID] = true
			ids = append(ids, ev.ID)
		}
	}
	return ids
}
