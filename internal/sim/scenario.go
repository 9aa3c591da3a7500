// Package sim replays scripted interactions against a notifier on a virtual
// clock and records every transition the toasts go through.
package sim

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/model"
)

// Action is a scripted interaction.
type Action string

const (
	// ActionPress clicks the trigger button for Step.Type.
	ActionPress Action = "press"
	// ActionRender renders Step.Message directly, bypassing the buttons.
	ActionRender Action = "render"
	// ActionHover moves the pointer onto the target toast.
	ActionHover Action = "hover"
	// ActionLeave moves the pointer off the target toast.
	ActionLeave Action = "leave"
	// ActionDismiss clicks the target toast's dismiss button.
	ActionDismiss Action = "dismiss"
)

// ErrUnknownAction is returned for steps whose action is not recognised.
var ErrUnknownAction = errors.New("unknown action")

// Step is one interaction, applied At after the scenario starts. Target is
// the zero-based render order of the toast an interaction applies to.
// Durations read like the config file: "4s", "250ms", or bare milliseconds.
type Step struct {
	At      config.Duration `yaml:"at"`
	Action  Action        `yaml:"action"`
	Type    model.Type      `yaml:"type,omitempty"`
	Message string          `yaml:"message,omitempty"`
	Target  int             `yaml:"target,omitempty"`
}

// Scenario is a scripted session.
type Scenario struct {
	Name         string          `yaml:"name"`
	Position     model.Position  `yaml:"position"`
	Timeout      config.Duration `yaml:"timeout"`
	PauseOnHover *bool           `yaml:"pause_on_hover,omitempty"`
	MaxVisible   int             `yaml:"max_visible,omitempty"`
	Horizon      config.Duration `yaml:"horizon"`
	Steps        []Step          `yaml:"steps"`
}

// Validate checks the scenario for unusable values.
func (s *Scenario) Validate() error {
	if !s.Position.Valid() {
		return fmt.Errorf("position %d: %w", s.Position, model.ErrUnknownPosition)
	}
	if s.Timeout <= 0 {
		return model.ErrInvalidTimeout
	}
	if s.Horizon <= 0 {
		return errors.New("horizon must be greater than 0")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case ActionPress, ActionRender:
			if !st.Type.Valid() {
				return fmt.Errorf("step %d: %w", i, model.ErrUnknownType)
			}
		case ActionHover, ActionLeave, ActionDismiss:
			if st.Target < 0 {
				return fmt.Errorf("step %d: target must not be negative", i)
			}
		default:
			return fmt.Errorf("step %d: %w %q", i, ErrUnknownAction, st.Action)
		}
		if st.At < 0 || st.At > s.Horizon {
			return fmt.Errorf("step %d: at %v outside horizon %v", i, st.At, s.Horizon)
		}
	}
	return nil
}

// LoadScenario reads a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a YAML scenario. Missing position and timeout fall
// back to top-right and 4s.
func ParseScenario(data []byte) (*Scenario, error) {
	s := &Scenario{
		Position: model.PositionTopRight,
		Timeout:  config.Duration(4 * time.Second),
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return s, nil
}

// Expire renders one success toast from its button and lets it run out.
func Expire() *Scenario {
	return &Scenario{
		Name:     "expire",
		Position: model.PositionTopRight,
		Timeout:  config.Duration(4000 * time.Millisecond),
		Horizon:  config.Duration(5 * time.Second),
		Steps: []Step{
			{At: 0, Action: ActionPress, Type: model.TypeSuccess},
		},
	}
}

// Hover renders a toast, holds the pointer over it for ten seconds, then
// lets it run out.
func Hover() *Scenario {
	return &Scenario{
		Name:     "hover",
		Position: model.PositionTopRight,
		Timeout:  config.Duration(4000 * time.Millisecond),
		Horizon:  config.Duration(15 * time.Second),
		Steps: []Step{
			{At: 0, Action: ActionPress, Type: model.TypeInfo},
			{At: 0, Action: ActionHover},
			{At: config.Duration(10 * time.Second), Action: ActionLeave},
		},
	}
}

// Dismiss renders a stack of all four types and dismisses the oldest early.
func Dismiss() *Scenario {
	return &Scenario{
		Name:     "dismiss",
		Position: model.PositionBottomCenter,
		Timeout:  config.Duration(4000 * time.Millisecond),
		Horizon:  config.Duration(6 * time.Second),
		Steps: []Step{
			{At: 0, Action: ActionPress, Type: model.TypeSuccess},
			{At: config.Duration(200 * time.Millisecond), Action: ActionPress, Type: model.TypeInfo},
			{At: config.Duration(400 * time.Millisecond), Action: ActionPress, Type: model.TypeWarning},
			{At: config.Duration(600 * time.Millisecond), Action: ActionPress, Type: model.TypeError},
			{At: config.Duration(time.Second), Action: ActionDismiss, Target: 0},
		},
	}
}

var builtins = map[string]func() *Scenario{
	"expire":  Expire,
	"hover":   Hover,
	"dismiss": Dismiss,
}

// Builtin returns the named built-in scenario.
func Builtin(name string) (*Scenario, bool) {
	fn, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// BuiltinNames lists the built-in scenarios in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
