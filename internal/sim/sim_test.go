package sim

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/model"
)

func stateEvents(events []Event) []Event {
	var out []Event
	for _, ev := range events {
		if ev.Kind == "state" {
			out = append(out, ev)
		}
	}
	return out
}

func TestRun_Expire(t *testing.T) {
	res, err := Run(Expire(), nil)
	require.NoError(t, err)

	states := stateEvents(res.Events)
	require.Len(t, states, 3)

	assert.Equal(t, time.Duration(0), states[0].At)
	assert.Equal(t, model.StateVisible, states[0].State)
	assert.Equal(t, model.TypeSuccess, states[0].Type)
	assert.Equal(t, "Success toast notification", states[0].Message)

	assert.Equal(t, 4000*time.Millisecond, states[1].At)
	assert.Equal(t, model.StateDismissing, states[1].State)
	assert.Equal(t, model.CloseReasonExpired, states[1].Reason)
	assert.Equal(t, 4000*time.Millisecond, states[1].Elapsed)

	assert.Equal(t, 4300*time.Millisecond, states[2].At)
	assert.Equal(t, model.StateRemoved, states[2].State)

	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, 0, res.Pending)
}

func TestRun_HoverFreezesCountdown(t *testing.T) {
	res, err := Run(Hover(), nil)
	require.NoError(t, err)

	var hovers []Event
	for _, ev := range res.Events {
		if ev.Kind == "hover" {
			hovers = append(hovers, ev)
		}
	}
	require.Len(t, hovers, 2)
	assert.True(t, hovers[0].Hovered)
	assert.False(t, hovers[1].Hovered)
	assert.Equal(t, 10*time.Second, hovers[1].At)
	assert.Equal(t, time.Duration(0), hovers[1].Elapsed)

	states := stateEvents(res.Events)
	require.Len(t, states, 3)
	assert.Equal(t, 14*time.Second, states[1].At)
	assert.Equal(t, model.CloseReasonExpired, states[1].Reason)
	assert.Equal(t, 14300*time.Millisecond, states[2].At)
}

func TestRun_Dismiss(t *testing.T) {
	res, err := Run(Dismiss(), nil)
	require.NoError(t, err)

	ids := res.IDs()
	require.Len(t, ids, 4)

	first, ok := res.Final(ids[0])
	require.True(t, ok)
	assert.Equal(t, model.StateRemoved, first.State)
	assert.Equal(t, model.CloseReasonDismissed, first.Reason)
	assert.Equal(t, 1300*time.Millisecond, first.At)

	last, ok := res.Final(ids[3])
	require.True(t, ok)
	assert.Equal(t, model.CloseReasonExpired, last.Reason)
	assert.Equal(t, 4900*time.Millisecond, last.At)
	assert.Equal(t, 0, res.Remaining)
}

func TestRun_HorizonBeforeExpiry(t *testing.T) {
	s := Expire()
	s.Horizon = config.Duration(2 * time.Second)

	res, err := Run(s, nil)
	require.NoError(t, err)

	assert.Len(t, stateEvents(res.Events), 1)
	assert.Equal(t, 1, res.Remaining)
	// The poll interval is still scheduled.
	assert.Equal(t, 1, res.Pending)
}

func TestRun_PauseOnHoverDisabled(t *testing.T) {
	s := Hover()
	off := false
	s.PauseOnHover = &off

	res, err := Run(s, nil)
	require.NoError(t, err)

	states := stateEvents(res.Events)
	require.Len(t, states, 3)
	assert.Equal(t, 4*time.Second, states[1].At)
}

func TestRun_MaxVisible(t *testing.T) {
	s := Dismiss()
	s.MaxVisible = 2
	s.Steps = s.Steps[:4]

	res, err := Run(s, nil)
	require.NoError(t, err)

	ids := res.IDs()
	require.Len(t, ids, 4)
	oldest, ok := res.Final(ids[0])
	require.True(t, ok)
	assert.Equal(t, model.CloseReasonClosed, oldest.Reason)
}

func TestRun_TargetNotRendered(t *testing.T) {
	s := Expire()
	s.Steps = append(s.Steps, Step{At: config.Duration(time.Second), Action: ActionHover, Target: 3})

	_, err := Run(s, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target 3 not rendered yet")
}

func TestScenario_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Scenario)
		wantErr bool
	}{
		{"valid", func(s *Scenario) {}, false},
		{"bad position", func(s *Scenario) { s.Position = model.Position(42) }, true},
		{"zero timeout", func(s *Scenario) { s.Timeout = 0 }, true},
		{"zero horizon", func(s *Scenario) { s.Horizon = 0 }, true},
		{"unknown action", func(s *Scenario) { s.Steps[0].Action = "wave" }, true},
		{"bad type", func(s *Scenario) { s.Steps[0].Type = model.Type(9) }, true},
		{"step past horizon", func(s *Scenario) { s.Steps[0].At = config.Duration(time.Minute) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Expire()
			tt.modify(s)
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseScenario(t *testing.T) {
	data := []byte(`
name: custom
position: bottom-left
timeout: 2s
horizon: 3s
steps:
  - at: 0s
    action: render
    type: warning
    message: Disk almost full
  - at: 500ms
    action: dismiss
    target: 0
`)
	s, err := ParseScenario(data)
	require.NoError(t, err)

	assert.Equal(t, "custom", s.Name)
	assert.Equal(t, model.PositionBottomLeft, s.Position)
	assert.Equal(t, 2*time.Second, s.Timeout.Duration())
	require.Len(t, s.Steps, 2)
	assert.Equal(t, model.TypeWarning, s.Steps[0].Type)
	assert.Equal(t, 500*time.Millisecond, s.Steps[1].At.Duration())

	res, err := Run(s, nil)
	require.NoError(t, err)
	ids := res.IDs()
	require.Len(t, ids, 1)
	final, _ := res.Final(ids[0])
	assert.Equal(t, "Disk almost full", final.Message)
	assert.Equal(t, model.CloseReasonDismissed, final.Reason)
}

func TestParseScenario_MillisecondIntegers(t *testing.T) {
	data := []byte(`
timeout: 4000
horizon: 6000
steps:
  - at: 0
    action: press
    type: info
  - at: 1500
    action: dismiss
`)
	s, err := ParseScenario(data)
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, s.Timeout.Duration())
	assert.Equal(t, 6*time.Second, s.Horizon.Duration())
	assert.Equal(t, 1500*time.Millisecond, s.Steps[1].At.Duration())

	res, err := Run(s, nil)
	require.NoError(t, err)
	final, ok := res.Final(res.IDs()[0])
	require.True(t, ok)
	assert.Equal(t, 1800*time.Millisecond, final.At)
}

func TestParseScenario_Defaults(t *testing.T) {
	s, err := ParseScenario([]byte("horizon: 1s\n"))
	require.NoError(t, err)
	assert.Equal(t, model.PositionTopRight, s.Position)
	assert.Equal(t, 4*time.Second, s.Timeout.Duration())
}

func TestParseScenario_Invalid(t *testing.T) {
	_, err := ParseScenario([]byte("position: middle\nhorizon: 1s\n"))
	assert.Error(t, err)

	_, err = ParseScenario([]byte("horizon: 1s\nsteps:\n  - at: 0s\n    action: wave\n"))
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: file\nhorizon: 1s\n"), 0644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "file", s.Name)

	_, err = LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBuiltin(t *testing.T) {
	assert.Equal(t, []string{"dismiss", "expire", "hover"}, BuiltinNames())

	for _, name := range BuiltinNames() {
		s, ok := Builtin(name)
		require.True(t, ok)
		assert.Equal(t, name, s.Name)
		assert.NoError(t, s.Validate())
	}

	_, ok := Builtin("nope")
	assert.False(t, ok)
}
