package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toasty/internal/dbus"
	"github.com/jmylchreest/toasty/internal/model"
)

func TestGenerateStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    dbus.Status
		wantText  string
		wantClass string
	}{
		{
			name:      "empty",
			status:    dbus.Status{Position: model.PositionTopRight, Timeout: 4 * time.Second},
			wantText:  "",
			wantClass: "empty",
		},
		{
			name:      "toasts on screen",
			status:    dbus.Status{Visible: 3, Position: model.PositionBottomLeft, Timeout: 2 * time.Second},
			wantText:  "3",
			wantClass: "normal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generateStatus(tt.status)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantClass, got.Class)
			assert.Equal(t, tt.wantClass, got.Alt)
			assert.Contains(t, got.Tooltip, "Position: "+tt.status.Position.String())
		})
	}
}

func TestLoadScenario(t *testing.T) {
	simulateOpts.file = ""

	s, err := loadScenario(nil)
	require.NoError(t, err)
	assert.Equal(t, "expire", s.Name)

	s, err = loadScenario([]string{"dismiss"})
	require.NoError(t, err)
	assert.Equal(t, model.PositionBottomCenter, s.Position)

	_, err = loadScenario([]string{"nope"})
	assert.ErrorContains(t, err, "unknown scenario")
}
