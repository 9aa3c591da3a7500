package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toasty/internal/model"
)

func toastRegions(f frame) []region {
	var out []region
	for _, r := range f.regions {
		if r.kind == regionToast {
			out = append(out, r)
		}
	}
	return out
}

func TestView_NotReady(t *testing.T) {
	m, _ := newTestModel(t, "top-right")
	m.ready = false
	assert.Equal(t, "Loading...", m.View())
}

func TestView_ShowsButtonsAndToast(t *testing.T) {
	m, _ := newTestModel(t, "top-right")
	m = update(m, keyMsg("1"))

	view := m.View()
	for _, label := range []string{"Success", "Info", "Warning", "Error"} {
		assert.Contains(t, view, label)
	}
	assert.Contains(t, view, "Success toast notification")
	assert.Contains(t, view, dismissGlyph)
	assert.Contains(t, view, "1 toast shown")
	assert.Len(t, strings.Split(view, "\n"), testHeight)
}

func TestFrame_AnchorsPerPosition(t *testing.T) {
	tests := []struct {
		position string
		wantX    int
		top      bool
	}{
		{"top-left", sideMargin, true},
		{"top-right", testWidth - ToastWidth - sideMargin, true},
		{"top-center", (testWidth - ToastWidth) / 2, true},
		{"bottom-left", sideMargin, false},
		{"bottom-right", testWidth - ToastWidth - sideMargin, false},
		{"bottom-center", (testWidth - ToastWidth) / 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.position, func(t *testing.T) {
			m, _ := newTestModel(t, tt.position)
			m = update(m, keyMsg("2"))

			f := m.frame()
			regions := toastRegions(f)
			require.Len(t, regions, 1)
			r := regions[0]
			assert.Equal(t, tt.wantX, r.x)
			assert.Equal(t, ToastWidth, r.w)
			assert.Equal(t, 4, r.h)

			footer := lipgloss.Height(m.help.View(m.keys))
			if tt.top {
				assert.Equal(t, 1+edgeMargin, r.y)
			} else {
				assert.Equal(t, testHeight-footer-edgeMargin, r.y+r.h)
			}
		})
	}
}

func TestFrame_StackNewestFirst(t *testing.T) {
	m, _ := newTestModel(t, "top-right")
	m = update(m, keyMsg("1"))
	m = update(m, keyMsg("2"))
	m = update(m, keyMsg("3"))

	regions := toastRegions(m.frame())
	require.Len(t, regions, 3)
	items := m.Notifier().Items()
	for i, r := range regions {
		assert.Equal(t, items[i].Container, r.node)
		if i > 0 {
			assert.Equal(t, regions[i-1].y+regions[i-1].h, r.y)
		}
	}
}

func TestFrame_BottomStackNewestOnTop(t *testing.T) {
	m, _ := newTestModel(t, "bottom-right")
	m = update(m, keyMsg("1"))
	m = update(m, keyMsg("4"))

	regions := toastRegions(m.frame())
	require.Len(t, regions, 2)
	assert.Equal(t, model.TypeError, m.Notifier().Items()[0].Type)
	assert.Equal(t, m.Notifier().Items()[0].Container, regions[0].node)
	assert.Less(t, regions[0].y, regions[1].y)
}

func TestFrame_ClipsOldestWhenFull(t *testing.T) {
	m, _ := newTestModel(t, "top-left")
	m = update(m, tea.WindowSizeMsg{Width: testWidth, Height: 14})
	for range 5 {
		m = update(m, keyMsg("1"))
	}

	regions := toastRegions(m.frame())
	assert.Less(t, len(regions), 5)
	require.NotEmpty(t, regions)
	assert.Equal(t, m.Notifier().Items()[0].Container, regions[0].node)
}

func TestFrame_DismissingCollapses(t *testing.T) {
	m, clk := newTestModel(t, "top-right")
	m = update(m, keyMsg("1"))
	m = update(m, keyMsg("x"))

	f := m.frame()
	assert.Empty(t, toastRegions(f))
	assert.Contains(t, m.View(), "Success toast notification")

	clk.Advance(300 * time.Millisecond)
	assert.NotContains(t, m.View(), "Success toast notification")
}

func TestFrame_ButtonsOppositeTheStack(t *testing.T) {
	top, _ := newTestModel(t, "top-center")
	bottom, _ := newTestModel(t, "bottom-center")

	buttonY := func(f frame) int {
		for _, r := range f.regions {
			if r.kind == regionButton {
				return r.y
			}
		}
		return -1
	}
	assert.Greater(t, buttonY(top.frame()), testHeight/2)
	assert.Equal(t, 1, buttonY(bottom.frame()))
}

func TestRegion_Contains(t *testing.T) {
	r := region{x: 2, y: 3, w: 4, h: 2}
	assert.True(t, r.contains(2, 3))
	assert.True(t, r.contains(5, 4))
	assert.False(t, r.contains(6, 4))
	assert.False(t, r.contains(2, 5))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestFrame_DismissRegionOnGlyph(t *testing.T) {
	for _, pos := range []string{"top-right", "bottom-center", "top-left"} {
		t.Run(pos, func(t *testing.T) {
			m, _ := newTestModel(t, pos)
			it, err := m.Notifier().Render(model.TypeWarning,
				"A message long enough to wrap across several lines inside the toast box")
			require.NoError(t, err)

			f := m.frame()
			var dismiss region
			for _, r := range f.regions {
				if r.kind == regionDismiss {
					dismiss = r
				}
			}
			require.Same(t, it.DismissButton, dismiss.node)

			line := f.lines[dismiss.y]
			idx := strings.Index(line, dismissGlyph)
			require.GreaterOrEqual(t, idx, 0, "no glyph on row %d: %q", dismiss.y, line)
			assert.Equal(t, dismiss.x+1, lipgloss.Width(line[:idx]))

			m = update(m, click(dismiss.x+1, dismiss.y))
			assert.Equal(t, model.StateDismissing, it.State())
		})
	}
}
