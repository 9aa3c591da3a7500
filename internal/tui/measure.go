package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/toasty/internal/dom"
)

// Cell size used to report terminal geometry to the document in px.
const (
	CellWidthPx  = 10
	CellHeightPx = 20
)

// cellMeasurer sizes toast content from how it wraps in the terminal box:
// the message lines, the timeline bar, and the border rows.
type cellMeasurer struct{}

func (cellMeasurer) Measure(n *dom.Node) (int, int) {
	// Two cells for the glyph and the space before the message.
	text := lipgloss.NewStyle().Width(textWidth).Render("  " + n.TextContent())
	rows := lipgloss.Height(text) + 1 + 2
	return ToastWidth * CellWidthPx, rows * CellHeightPx
}
