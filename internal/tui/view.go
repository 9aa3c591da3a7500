package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/model"
	"github.com/jmylchreest/toasty/internal/toast"
)

// Toast box geometry in terminal cells.
const (
	ToastWidth = 40
	// innerWidth is the content width inside the border and padding.
	innerWidth = ToastWidth - 4
	// textWidth leaves room for a space and the dismiss glyph.
	textWidth = innerWidth - 2
	// sideMargin mirrors the left-5/right-5 offsets.
	sideMargin = 2
	// edgeMargin mirrors the top-5/bottom-5 offsets.
	edgeMargin = 1
)

const dismissGlyph = "✕"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	dimStyle    = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("8"))
	buttonStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	toastStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(ToastWidth - 2)
)

type regionKind int

const (
	regionToast regionKind = iota
	regionDismiss
	regionButton
)

// region is a clickable rectangle on screen.
type region struct {
	kind       regionKind
	x, y, w, h int
	node       *dom.Node
}

func (r region) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// frame is one laid-out screen.
type frame struct {
	lines   []string
	regions []region
}

// hit returns the first region of the given kinds, in kind order, that
// contains the point.
func (f frame) hit(x, y int, kinds ...regionKind) (region, bool) {
	for _, k := range kinds {
		for _, r := range f.regions {
			if r.kind == k && r.contains(x, y) {
				return r, true
			}
		}
	}
	return region{}, false
}

// place writes block into the frame with its top-left corner at (x, y),
// clipping rows outside the screen.
func (f *frame) place(x, y int, block string) {
	pad := strings.Repeat(" ", max(x, 0))
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(f.lines) {
			continue
		}
		f.lines[row] = pad + line
	}
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return strings.Join(m.frame().lines, "\n")
}

// frame lays out the header, the trigger buttons, the toast stack, and the
// help footer.
func (m Model) frame() frame {
	f := frame{lines: make([]string, m.height)}
	if m.height <= 0 {
		return f
	}

	f.place(0, 0, m.headerView())

	footer := ""
	if m.cfg.TUI.ShowHelp {
		footer = m.help.View(m.keys)
	}
	footerHeight := 0
	if footer != "" {
		footerHeight = lipgloss.Height(footer)
		f.place(0, m.height-footerHeight, footer)
	}

	bodyTop := 1
	bodyBottom := m.height - footerHeight // exclusive

	buttons, buttonRegions := m.buttonsView()
	buttonsHeight := lipgloss.Height(buttons)
	buttonsX := max((m.width-lipgloss.Width(buttons))/2, 0)

	pos := m.notifier.Position()
	var buttonsY, stackTop, stackBottom int
	if pos.IsTop() {
		buttonsY = bodyBottom - buttonsHeight
		stackTop = bodyTop + edgeMargin
		stackBottom = buttonsY
	} else {
		buttonsY = bodyTop
		stackTop = buttonsY + buttonsHeight
		stackBottom = bodyBottom - edgeMargin
	}

	f.place(buttonsX, buttonsY, buttons)
	for _, r := range buttonRegions {
		r.x += buttonsX
		r.y += buttonsY
		f.regions = append(f.regions, r)
	}

	m.placeStack(&f, pos, stackTop, stackBottom)
	return f
}

// stackEntry is one toast block ready to be placed.
type stackEntry struct {
	item   *toast.Item
	block  string
	height int
	// dismiss is the glyph cell relative to the block, when it has one.
	dismiss    region
	hasDismiss bool
}

// placeStack renders items newest first. When space runs out the oldest
// items are left off. Bottom anchors align the stack to the lower edge.
func (m Model) placeStack(f *frame, pos model.Position, top, bottom int) {
	space := bottom - top
	var entries []stackEntry
	used := 0
	for _, it := range m.notifier.Items() {
		e := m.toastView(it)
		e.height = lipgloss.Height(e.block)
		if used+e.height > space {
			break
		}
		entries = append(entries, e)
		used += e.height
	}

	x := sideMargin
	switch {
	case pos.IsCenter():
		x = (m.width - ToastWidth) / 2
	case pos.IsRight():
		x = m.width - ToastWidth - sideMargin
	}
	x = max(x, 0)

	y := top
	if !pos.IsTop() {
		y = bottom - used
	}
	for _, e := range entries {
		f.place(x, y, e.block)
		if e.item.State() == model.StateVisible {
			f.regions = append(f.regions,
				region{kind: regionToast, x: x, y: y, w: ToastWidth, h: e.height, node: e.item.Container})
		}
		if e.hasDismiss {
			d := e.dismiss
			// Allow a cell either side of the glyph.
			d.x += x - 1
			d.y += y
			d.w += 2
			f.regions = append(f.regions, d)
		}
		y += e.height
	}
}

// toastView renders one toast and locates its dismiss glyph from the
// rendered widths. Collapsing toasts shrink to a dim line with no glyph.
func (m Model) toastView(it *toast.Item) stackEntry {
	e := stackEntry{item: it}
	if it.State() != model.StateVisible {
		e.block = dimStyle.Render(fmt.Sprintf("  %s %s", it.Type.Glyph(), truncate(it.Message, textWidth)))
		return e
	}

	colour := lipgloss.Color(it.Type.Colour())
	glyph := lipgloss.NewStyle().Foreground(colour).Render(it.Type.Glyph())
	text := lipgloss.NewStyle().Width(textWidth).Render(glyph + " " + it.Message)
	gap := " "
	dismiss := headerStyle.Render(dismissGlyph)
	first := lipgloss.JoinHorizontal(lipgloss.Top, text, gap, dismiss)

	bar := m.bars[it.Type].ViewAs(it.Progress())
	body := lipgloss.JoinVertical(lipgloss.Left, first, bar)

	style := toastStyle.BorderForeground(colour)
	if it.Hovered() {
		style = style.BorderStyle(lipgloss.ThickBorder())
	}
	// Until the fade-in lands the toast is drawn faint.
	if !it.Content.HasClass(toast.VisibleClass) {
		style = style.Faint(true)
	}
	e.block = style.Render(body)

	// JoinHorizontal aligns to the top, so the glyph is on the first
	// content row whatever the message wraps to.
	e.dismiss = region{
		kind: regionDismiss,
		x:    style.GetBorderLeftSize() + style.GetPaddingLeft() + lipgloss.Width(text) + lipgloss.Width(gap),
		y:    style.GetBorderTopSize() + style.GetPaddingTop(),
		w:    lipgloss.Width(dismiss),
		h:    1,
		node: it.DismissButton,
	}
	e.hasDismiss = true
	return e
}

// buttonsView renders the trigger buttons in a row and returns their
// regions relative to the row.
func (m Model) buttonsView() (string, []region) {
	var (
		blocks  []string
		regions []region
		x       int
	)
	for i, t := range model.Types() {
		node, ok := m.page.Buttons[t]
		if !ok {
			continue
		}
		if i > 0 {
			blocks = append(blocks, " ")
			x++
		}
		label := strings.TrimSpace(node.TextContent())
		block := buttonStyle.BorderForeground(lipgloss.Color(t.Colour())).Render(label)
		w := lipgloss.Width(block)
		regions = append(regions, region{kind: regionButton, x: x, y: 0, w: w, h: lipgloss.Height(block), node: node})
		blocks = append(blocks, block)
		x += w
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...), regions
}

// headerView renders the title bar: settings, counters, and status.
func (m Model) headerView() string {
	n := m.notifier
	parts := []string{
		n.Position().String(),
		n.Timeout().String() + " timeout",
		fmt.Sprintf("%s visible", humanize.Comma(int64(n.Visible()))),
		english.Plural(m.stats.shown, "toast", "") + " shown",
	}
	if m.stats.expired > 0 {
		parts = append(parts, humanize.Comma(int64(m.stats.expired))+" expired")
	}
	if m.stats.dismissed > 0 {
		parts = append(parts, humanize.Comma(int64(m.stats.dismissed))+" dismissed")
	}
	if !m.stats.last.IsZero() {
		parts = append(parts, "last "+humanize.RelTime(m.stats.last, m.sched.Now(), "ago", "from now"))
	}

	s := titleStyle.Render("toasty") + " " + headerStyle.Render(strings.Join(parts, " · "))
	if m.statusMsg != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		s += "  " + style.Render(m.statusMsg)
	}
	return s
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}
