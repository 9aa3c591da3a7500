package dom

import "unicode/utf8"

// Measurer reports the rendered size of a node in px.
type Measurer interface {
	Measure(n *Node) (width, height int)
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(n *Node) (width, height int)

// Measure implements Measurer.
func (f MeasurerFunc) Measure(n *Node) (int, int) { return f(n) }

// Default layout metrics used when no front end supplies a measurer.
const (
	DefaultWidth      = 400
	DefaultLineHeight = 28
	DefaultPaddingY   = 48
	DefaultCharWidth  = 10
	// DefaultChrome is the horizontal space taken by padding, icon, and the
	// dismiss button.
	DefaultChrome = 100
)

// DefaultMeasurer estimates a fixed-width box whose height grows with the
// number of wrapped text lines.
type DefaultMeasurer struct{}

// Measure implements Measurer.
func (DefaultMeasurer) Measure(n *Node) (int, int) {
	perLine := (DefaultWidth - DefaultChrome) / DefaultCharWidth
	chars := utf8.RuneCountInString(n.TextContent())
	lines := (chars + perLine - 1) / perLine
	if lines < 1 {
		lines = 1
	}
	return DefaultWidth, DefaultPaddingY + lines*DefaultLineHeight
}
