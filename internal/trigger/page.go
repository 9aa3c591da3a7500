package trigger

import (
	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/model"
)

// Page is the demo page: a container with one button per toast type.
type Page struct {
	Container *dom.Node
	Buttons   map[model.Type]*dom.Node
}

// NewPage builds the demo page and appends it to the document body.
func NewPage(doc *dom.Document) *Page {
	p := &Page{
		Container: doc.CreateElement("div"),
		Buttons:   make(map[model.Type]*dom.Node, len(model.Types())),
	}
	p.Container.AddClass(ContainerClass)

	for _, t := range model.Types() {
		b := doc.CreateElement("button")
		b.SetAttr("type", "button")
		b.SetText(t.Label())
		p.Container.Append(b)
		p.Buttons[t] = b
	}

	doc.Body().Append(p.Container)
	return p
}

// Press clicks the button for t. It reports whether a listener handled the
// click.
func (p *Page) Press(t model.Type) bool {
	b, ok := p.Buttons[t]
	if !ok {
		return false
	}
	return b.Click()
}
