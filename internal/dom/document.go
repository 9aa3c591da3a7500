package dom

// Document owns a tree of nodes rooted at a body element.
type Document struct {
	body     *Node
	measurer Measurer
	version  uint64
}

// Option configures a Document.
type Option func(*Document)

// WithMeasurer sets the layout measurer used by ClientWidth and ClientHeight.
func WithMeasurer(m Measurer) Option {
	return func(d *Document) {
		d.measurer = m
	}
}

// NewDocument creates an empty document with a body element.
func NewDocument(opts ...Option) *Document {
	d := &Document{measurer: DefaultMeasurer{}}
	for _, opt := range opts {
		opt(d)
	}
	d.body = d.CreateElement("body")
	return d
}

// Body returns the body element.
func (d *Document) Body() *Node { return d.body }

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) *Node {
	return &Node{kind: KindElement, tag: tag, doc: d}
}

// CreateText creates a detached text node.
func (d *Document) CreateText(text string) *Node {
	return &Node{kind: KindText, text: text, doc: d}
}

// Version increases on every mutation. Front ends compare it to decide
// whether to repaint.
func (d *Document) Version() uint64 { return d.version }

// SetMeasurer replaces the layout measurer.
func (d *Document) SetMeasurer(m Measurer) {
	if m == nil {
		m = DefaultMeasurer{}
	}
	d.measurer = m
}

// QueryClass returns the first element carrying class, or nil.
func (d *Document) QueryClass(class string) *Node {
	return d.body.Find(func(n *Node) bool { return n.HasClass(class) })
}

// QueryAllClass returns all elements carrying class in document order.
func (d *Document) QueryAllClass(class string) []*Node {
	var out []*Node
	d.body.Walk(func(n *Node) bool {
		if n.HasClass(class) {
			out = append(out, n)
		}
		return true
	})
	return out
}

func (d *Document) mutated() {
	if d != nil {
		d.version++
	}
}
