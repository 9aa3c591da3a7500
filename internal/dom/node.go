package dom

import (
	"slices"
	"strings"
)

// Kind distinguishes element nodes from text nodes.
type Kind uint8

const (
	KindElement Kind = iota
	KindText
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is an element or a text node.
type Node struct {
	kind     Kind
	tag      string
	text     string
	doc      *Document
	parent   *Node
	children []*Node

	classes   []string
	style     map[string]string
	styleKeys []string
	attrs     map[string]string
	attrKeys  []string

	listeners map[string][]*listener
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Tag returns the lower-case tag name. Text nodes return "".
func (n *Node) Tag() string { return n.tag }

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// Parent returns the parent node, or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// Index returns the position of n in its parent, or -1 when detached.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	return slices.Index(n.parent.children, n)
}

// Append adds children to the end of n. A child that already has a parent is
// moved.
func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		c.detach()
		c.parent = n
		n.children = append(n.children, c)
	}
	n.doc.mutated()
}

// Prepend inserts children at the start of n, keeping their relative order.
func (n *Node) Prepend(children ...*Node) {
	for _, c := range children {
		c.detach()
		c.parent = n
	}
	n.children = append(slices.Clone(children), n.children...)
	n.doc.mutated()
}

// Remove detaches n from its parent. Removing a detached node is a no-op.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	n.detach()
	n.doc.mutated()
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := slices.Index(p.children, n); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = nil
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for c := other; c != nil; c = c.parent {
		if c == n {
			return true
		}
	}
	return false
}

// Connected reports whether n is attached to its document's body.
func (n *Node) Connected() bool {
	return n.doc != nil && n.doc.body.Contains(n)
}

// Find returns the first node in n's subtree, n included, for which match
// returns true. The walk is depth-first in document order.
func (n *Node) Find(match func(*Node) bool) *Node {
	if match(n) {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(match); found != nil {
			return found
		}
	}
	return nil
}

// Walk calls fn for every node in n's subtree in document order.
// Returning false from fn skips that node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range slices.Clone(n.children) {
		c.Walk(fn)
	}
}

// SetText replaces all children with a single text node, like assigning
// textContent in a browser.
func (n *Node) SetText(text string) {
	if n.kind == KindText {
		n.text = text
		n.doc.mutated()
		return
	}
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	n.Append(n.doc.CreateText(text))
}

// TextContent returns the concatenated text of n's subtree.
func (n *Node) TextContent() string {
	if n.kind == KindText {
		return n.text
	}
	var sb strings.Builder
	n.Walk(func(c *Node) bool {
		if c.kind == KindText {
			sb.WriteString(c.text)
		}
		return true
	})
	return sb.String()
}

// AddClass adds classes that are not already present.
func (n *Node) AddClass(classes ...string) {
	for _, c := range classes {
		if c == "" || slices.Contains(n.classes, c) {
			continue
		}
		n.classes = append(n.classes, c)
	}
	n.doc.mutated()
}

// RemoveClass removes classes if present.
func (n *Node) RemoveClass(classes ...string) {
	n.classes = slices.DeleteFunc(n.classes, func(c string) bool {
		return slices.Contains(classes, c)
	})
	n.doc.mutated()
}

// HasClass reports whether the class is present.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.classes, class)
}

// Classes returns a copy of the class list in insertion order.
func (n *Node) Classes() []string {
	return slices.Clone(n.classes)
}

// SetStyle sets an inline style property. An empty value removes it.
func (n *Node) SetStyle(property, value string) {
	if value == "" {
		n.RemoveStyle(property)
		return
	}
	if n.style == nil {
		n.style = make(map[string]string)
	}
	if _, ok := n.style[property]; !ok {
		n.styleKeys = append(n.styleKeys, property)
	}
	n.style[property] = value
	n.doc.mutated()
}

// RemoveStyle removes an inline style property.
func (n *Node) RemoveStyle(property string) {
	if _, ok := n.style[property]; !ok {
		return
	}
	delete(n.style, property)
	n.styleKeys = slices.DeleteFunc(n.styleKeys, func(k string) bool { return k == property })
	n.doc.mutated()
}

// Style returns an inline style property, or "" if unset.
func (n *Node) Style(property string) string {
	return n.style[property]
}

// SetAttr sets an attribute.
func (n *Node) SetAttr(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	if _, ok := n.attrs[name]; !ok {
		n.attrKeys = append(n.attrKeys, name)
	}
	n.attrs[name] = value
	n.doc.mutated()
}

// Attr returns an attribute value, or "" if unset.
func (n *Node) Attr(name string) string {
	return n.attrs[name]
}

// ClientWidth returns the measured width in px.
func (n *Node) ClientWidth() int {
	w, _ := n.doc.measurer.Measure(n)
	return w
}

// ClientHeight returns the measured height in px.
func (n *Node) ClientHeight() int {
	_, h := n.doc.measurer.Measure(n)
	return h
}
