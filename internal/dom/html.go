package dom

import (
	"html"
	"io"
	"strings"
)

var voidElements = map[string]bool{
	"img": true, "br": true, "hr": true, "input": true, "meta": true, "link": true,
}

// HTML serialises n and its subtree. Class order, style order, and attribute
// order follow insertion order so output is stable.
func (n *Node) HTML() string {
	var sb strings.Builder
	_ = n.WriteHTML(&sb)
	return sb.String()
}

// WriteHTML writes the serialised subtree to w.
func (n *Node) WriteHTML(w io.Writer) error {
	var sb strings.Builder
	n.writeHTML(&sb)
	_, err := io.WriteString(w, sb.String())
	return err
}

func (n *Node) writeHTML(sb *strings.Builder) {
	if n.kind == KindText {
		sb.WriteString(html.EscapeString(n.text))
		return
	}

	sb.WriteString("<" + n.tag)
	if len(n.classes) > 0 {
		sb.WriteString(` class="` + html.EscapeString(strings.Join(n.classes, " ")) + `"`)
	}
	if len(n.styleKeys) > 0 {
		parts := make([]string, 0, len(n.styleKeys))
		for _, k := range n.styleKeys {
			parts = append(parts, k+": "+n.style[k])
		}
		sb.WriteString(` style="` + html.EscapeString(strings.Join(parts, "; ")) + `"`)
	}
	for _, k := range n.attrKeys {
		sb.WriteString(" " + k + `="` + html.EscapeString(n.attrs[k]) + `"`)
	}
	sb.WriteString(">")
	if voidElements[n.tag] {
		return
	}
	for _, c := range n.children {
		c.writeHTML(sb)
	}
	sb.WriteString("</" + n.tag + ">")
}
