package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatch_ClickBubbles(t *testing.T) {
	doc := NewDocument()
	container := doc.CreateElement("div")
	button := doc.CreateElement("button")
	label := doc.CreateText("Success")
	button.Append(label)
	container.Append(button)
	doc.Body().Append(container)

	var seen []*Node
	container.AddEventListener(EventClick, func(e *Event) {
		seen = append(seen, e.Target, e.CurrentTarget)
	})

	assert.True(t, button.Click())
	assert.Equal(t, []*Node{button, container}, seen)
}

func TestDispatch_MouseEnterDoesNotBubble(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("ul")
	child := doc.CreateElement("li")
	parent.Append(child)

	calls := 0
	parent.AddEventListener(EventMouseEnter, func(*Event) { calls++ })

	assert.False(t, child.Dispatch(NewEvent(EventMouseEnter)))
	assert.Equal(t, 0, calls)

	parent.Dispatch(NewEvent(EventMouseEnter))
	assert.Equal(t, 1, calls)
}

func TestDispatch_StopPropagation(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	child := doc.CreateElement("button")
	parent.Append(child)

	parentCalls := 0
	parent.AddEventListener(EventClick, func(*Event) { parentCalls++ })
	child.AddEventListener(EventClick, func(e *Event) { e.StopPropagation() })

	child.Click()
	assert.Equal(t, 0, parentCalls)
}

func TestAddEventListener_Remove(t *testing.T) {
	doc := NewDocument()
	btn := doc.CreateElement("button")

	calls := 0
	remove := btn.AddEventListener(EventClick, func(*Event) { calls++ })
	assert.Equal(t, 1, btn.ListenerCount(EventClick))

	btn.Click()
	remove()
	remove()
	btn.Click()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, btn.ListenerCount(EventClick))
}

func TestDispatch_ListenerRemovesItself(t *testing.T) {
	doc := NewDocument()
	btn := doc.CreateElement("button")

	calls := 0
	var remove func()
	remove = btn.AddEventListener(EventClick, func(*Event) {
		calls++
		remove()
	})
	btn.AddEventListener(EventClick, func(*Event) { calls++ })

	btn.Click()
	btn.Click()
	assert.Equal(t, 3, calls)
}
