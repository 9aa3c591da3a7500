package toast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/model"
)

// Utility classes applied to each part of an item.
var (
	ContentClasses          = strings.Fields("absolute top-0 left-0 opacity-0 w-full flex items-center gap-2 shadow-md py-6 px-3 bg-white text-lg ease duration-500")
	ContainerClasses        = strings.Fields("notification-item w-[400px] [&:not(:last-child)]:mb-5 relative h-0 rounded-xl overflow-hidden duration-500")
	DismissButtonClasses    = strings.Fields("relative ml-auto p-2 z-10")
	TimelineClasses         = strings.Fields("absolute bottom-0 left-0 w-full h-[10px] animate-timeline overflow-hidden")
	TimelineBorderClasses   = strings.Fields("border-b-4 -translate-y-[calc(100%_-_10px)] rounded-xl")
	ItemClass               = "notification-item"
	VisibleClass            = "opacity-100"
	AnimationDurationStyle  = "animation-duration"
	AnimationPlayStateStyle = "animation-play-state"
)

// Build constructs the element subtree for one toast without inserting it.
// It schedules the fade-in and binds the dismiss button. Unknown types are
// rejected before any node is created.
func (n *Notifier) Build(t model.Type, message string) (*Item, error) {
	if n.closed {
		return nil, ErrClosed
	}
	if !t.Valid() {
		return nil, fmt.Errorf("failed to build toast: %w: %d", model.ErrUnknownType, int(t))
	}

	now := n.sched.Now()
	id, err := model.NewID(now)
	if err != nil {
		return nil, err
	}

	doc := n.doc
	it := &Item{
		ID:        id,
		Type:      t,
		Message:   message,
		CreatedAt: now,
		timeout:   n.timeout,
		state:     model.StateRendering,
	}

	timeline := doc.CreateElement("div")
	timelineBorder := doc.CreateElement("div")
	content := doc.CreateElement("div")
	container := doc.CreateElement("li")
	icon := doc.CreateElement("img")
	dismissIcon := doc.CreateElement("img")
	dismiss := doc.CreateElement("button")

	dismissIcon.SetAttr("src", model.IconCross.Src())
	dismissIcon.SetAttr("alt", "Icon cross")
	icon.SetAttr("src", t.Icon().Src())
	icon.SetAttr("alt", "Icon "+t.String())
	content.SetText(message)

	timeline.AddClass(TimelineClasses...)
	timeline.SetStyle(AnimationDurationStyle, strconv.FormatInt(n.timeout.Milliseconds(), 10)+"ms")
	timelineBorder.AddClass(TimelineBorderClasses...)
	timelineBorder.AddClass(t.BorderClass())
	dismiss.AddClass(DismissButtonClasses...)
	content.AddClass(ContentClasses...)
	container.AddClass(ContainerClasses...)
	container.SetAttr("data-id", id)

	it.unbind = append(it.unbind, dismiss.AddEventListener(dom.EventClick, func(e *dom.Event) {
		e.StopPropagation()
		n.Remove(it, model.CloseReasonDismissed)
	}))

	content.Prepend(icon)
	dismiss.Append(dismissIcon)
	content.Append(dismiss)
	container.Append(content)
	timeline.Append(timelineBorder)
	container.Append(timeline)

	it.Container = container
	it.Content = content
	it.Timeline = timeline
	it.TimelineBorder = timelineBorder
	it.DismissButton = dismiss

	it.fadeIn = n.sched.AfterFunc(FadeInDelay, func() {
		it.fadeIn = nil
		content.AddClass(VisibleClass)
	})

	return it, nil
}
