// Package toast renders transient notifications into a dom.Document.
//
// A Notifier owns one anchored stack container. Render builds an item, puts
// it at the top of the stack, and starts a 100ms poll that advances the
// item's countdown unless the pointer is over it. When the countdown reaches
// the timeout, or the dismiss button is clicked, the item collapses and is
// detached 300ms later.
//
// All methods must be called from the scheduler's loop goroutine.
package toast
