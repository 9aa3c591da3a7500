// Package dom is a small in-process element tree with the subset of browser
// DOM behaviour the toast widget relies on: class lists, inline styles,
// attributes, text, ordered children, and event listeners with bubbling.
//
// Front ends paint a Document and feed input back into it by dispatching
// events on the element under the pointer.
package dom
