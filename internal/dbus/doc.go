// Package dbus exposes the toast widget on the session bus so other programs
// can render toasts. It provides the io.github.jmylchreest.Toasty service,
// a client for it, and the glue that marshals calls onto the widget loop.
package dbus
