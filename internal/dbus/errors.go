package dbus

import (
	"errors"

	"github.com/godbus/dbus/v5"
)

// D-Bus error names returned by the service.
const (
	ErrorUnknownType = DBusInterface + ".Error.UnknownType"
	ErrorRateLimited = DBusInterface + ".Error.RateLimited"
	ErrorFailed      = DBusInterface + ".Error.Failed"
)

// ErrRateLimited is returned when a caller exceeds the configured render rate.
var ErrRateLimited = errors.New("render rate exceeded")

// ServiceError carries a failure cause together with its D-Bus error name.
type ServiceError struct {
	Name string
	Err  error
}

func (e *ServiceError) Error() string {
	return e.Name + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// DBus converts the error for return from an exported method.
func (e *ServiceError) DBus() *dbus.Error {
	return dbus.NewError(e.Name, []any{e.Err.Error()})
}
