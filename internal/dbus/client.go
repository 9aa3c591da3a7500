package dbus

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/toasty/internal/model"
)

// Client calls a running toast service.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Dial opens a private session bus connection to the service.
func Dial() (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Client{
		conn: conn,
		obj:  conn.Object(DBusBusName, dbus.ObjectPath(DBusPath)),
	}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Render asks the service to render a toast and returns its id.
func (c *Client) Render(ctx context.Context, t model.Type, message string) (string, error) {
	var id string
	call := c.obj.CallWithContext(ctx, DBusInterface+".Render", 0, t.String(), message)
	if err := call.Store(&id); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return id, nil
}

// DismissAll asks the service to dismiss every toast.
func (c *Client) DismissAll(ctx context.Context) error {
	if err := c.obj.CallWithContext(ctx, DBusInterface+".DismissAll", 0).Err; err != nil {
		return fmt.Errorf("dismiss all: %w", err)
	}
	return nil
}

// Status queries the service state.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var (
		visible   uint32
		position  string
		timeoutMs uint32
	)
	call := c.obj.CallWithContext(ctx, DBusInterface+".Status", 0)
	if err := call.Store(&visible, &position, &timeoutMs); err != nil {
		return Status{}, fmt.Errorf("status: %w", err)
	}

	p, err := model.ParsePosition(position)
	if err != nil {
		return Status{}, fmt.Errorf("status: %w", err)
	}
	return Status{
		Visible:  int(visible),
		Position: p,
		Timeout:  time.Duration(timeoutMs) * time.Millisecond,
	}, nil
}
