package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/toasty/internal/dbus"
)

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text    string `json:"text"`
	Alt     string `json:"alt,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Output Waybar-compatible JSON status",
	Long: `Output the state of a running toasty in Waybar's custom module JSON
format.

  "custom/toasty": {
    "exec": "toasty status",
    "interval": 2,
    "return-type": "json",
    "on-click": "toasty send --dismiss-all"
  }

The output includes:
  - text: Number of toasts on screen
  - alt/class: empty, normal, or offline when toasty is not running
  - tooltip: Stack position and timeout`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := dbus.Dial()
	if err != nil {
		logger.Debug("session bus unavailable", "error", err)
		return outputStatus(WaybarStatus{Alt: "offline", Class: "offline"})
	}
	defer func() { _ = client.Close() }()

	st, err := client.Status(ctx)
	if err != nil {
		logger.Debug("status call failed", "error", err)
		return outputStatus(WaybarStatus{Alt: "offline", Class: "offline"})
	}

	return outputStatus(generateStatus(st))
}

// generateStatus creates a WaybarStatus from the service state.
func generateStatus(st dbus.Status) WaybarStatus {
	tooltip := fmt.Sprintf("%s on screen\nPosition: %s\nTimeout: %s",
		english.Plural(st.Visible, "toast", ""), st.Position, st.Timeout)

	if st.Visible == 0 {
		return WaybarStatus{
			Text:    "",
			Alt:     "empty",
			Tooltip: tooltip,
			Class:   "empty",
		}
	}

	return WaybarStatus{
		Text:    fmt.Sprintf("%d", st.Visible),
		Alt:     "normal",
		Tooltip: tooltip,
		Class:   "normal",
	}
}

// outputStatus writes the status as JSON to stdout.
func outputStatus(status WaybarStatus) error {
	encoder := json.NewEncoder(os.Stdout)
	return encoder.Encode(status)
}
