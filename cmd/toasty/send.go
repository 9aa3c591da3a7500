package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toasty/internal/dbus"
	"github.com/jmylchreest/toasty/internal/model"
)

var sendOpts struct {
	dismissAll bool
}

var sendCmd = &cobra.Command{
	Use:   "send <type> <message...>",
	Short: "Render a toast in a running toasty",
	Long: `Render a toast in a running toasty instance over the session bus.

The type must be one of success, info, warning or error. The id of the new
toast is printed on success.

Examples:
  toasty send success "Build finished"
  toasty send error Deploy failed on host-3
  toasty send --dismiss-all`,
	Args: func(cmd *cobra.Command, args []string) error {
		if sendOpts.dismissAll {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.MinimumNArgs(2)(cmd, args)
	},
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().BoolVar(&sendOpts.dismissAll, "dismiss-all", false,
		"Dismiss every toast instead of rendering one")
}

func runSend(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var t model.Type
	if !sendOpts.dismissAll {
		var err error
		t, err = model.ParseType(args[0])
		if err != nil {
			return fmt.Errorf("invalid type: %w", err)
		}
	}

	client, err := dbus.Dial()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if sendOpts.dismissAll {
		return client.DismissAll(ctx)
	}

	id, err := client.Render(ctx, t, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(os.Stdout, id)
	return nil
}
