package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/tui"
)

var tuiOpts struct {
	noWatch bool
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive toast playground",
	Long: `Launch the terminal front end.

Four trigger buttons render a toast of their type. Toasts stack at the
configured anchor, count down, pause while the mouse is over them, and
can be dismissed with their ✕ button.

Key bindings:
  1-4         Render success, info, warning, error
  x/d         Dismiss the newest toast
  X/D         Dismiss all toasts
  p           Move the stack to the next anchor
  ?           Toggle help
  q           Quit

Logs go to ~/.local/state/toasty/toasty.log while the TUI is running.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().BoolVar(&tuiOpts.noWatch, "no-watch", false,
		"Do not reload the config file when it changes")
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The alt screen owns the terminal, so log to a file instead of stderr.
	if err := config.EnsureStateDir(); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	logFile, err := os.OpenFile(config.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()
	setupLogger(logFile)

	return tui.Run(tui.RunOptions{
		Config:     getConfig(),
		ConfigPath: configPath(),
		Watch:      !tuiOpts.noWatch,
		Logger:     logger,
	})
}
