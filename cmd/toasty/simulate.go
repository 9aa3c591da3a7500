package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/model"
	"github.com/jmylchreest/toasty/internal/output"
	"github.com/jmylchreest/toasty/internal/sim"
)

var simulateOpts struct {
	file     string
	format   string
	template string
	position string
	timeout  time.Duration
	ids      bool
	noHover  bool
	list     bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [scenario]",
	Short: "Replay a scripted session on a virtual clock",
	Long: `Replay a scripted session against the widget on a virtual clock and
print every transition the toasts go through.

Built-in scenarios:
  expire    One success toast that runs out after the timeout
  hover     One info toast held under the pointer for ten seconds
  dismiss   Four toasts at bottom-center, the oldest dismissed early

Custom scenarios are YAML files:

  name: burst
  position: top-left
  timeout: 2s
  horizon: 5s
  steps:
    - {at: 0s, action: press, type: success}
    - {at: 500ms, action: hover, target: 0}
    - {at: 1s, action: dismiss, target: 0}

Output formats: plain, json, yaml

Template fields (plain): {{.Index}} {{.AtMs}} {{.Kind}} {{.ID}} {{.Type}}
{{.Message}} {{.State}} {{.Reason}} {{.Hovered}} {{.ElapsedMs}}`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVarP(&simulateOpts.file, "file", "f", "",
		"Load the scenario from a YAML file")
	simulateCmd.Flags().StringVar(&simulateOpts.format, "format", "plain",
		"Output format: plain, json, yaml")
	simulateCmd.Flags().StringVar(&simulateOpts.template, "template", "",
		"Go template for each event (plain format)")
	simulateCmd.Flags().StringVar(&simulateOpts.position, "position", "",
		"Override the scenario position")
	simulateCmd.Flags().DurationVar(&simulateOpts.timeout, "timeout", 0,
		"Override the scenario timeout")
	simulateCmd.Flags().BoolVar(&simulateOpts.ids, "ids", false,
		"Show toast ids instead of render ordinals")
	simulateCmd.Flags().BoolVar(&simulateOpts.noHover, "no-hover", false,
		"Hide pointer enter/leave events")
	simulateCmd.Flags().BoolVar(&simulateOpts.list, "list", false,
		"List built-in scenarios and exit")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if simulateOpts.list {
		for _, name := range sim.BuiltinNames() {
			_, _ = fmt.Fprintln(os.Stdout, name)
		}
		return nil
	}

	scenario, err := loadScenario(args)
	if err != nil {
		return err
	}

	if simulateOpts.position != "" {
		p, err := model.ParsePosition(simulateOpts.position)
		if err != nil {
			return fmt.Errorf("invalid --position: %w", err)
		}
		scenario.Position = p
	}
	if simulateOpts.timeout != 0 {
		scenario.Timeout = config.Duration(simulateOpts.timeout)
	}

	format, err := output.ParseFormatType(simulateOpts.format)
	if err != nil {
		return err
	}

	res, err := sim.Run(scenario, logger)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = simulateOpts.template
	opts.ShowIDs = simulateOpts.ids
	opts.ShowHover = !simulateOpts.noHover

	return output.NewFormatter(format, opts).Format(os.Stdout, res)
}

func loadScenario(args []string) (*sim.Scenario, error) {
	if simulateOpts.file != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("cannot use both --file and a built-in scenario name")
		}
		return sim.LoadScenario(simulateOpts.file)
	}

	name := "expire"
	if len(args) > 0 {
		name = args[0]
	}
	s, ok := sim.Builtin(name)
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q, must be one of: %s",
			name, strings.Join(sim.BuiltinNames(), ", "))
	}
	return s, nil
}
