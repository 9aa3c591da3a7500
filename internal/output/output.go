// Package output provides output formatters for simulation results.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/jmylchreest/toasty/internal/sim"
)

// Formatter formats simulation results for output.
type Formatter interface {
	// Format writes the formatted result to the writer.
	Format(w io.Writer, res *sim.Result) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// FormatTypes lists the supported formats.
func FormatTypes() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML}
}

// ParseFormatType parses a format name.
func ParseFormatType(s string) (FormatType, error) {
	f := FormatType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range FormatTypes() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q, must be one of: %v", s, FormatTypes())
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template    string // Custom per-event template for plain format
	ShowIDs     bool   // Show toast ids instead of render ordinals
	ShowHover   bool   // Include hover transitions
	ShowSummary bool   // Append a summary line (plain only)
}

// DefaultFormatterOptions returns sensible defaults for terminal output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowHover:   true,
		ShowSummary: true,
	}
}

// Record is the serialised form of a sim.Event with durations in
// milliseconds.
type Record struct {
	Index     int    `json:"index" yaml:"index"`
	AtMs      int64  `json:"at_ms" yaml:"at_ms"`
	Kind      string `json:"kind" yaml:"kind"`
	ID        string `json:"id" yaml:"id"`
	Type      string `json:"type" yaml:"type"`
	Message   string `json:"message" yaml:"message"`
	State     string `json:"state" yaml:"state"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Hovered   bool   `json:"hovered" yaml:"hovered"`
	ElapsedMs int64  `json:"elapsed_ms" yaml:"elapsed_ms"`
}

// Report is the serialised form of a sim.Result.
type Report struct {
	Scenario  string   `json:"scenario" yaml:"scenario"`
	Toasts    int      `json:"toasts" yaml:"toasts"`
	Remaining int      `json:"remaining" yaml:"remaining"`
	Pending   int      `json:"pending_timers" yaml:"pending_timers"`
	Events    []Record `json:"events" yaml:"events"`
}

// NewReport converts a result, numbering toasts by render order.
func NewReport(res *sim.Result, opts FormatterOptions) Report {
	index := make(map[string]int)
	for i, id := range res.IDs() {
		index[id] = i + 1
	}

	r := Report{
		Scenario:  res.Scenario,
		Toasts:    len(index),
		Remaining: res.Remaining,
		Pending:   res.Pending,
		Events:    make([]Record, 0, len(res.Events)),
	}
	for _, ev := range res.Events {
		if ev.Kind == "hover" && !opts.ShowHover {
			continue
		}
		r.Events = append(r.Events, Record{
			Index:     index[ev.ID],
			AtMs:      ev.At.Milliseconds(),
			Kind:      ev.Kind,
			ID:        ev.ID,
			Type:      ev.Type.String(),
			Message:   ev.Message,
			State:     ev.State.String(),
			Reason:    ev.Reason.String(),
			Hovered:   ev.Hovered,
			ElapsedMs: ev.Elapsed.Milliseconds(),
		})
	}
	return r
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": func(s string, maxLen int) string {
			if maxLen <= 0 || len(s) <= maxLen {
				return s
			}
			if maxLen <= 3 {
				return s[:maxLen]
			}
			return s[:maxLen-3] + "..."
		},
		"ms": func(ms int64) string {
			return offset(time.Duration(ms) * time.Millisecond)
		},
	}
}

// offset renders a scenario offset such as "+4.3s".
func offset(d time.Duration) string {
	return fmt.Sprintf("+%.1fs", d.Seconds())
}
