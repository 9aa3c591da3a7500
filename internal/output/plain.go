package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/jmylchreest/toasty/internal/sim"
)

// PlainFormatter formats results as plain text, one event per line.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes the result as plain text.
func (f *PlainFormatter) Format(w io.Writer, res *sim.Result) error {
	report := NewReport(res, f.opts)
	for i := range report.Events {
		if err := f.formatRecord(w, &report.Events[i]); err != nil {
			return err
		}
	}
	if f.opts.ShowSummary {
		return f.formatSummary(w, &report)
	}
	return nil
}

func (f *PlainFormatter) formatRecord(w io.Writer, r *Record) error {
	if f.template != nil {
		if err := f.template.Execute(w, r); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-7s ", offset(time.Duration(r.AtMs)*time.Millisecond)))

	if f.opts.ShowIDs {
		sb.WriteString(r.ID)
	} else {
		sb.WriteString(humanize.Ordinal(r.Index))
	}
	sb.WriteString(fmt.Sprintf(" %-7s ", r.Type))

	switch r.Kind {
	case "hover":
		if r.Hovered {
			sb.WriteString("pointer entered")
		} else {
			sb.WriteString("pointer left")
		}
	default:
		sb.WriteString(r.State)
		if r.Reason != "" {
			sb.WriteString(" (" + r.Reason + ")")
		}
	}

	sb.WriteString(fmt.Sprintf(" elapsed=%dms", r.ElapsedMs))
	if r.State == "visible" && r.Kind == "state" {
		sb.WriteString(fmt.Sprintf(" %q", r.Message))
	}
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func (f *PlainFormatter) formatSummary(w io.Writer, r *Report) error {
	name := r.Scenario
	if name == "" {
		name = "scenario"
	}
	_, err := fmt.Fprintf(w, "%s: %s, %s, %s still shown\n",
		name,
		english.Plural(r.Toasts, "toast", ""),
		english.Plural(len(r.Events), "event", ""),
		humanize.Comma(int64(r.Remaining)),
	)
	return err
}
