package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/toasty/internal/sim"
)

// JSONFormatter formats results as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes the result as a JSON object.
func (f *JSONFormatter) Format(w io.Writer, res *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewReport(res, f.opts))
}
