package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toasty/internal/sim"
)

// YAMLFormatter formats results as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes the result as a YAML document.
func (f *YAMLFormatter) Format(w io.Writer, res *sim.Result) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(NewReport(res, f.opts)); err != nil {
		return err
	}
	return encoder.Close()
}
