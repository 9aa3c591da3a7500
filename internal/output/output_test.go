package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toasty/internal/sim"
)

func expireResult(t *testing.T) *sim.Result {
	t.Helper()
	res, err := sim.Run(sim.Expire(), nil)
	require.NoError(t, err)
	return res
}

func hoverResult(t *testing.T) *sim.Result {
	t.Helper()
	res, err := sim.Run(sim.Hover(), nil)
	require.NoError(t, err)
	return res
}

func TestPlainFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewPlainFormatter(DefaultFormatterOptions())
	require.NoError(t, formatter.Format(&buf, expireResult(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	assert.True(t, strings.HasPrefix(lines[0], "+0.0s"))
	assert.Contains(t, lines[0], "1st success visible")
	assert.Contains(t, lines[0], `"Success toast notification"`)

	assert.True(t, strings.HasPrefix(lines[1], "+4.0s"))
	assert.Contains(t, lines[1], "dismissing (expired) elapsed=4000ms")

	assert.True(t, strings.HasPrefix(lines[2], "+4.3s"))
	assert.Contains(t, lines[2], "removed (expired)")

	assert.Equal(t, "expire: 1 toast, 3 events, 0 still shown", lines[3])
}

func TestPlainFormatter_Hover(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewPlainFormatter(DefaultFormatterOptions())
	require.NoError(t, formatter.Format(&buf, hoverResult(t)))

	output := buf.String()
	assert.Contains(t, output, "pointer entered")
	assert.Contains(t, output, "+10.0s  1st info    pointer left elapsed=0ms")
}

func TestPlainFormatter_HideHover(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.ShowHover = false
	opts.ShowSummary = false
	formatter := NewPlainFormatter(opts)
	require.NoError(t, formatter.Format(&buf, hoverResult(t)))

	output := buf.String()
	assert.NotContains(t, output, "pointer")
	assert.Len(t, strings.Split(strings.TrimSpace(output), "\n"), 3)
}

func TestPlainFormatter_ShowIDs(t *testing.T) {
	var buf bytes.Buffer
	res := expireResult(t)

	opts := DefaultFormatterOptions()
	opts.ShowIDs = true
	formatter := NewPlainFormatter(opts)
	require.NoError(t, formatter.Format(&buf, res))

	assert.Contains(t, buf.String(), res.IDs()[0])
	assert.NotContains(t, buf.String(), "1st")
}

func TestPlainFormatter_CustomTemplate(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.ShowSummary = false
	opts.Template = "{{ms .AtMs}} {{.Type}} {{.State}} {{truncate .Message 10}}"
	formatter := NewPlainFormatter(opts)
	require.NoError(t, formatter.Format(&buf, expireResult(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "+0.0s success visible Success...", lines[0])
	assert.Equal(t, "+4.3s success removed Success...", lines[2])
}

func TestPlainFormatter_InvalidTemplateFallsBack(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.Template = "{{.Broken"
	formatter := NewPlainFormatter(opts)
	require.NoError(t, formatter.Format(&buf, expireResult(t)))

	assert.Contains(t, buf.String(), "1st success visible")
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewJSONFormatter(DefaultFormatterOptions())
	require.NoError(t, formatter.Format(&buf, expireResult(t)))

	var report Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, "expire", report.Scenario)
	assert.Equal(t, 1, report.Toasts)
	require.Len(t, report.Events, 3)
	assert.Equal(t, int64(4300), report.Events[2].AtMs)
	assert.Equal(t, "removed", report.Events[2].State)
	assert.Equal(t, "expired", report.Events[2].Reason)
	assert.Equal(t, 1, report.Events[0].Index)
	assert.Empty(t, report.Events[0].Reason)
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewYAMLFormatter(DefaultFormatterOptions())
	require.NoError(t, formatter.Format(&buf, hoverResult(t)))

	assert.Contains(t, buf.String(), "scenario: hover")
	assert.Contains(t, buf.String(), "elapsed_ms: 0")

	var report Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &report))
	require.Len(t, report.Events, 5)
	assert.Equal(t, "hover", report.Events[1].Kind)
	assert.True(t, report.Events[1].Hovered)
	assert.Equal(t, int64(14000), report.Events[3].AtMs)
}

func TestNewFormatter(t *testing.T) {
	opts := DefaultFormatterOptions()
	assert.IsType(t, &PlainFormatter{}, NewFormatter(FormatPlain, opts))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON, opts))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML, opts))
	assert.IsType(t, &PlainFormatter{}, NewFormatter("other", opts))
}

func TestParseFormatType(t *testing.T) {
	f, err := ParseFormatType(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormatType("xml")
	assert.Error(t, err)
}
