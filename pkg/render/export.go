package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bastiangx/passcloud/pkg/analysis"
	"gopkg.in/yaml.v3"
)

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as YAML.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Write renders r in the named format: text, markdown, json or yaml.
func Write(w io.Writer, format string, r *analysis.Report, t Theme) error {
	switch format {
	case "", "text":
		Text(w, r, t)
		return nil
	case "markdown":
		return Markdown(w, MarkdownReport(r), t.Dark, t.Width)
	case "json":
		return JSON(w, r)
	case "yaml":
		return YAML(w, r)
	}
	return fmt.Errorf("unknown output format %q", format)
}
