package view

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FormatOutput writes the response in the given format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "text", "":
		return formatText(w, response)
	case "json":
		return formatJSON(w, response)
	case "yaml":
		return formatYAML(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatText writes a captured report. A streamed report has already been written.
func formatText(w io.Writer, response *Response) error {
	if response.Report == "" {
		return nil
	}
	_, err := io.WriteString(w, response.Report)
	return err
}

// formatJSON formats results as JSON
func formatJSON(w io.Writer, response *Response) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// formatYAML formats results as YAML
func formatYAML(w io.Writer, response *Response) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(response)
}

// FormatSummary provides a brief summary for verbose output
func FormatSummary(response *Response) string {
	r := response.Result

	summary := fmt.Sprintf("Visited %d table", len(r.Tables))
	if len(r.Tables) != 1 {
		summary += "s"
	}
	summary += fmt.Sprintf(" with %d error(s) and %d warning(s)", r.Errors, r.Warnings)

	if len(r.MissingParsers) > 0 {
		summary += fmt.Sprintf(", %d without a parser", len(r.MissingParsers))
	}
	if len(r.DumpedFiles) > 0 {
		summary += fmt.Sprintf(", dumped %d file(s)", len(r.DumpedFiles))
	}
	if r.DurationText != "" {
		summary += " in " + r.DurationText
	}

	return summary
}
