package fields

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
)

// OutputFieldColumnWidth is the width of the field name column in table traces.
const OutputFieldColumnWidth = 36

// ANSI colour attributes used by the trace output.
const (
	ColourReset     = "\033[0m"
	ColourRed       = "\033[31m"
	ColourYellow    = "\033[33m"
	ColourCyan      = "\033[36m"
	ColourLightBlue = "\033[94m"
)

// Colourize wraps text in an ANSI colour when enabled is set.
func Colourize(enabled bool, colour, text string) string {
	if !enabled {
		return text
	}
	return colour + text + ColourReset
}

// PrintFieldName prints an indented field name padded to the value column.
func PrintFieldName(w io.Writer, indent int, name string) {
	width := OutputFieldColumnWidth - indent
	if width < 0 {
		width = 0
	}
	fmt.Fprintf(w, "%*s%-*s : ", indent, "", width, name)
}

// PrintField prints one name/value line.
func PrintField(w io.Writer, indent int, name string, format string, args ...any) {
	PrintFieldName(w, indent, name)
	fmt.Fprintf(w, format, args...)
	fmt.Fprintln(w)
}

// PrintTitle prints a structure title with no value, used before nested fields.
func PrintTitle(w io.Writer, indent int, title string) {
	PrintFieldName(w, indent, title)
	fmt.Fprintln(w)
}

// ReportError counts one error and prints it to the trace output.
func ReportError(ctx interfaces.ParseContext, format string, args ...any) {
	ctx.IncrementErrorCount()
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(ctx.Output(), "\n%s\n", Colourize(ctx.ColourHighlighting(), ColourRed, "ERROR: "+msg))
}

// ReportWarning counts one warning and prints it to the trace output.
func ReportWarning(ctx interfaces.ParseContext, format string, args ...any) {
	ctx.IncrementWarningCount()
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(ctx.Output(), "\n%s\n", Colourize(ctx.ColourHighlighting(), ColourYellow, "WARNING: "+msg))
}

// DumpRaw prints a hexadecimal dump of data.
func DumpRaw(w io.Writer, data []byte) {
	fmt.Fprintf(w, "Raw Table Data (%d bytes):\n", len(data))
	fmt.Fprint(w, hex.Dump(data))
}
