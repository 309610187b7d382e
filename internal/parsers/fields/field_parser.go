// Package fields implements the table-driven field decoder shared by every ACPI table parser.
package fields

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// Format selects how a field value is rendered in a trace.
type Format int

const (
	// FormatHex renders 1, 2, 4 or 8 byte little-endian integers in hexadecimal.
	FormatHex Format = iota

	// FormatDecimal renders 1, 2, 4 or 8 byte little-endian integers in decimal.
	FormatDecimal

	// FormatChars renders the field as ASCII text.
	FormatChars

	// FormatBytes renders the field as space separated hexadecimal bytes.
	FormatBytes

	// FormatGAS renders a 12-byte Generic Address Structure.
	FormatGAS

	// FormatHidden decodes the field without printing it.
	FormatHidden
)

// Validator checks one decoded field. It is only called for traced tables when
// consistency checking is enabled.
type Validator func(ctx interfaces.ParseContext, field string, value []byte)

// Field describes one fixed-size field of a table structure.
type Field struct {
	Name     string
	Length   int
	Format   Format
	Validate Validator
}

// Values holds the raw bytes of every field decoded by Parse.
type Values struct {
	raw map[string][]byte
}

// Has reports whether the named field was decoded.
func (v Values) Has(name string) bool {
	_, ok := v.raw[name]
	return ok
}

// Bytes returns the raw bytes of the named field.
func (v Values) Bytes(name string) ([]byte, bool) {
	b, ok := v.raw[name]
	return b, ok
}

// Uint returns the named field as an unsigned little-endian integer.
// Fields longer than 8 bytes are not integers and report false.
func (v Values) Uint(name string) (uint64, bool) {
	b, ok := v.raw[name]
	if !ok {
		return 0, false
	}
	return toUint(b)
}

func toUint(b []byte) (uint64, bool) {
	switch len(b) {
	case 1:
		return uint64(b[0]), true
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), true
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), true
	case 8:
		return binary.LittleEndian.Uint64(b), true
	default:
		return 0, false
	}
}

// Parse decodes fields from table starting at offset. When trace is set each field is
// printed at indent under title. It returns the decoded values and the offset following
// the last decoded field.
//
// A field that starts inside table but extends past its end stops decoding and, for a
// traced table, is reported once as a warning. Fields that start at or beyond the end are skipped silently
// because older table revisions are legitimately shorter.
func Parse(ctx interfaces.ParseContext, trace bool, indent int, title string, table []byte, offset int, fields []Field) (Values, int) {
	values := Values{raw: make(map[string][]byte, len(fields))}
	w := ctx.Output()

	if trace && title != "" {
		PrintTitle(w, indent, title)
		indent += 2
	}

	for _, f := range fields {
		if offset >= len(table) {
			break
		}
		if offset+f.Length > len(table) {
			if trace {
				ReportWarning(ctx, "%s: field %q is truncated (needs %d bytes at offset %d, %d available)",
					titleOrTable(title), f.Name, f.Length, offset, len(table)-offset)
			}
			break
		}

		raw := table[offset : offset+f.Length]
		values.raw[f.Name] = raw

		if trace {
			printValue(w, indent, f, raw)
			if ctx.ConsistencyChecking() && f.Validate != nil {
				f.Validate(ctx, f.Name, raw)
			}
		}

		offset += f.Length
	}

	return values, offset
}

func titleOrTable(title string) string {
	if title == "" {
		return "table"
	}
	return title
}

func printValue(w io.Writer, indent int, f Field, raw []byte) {
	switch f.Format {
	case FormatHidden:
		return
	case FormatGAS:
		PrintGAS(w, indent, f.Name, raw)
		return
	}

	var value string
	switch f.Format {
	case FormatDecimal:
		if v, ok := toUint(raw); ok {
			value = fmt.Sprintf("%d", v)
		} else {
			value = formatBytes(raw)
		}
	case FormatChars:
		value = formatChars(raw)
	case FormatBytes:
		value = formatBytes(raw)
	default:
		if v, ok := toUint(raw); ok {
			value = fmt.Sprintf("0x%X", v)
		} else {
			value = formatBytes(raw)
		}
	}

	PrintField(w, indent, f.Name, "%s", value)
}

func formatChars(raw []byte) string {
	var b strings.Builder
	for _, c := range raw {
		if c >= 0x20 && c < 0x7F {
			b.WriteByte(c)
		} else if c != 0 {
			b.WriteByte('.')
		}
	}
	return b.String()
}

func formatBytes(raw []byte) string {
	parts := make([]string, len(raw))
	for i, c := range raw {
		parts[i] = fmt.Sprintf("%02X", c)
	}
	return strings.Join(parts, " ")
}

// GASFields describes the Generic Address Structure.
// Reference: ACPI 6.3, table 5-25
var GASFields = []Field{
	{Name: "Address Space ID", Length: 1, Format: FormatHex},
	{Name: "Register Bit Width", Length: 1, Format: FormatHex},
	{Name: "Register Bit Offset", Length: 1, Format: FormatHex},
	{Name: "Access Size", Length: 1, Format: FormatHex},
	{Name: "Address", Length: 8, Format: FormatHex},
}

// PrintGAS prints a Generic Address Structure as a nested block.
func PrintGAS(w io.Writer, indent int, name string, raw []byte) {
	if len(raw) < types.GasSize {
		PrintField(w, indent, name, "%s", formatBytes(raw))
		return
	}

	PrintTitle(w, indent, name)
	off := 0
	for _, f := range GASFields {
		v, _ := toUint(raw[off : off+f.Length])
		PrintField(w, indent+2, f.Name, "0x%X", v)
		off += f.Length
	}
}
