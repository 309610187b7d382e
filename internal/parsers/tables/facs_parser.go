package tables

import (
	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/parsers/fields"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// facsMinimumLength is the size of the ACPI 4.0 and later FACS.
const facsMinimumLength = 64

// Firmware ACPI Control Structure (page 5.2.10)
// The FACS has no standard header and no checksum.
var facsFields = []fields.Field{
	{Name: "Signature", Length: 4, Format: fields.FormatChars},
	{Name: "Length", Length: 4, Format: fields.FormatDecimal},
	{Name: "Hardware Signature", Length: 4, Format: fields.FormatHex},
	{Name: "Firmware Waking Vector", Length: 4, Format: fields.FormatHex},
	{Name: "Global Lock", Length: 4, Format: fields.FormatHex},
	{Name: "Flags", Length: 4, Format: fields.FormatHex},
	{Name: "X Firmware Waking Vector", Length: 8, Format: fields.FormatHex},
	{Name: "Version", Length: 1, Format: fields.FormatDecimal},
	{Name: "Reserved", Length: 3, Format: fields.FormatBytes, Validate: fields.ExpectZero()},
	{Name: "OSPM Flags", Length: 4, Format: fields.FormatHex},
	{Name: "Reserved1", Length: 24, Format: fields.FormatHidden},
}

// FacsParser decodes the firmware ACPI control structure.
type FacsParser struct{ tableIdentity }

var _ interfaces.TableParser = (*FacsParser)(nil)

// NewFacsParser creates the FACS parser.
func NewFacsParser() *FacsParser {
	return &FacsParser{tableIdentity{types.FacsSignature, "Firmware ACPI Control Structure"}}
}

// Parse implements interfaces.TableParser.
func (p *FacsParser) Parse(ctx interfaces.ParseContext, trace bool, table []byte, revision uint8) {
	if !trace {
		return
	}

	fields.Parse(ctx, trace, 2, "", table, 0, facsFields)

	if validating(ctx, trace) && len(table) < facsMinimumLength {
		fields.ReportError(ctx, "FACS: length %d is smaller than %d", len(table), facsMinimumLength)
	}
}
