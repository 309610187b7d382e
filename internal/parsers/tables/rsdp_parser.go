package tables

import (
	"encoding/binary"

	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/parsers/fields"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// Root System Description Pointer (page 5.2.5.3)
var rsdpFields = []fields.Field{
	{Name: "Signature", Length: 8, Format: fields.FormatChars},
	{Name: "Checksum", Length: 1, Format: fields.FormatHex},
	{Name: "Oem ID", Length: 6, Format: fields.FormatChars},
	{Name: "Revision", Length: 1, Format: fields.FormatDecimal},
	{Name: "RSDT Address", Length: 4, Format: fields.FormatHex},
	{Name: "Length", Length: 4, Format: fields.FormatDecimal},
	{Name: "XSDT Address", Length: 8, Format: fields.FormatHex},
	{Name: "Extended Checksum", Length: 1, Format: fields.FormatHex},
	{Name: "Reserved", Length: 3, Format: fields.FormatBytes, Validate: fields.ExpectZero()},
}

// RsdpParser decodes the root pointer and dispatches the XSDT.
type RsdpParser struct{ tableIdentity }

var _ interfaces.TableParser = (*RsdpParser)(nil)

// NewRsdpParser creates the RSDP parser.
func NewRsdpParser() *RsdpParser {
	return &RsdpParser{tableIdentity{types.RsdpSignature, "Root System Description Pointer"}}
}

// Parse implements interfaces.TableParser.
func (p *RsdpParser) Parse(ctx interfaces.ParseContext, trace bool, table []byte, revision uint8) {
	values, _ := fields.Parse(ctx, trace, 2, "", table, 0, rsdpFields)

	if validating(ctx, trace) {
		if len(table) >= len(types.RsdpSignatureBytes) &&
			string(table[:len(types.RsdpSignatureBytes)]) != string(types.RsdpSignatureBytes[:]) {
			fields.ReportError(ctx, "RSDP: invalid signature %q", string(table[:len(types.RsdpSignatureBytes)]))
		}
		if len(table) >= types.RsdpV1Size {
			fields.VerifyChecksum(ctx, true, "Checksum", table[:types.RsdpV1Size])
		}
		if length, ok := values.Uint("Length"); ok && revision >= types.RsdpMinimumRevision {
			switch {
			case length < types.RsdpV2Size:
				fields.ReportError(ctx, "RSDP: length %d is smaller than %d", length, types.RsdpV2Size)
			case length > uint64(len(table)):
				fields.ReportError(ctx, "RSDP: length %d exceeds the %d bytes available", length, len(table))
			default:
				fields.VerifyChecksum(ctx, true, "Extended Checksum", table[:length])
			}
		}
	}

	if len(table) < types.RsdpXsdtAddressOffset+8 {
		fields.ReportError(ctx, "RSDP: too short (%d bytes) to hold an XSDT address", len(table))
		return
	}

	xsdt := binary.LittleEndian.Uint64(table[types.RsdpXsdtAddressOffset:])
	if xsdt == 0 {
		fields.ReportError(ctx, "RSDP: XSDT address is zero")
		return
	}

	ctx.ProcessTableAt(xsdt)
}
