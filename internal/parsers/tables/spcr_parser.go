package tables

import (
	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/parsers/fields"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// Baud rate encodings accepted by the SPCR. Zero means "as is" from firmware.
const (
	spcrBaudAsIs   = 0
	spcrBaud9600   = 3
	spcrBaud19200  = 4
	spcrBaud57600  = 6
	spcrBaud115200 = 7
)

// Serial Port Console Redirection table, revision 2
var spcrFields = withHeader(
	fields.Field{Name: "Interface Type", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "Reserved", Length: 3, Format: fields.FormatBytes, Validate: fields.ExpectZero()},
	fields.Field{Name: "Base Address", Length: types.GasSize, Format: fields.FormatGAS},
	fields.Field{Name: "Interrupt Type", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "IRQ", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "Global System Interrupt", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "Baud Rate", Length: 1, Format: fields.FormatDecimal,
		Validate: fields.ExpectOneOf(spcrBaudAsIs, spcrBaud9600, spcrBaud19200, spcrBaud57600, spcrBaud115200)},
	fields.Field{Name: "Parity", Length: 1, Format: fields.FormatDecimal, Validate: fields.ExpectUint(0)},
	fields.Field{Name: "Stop Bits", Length: 1, Format: fields.FormatDecimal, Validate: fields.ExpectUint(1)},
	fields.Field{Name: "Flow Control", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "Terminal Type", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "Language", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "PCI Device ID", Length: 2, Format: fields.FormatHex},
	fields.Field{Name: "PCI Vendor ID", Length: 2, Format: fields.FormatHex},
	fields.Field{Name: "PCI Bus Number", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "PCI Device Number", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "PCI Function Number", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "PCI Flags", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "PCI Segment", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "Reserved1", Length: 4, Format: fields.FormatHex},
)

// SpcrParser decodes the serial console redirection table.
type SpcrParser struct{ tableIdentity }

var _ interfaces.TableParser = (*SpcrParser)(nil)

// NewSpcrParser creates the SPCR parser.
func NewSpcrParser() *SpcrParser {
	return &SpcrParser{tableIdentity{types.SpcrSignature, "Serial Port Console Redirection Table"}}
}

// Parse implements interfaces.TableParser.
func (p *SpcrParser) Parse(ctx interfaces.ParseContext, trace bool, table []byte, revision uint8) {
	if !trace {
		return
	}
	fields.Parse(ctx, trace, 2, "", table, 0, spcrFields)
}
