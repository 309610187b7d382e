package tables

import (
	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/parsers/fields"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

const (
	dbg2InfoOffset = "Offset DbgDevInfo"
	dbg2InfoCount  = "Number DbgDevInfo"

	dbg2FixedSize = 44
)

// Debug Port Table 2
var dbg2Fields = withHeader(
	fields.Field{Name: dbg2InfoOffset, Length: 4, Format: fields.FormatDecimal},
	fields.Field{Name: dbg2InfoCount, Length: 4, Format: fields.FormatDecimal},
)

// The length of a device information structure is the 16-bit field after its revision byte.
var dbg2DeviceInfoFields = []fields.Field{
	{Name: "Revision", Length: 1, Format: fields.FormatHex},
	{Name: "Length", Length: 2, Format: fields.FormatDecimal},
	{Name: "Generic Address Registers Count", Length: 1, Format: fields.FormatDecimal},
	{Name: "NameSpace String Length", Length: 2, Format: fields.FormatDecimal},
	{Name: "NameSpace String Offset", Length: 2, Format: fields.FormatDecimal},
	{Name: "OEM Data Length", Length: 2, Format: fields.FormatDecimal},
	{Name: "OEM Data Offset", Length: 2, Format: fields.FormatDecimal},
	{Name: "Port Type", Length: 2, Format: fields.FormatHex},
	{Name: "Port SubType", Length: 2, Format: fields.FormatHex},
	{Name: "Reserved", Length: 2, Format: fields.FormatHex, Validate: fields.ExpectZero()},
	{Name: "Base Address Register Offset", Length: 2, Format: fields.FormatDecimal},
	{Name: "Address Size Offset", Length: 2, Format: fields.FormatDecimal},
}

// Dbg2Parser decodes the debug port table and its device information array.
type Dbg2Parser struct{ tableIdentity }

var _ interfaces.TableParser = (*Dbg2Parser)(nil)

// NewDbg2Parser creates the DBG2 parser.
func NewDbg2Parser() *Dbg2Parser {
	return &Dbg2Parser{tableIdentity{types.Dbg2Signature, "Debug Port Table 2"}}
}

// Parse implements interfaces.TableParser.
func (p *Dbg2Parser) Parse(ctx interfaces.ParseContext, trace bool, table []byte, revision uint8) {
	if !trace {
		return
	}

	values, _ := fields.Parse(ctx, trace, 2, "", table, 0, dbg2Fields)

	count, ok := values.Uint(dbg2InfoCount)
	if !ok || count == 0 {
		return
	}
	offset, ok := values.Uint(dbg2InfoOffset)
	if !ok || !checkArrayBounds(ctx, "DBG2 "+dbg2InfoOffset, table, offset, count, dbg2FixedSize) {
		return
	}

	// Device information structures carry their revision before the length, so the type
	// slot of the walker holds the revision here.
	index := 0
	walkStructures(ctx, table, int(offset), 2, int(count), "DBG2", func(s subStructure) {
		fields.Parse(ctx, trace, 2, structureTitle("Debug Device Info", index), s.Data, 0, dbg2DeviceInfoFields)
		index++
	})
}
