package tables

import (
	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/parsers/fields"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// IA-PC High Precision Event Timer table
var hpetFields = withHeader(
	fields.Field{Name: "Event Timer Block ID", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "Base Address", Length: types.GasSize, Format: fields.FormatGAS},
	fields.Field{Name: "HPET Number", Length: 1, Format: fields.FormatDecimal},
	fields.Field{Name: "Main Counter Minimum Clock Tick In Periodic Mode", Length: 2, Format: fields.FormatHex},
	fields.Field{Name: "Page Protection And OEM Attribute", Length: 1, Format: fields.FormatHex},
)

// HpetParser decodes the HPET description table.
type HpetParser struct{ tableIdentity }

var _ interfaces.TableParser = (*HpetParser)(nil)

// NewHpetParser creates the HPET parser.
func NewHpetParser() *HpetParser {
	return &HpetParser{tableIdentity{types.HpetSignature, "High Precision Event Timer Table"}}
}

// Parse implements interfaces.TableParser.
func (p *HpetParser) Parse(ctx interfaces.ParseContext, trace bool, table []byte, revision uint8) {
	if !trace {
		return
	}
	fields.Parse(ctx, trace, 2, "", table, 0, hpetFields)
}
