package tables

import (
	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/parsers/fields"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// Boot Graphics Resource Table (page 5.2.22)
var bgrtFields = withHeader(
	fields.Field{Name: "Version", Length: 2, Format: fields.FormatDecimal, Validate: fields.ExpectUint(1)},
	fields.Field{Name: "Status", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "Image Type", Length: 1, Format: fields.FormatHex, Validate: fields.ExpectUint(0)},
	fields.Field{Name: "Image Address", Length: 8, Format: fields.FormatHex},
	fields.Field{Name: "Image Offset X", Length: 4, Format: fields.FormatDecimal},
	fields.Field{Name: "Image Offset Y", Length: 4, Format: fields.FormatDecimal},
)

// BgrtParser decodes the boot graphics resource table.
type BgrtParser struct{ tableIdentity }

var _ interfaces.TableParser = (*BgrtParser)(nil)

// NewBgrtParser creates the BGRT parser.
func NewBgrtParser() *BgrtParser {
	return &BgrtParser{tableIdentity{types.BgrtSignature, "Boot Graphics Resource Table"}}
}

// Parse implements interfaces.TableParser.
func (p *BgrtParser) Parse(ctx interfaces.ParseContext, trace bool, table []byte, revision uint8) {
	if !trace {
		return
	}
	fields.Parse(ctx, trace, 2, "", table, 0, bgrtFields)
}
