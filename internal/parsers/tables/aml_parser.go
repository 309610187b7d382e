package tables

import (
	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/parsers/fields"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// AmlParser decodes the header of a definition block table (DSDT or SSDT). The AML byte
// code itself is not disassembled.
type AmlParser struct{ tableIdentity }

var _ interfaces.TableParser = (*AmlParser)(nil)

// NewDsdtParser creates the DSDT parser.
func NewDsdtParser() *AmlParser {
	return &AmlParser{tableIdentity{types.DsdtSignature, "Differentiated System Description Table"}}
}

// NewSsdtParser creates the SSDT parser.
func NewSsdtParser() *AmlParser {
	return &AmlParser{tableIdentity{types.SsdtSignature, "Secondary System Description Table"}}
}

// Parse implements interfaces.TableParser.
func (p *AmlParser) Parse(ctx interfaces.ParseContext, trace bool, table []byte, revision uint8) {
	if !trace {
		return
	}

	_, offset := fields.ParseStandardHeader(ctx, trace, table)
	if offset < types.SdtHeaderSize {
		return
	}

	fields.PrintField(ctx.Output(), 2, "Definition Block", "%d bytes of AML", len(table)-offset)
}
