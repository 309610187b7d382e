package tables

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/parsers/fields"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// xsdtEntrySize is the size of one 64-bit table pointer.
const xsdtEntrySize = 8

// XsdtParser decodes the extended system description table and dispatches every entry.
type XsdtParser struct{ tableIdentity }

var _ interfaces.TableParser = (*XsdtParser)(nil)

// NewXsdtParser creates the XSDT parser.
func NewXsdtParser() *XsdtParser {
	return &XsdtParser{tableIdentity{types.XsdtSignature, "Extended System Description Table"}}
}

// Parse implements interfaces.TableParser.
func (p *XsdtParser) Parse(ctx interfaces.ParseContext, trace bool, table []byte, revision uint8) {
	_, offset := fields.ParseStandardHeader(ctx, trace, table)
	if offset < types.SdtHeaderSize {
		return
	}

	body := table[offset:]
	count := len(body) / xsdtEntrySize

	if rem := len(body) % xsdtEntrySize; rem != 0 && validating(ctx, trace) {
		fields.ReportWarning(ctx, "XSDT: %d trailing bytes after the last entry", rem)
	}

	entries := make([]uint64, count)
	for i := range entries {
		entries[i] = binary.LittleEndian.Uint64(body[i*xsdtEntrySize:])
		if trace {
			fields.PrintField(ctx.Output(), 2, fmt.Sprintf("Entry[%d]", i), "0x%X", entries[i])
		}
	}

	for i, addr := range entries {
		if addr == 0 {
			if validating(ctx, trace) {
				fields.ReportError(ctx, "XSDT: entry %d is a null pointer", i)
			}
			continue
		}
		ctx.ProcessTableAt(addr)
	}
}
