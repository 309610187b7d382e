package tables

import (
	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/parsers/fields"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

const (
	mcfgEntriesOffset = 44
	mcfgEntrySize     = 16
)

// PCI Express Memory-mapped Configuration Space base address description table
var mcfgFields = withHeader(
	fields.Field{Name: "Reserved", Length: 8, Format: fields.FormatBytes, Validate: fields.ExpectZero()},
)

var mcfgEntryFields = []fields.Field{
	{Name: "Base Address", Length: 8, Format: fields.FormatHex},
	{Name: "PCI Segment Group No.", Length: 2, Format: fields.FormatHex},
	{Name: "Start Bus No.", Length: 1, Format: fields.FormatHex},
	{Name: "End Bus No.", Length: 1, Format: fields.FormatHex},
	{Name: "Reserved", Length: 4, Format: fields.FormatHex, Validate: fields.ExpectZero()},
}

// McfgParser decodes the MCFG configuration space allocations.
type McfgParser struct{ tableIdentity }

var _ interfaces.TableParser = (*McfgParser)(nil)

// NewMcfgParser creates the MCFG parser.
func NewMcfgParser() *McfgParser {
	return &McfgParser{tableIdentity{types.McfgSignature, "PCI Express Memory Mapped Configuration"}}
}

// Parse implements interfaces.TableParser.
func (p *McfgParser) Parse(ctx interfaces.ParseContext, trace bool, table []byte, revision uint8) {
	if !trace {
		return
	}

	_, offset := fields.Parse(ctx, trace, 2, "", table, 0, mcfgFields)
	if offset < mcfgEntriesOffset {
		return
	}

	body := table[offset:]
	if rem := len(body) % mcfgEntrySize; rem != 0 && validating(ctx, trace) {
		fields.ReportWarning(ctx, "MCFG: %d trailing bytes after the last allocation entry", rem)
	}

	for i := 0; (i+1)*mcfgEntrySize <= len(body); i++ {
		entry := body[i*mcfgEntrySize : (i+1)*mcfgEntrySize]
		values, _ := fields.Parse(ctx, trace, 2, structureTitle("Configuration Space", i), entry, 0, mcfgEntryFields)

		if !validating(ctx, trace) {
			continue
		}
		start, _ := values.Uint("Start Bus No.")
		end, _ := values.Uint("End Bus No.")
		if start > end {
			fields.ReportError(ctx, "MCFG: allocation %d start bus 0x%X is above end bus 0x%X", i, start, end)
		}
	}
}
