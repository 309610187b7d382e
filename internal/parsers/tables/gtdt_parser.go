package tables

import (
	"fmt"

	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/parsers/fields"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

const (
	gtdtPlatformTimerCount  = "Platform Timer Count"
	gtdtPlatformTimerOffset = "Platform Timer Offset"

	// gtdtFixedSize is the size of the revision 2 GTDT before the platform timers.
	gtdtFixedSize = 96
)

// Platform timer structure types.
const (
	GtdtGtBlock      uint8 = 0
	GtdtSbsaWatchdog uint8 = 1
)

// Generic Timer Description Table (page 5.2.24)
var gtdtFields = withHeader(
	fields.Field{Name: "CntControlBase Physical Address", Length: 8, Format: fields.FormatHex},
	fields.Field{Name: "Reserved", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "Secure EL1 timer GSIV", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "Secure EL1 timer FLAGS", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "Non-Secure EL1 timer GSIV", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "Non-Secure EL1 timer FLAGS", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "Virtual timer GSIV", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "Virtual timer FLAGS", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "Non-Secure EL2 timer GSIV", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "Non-Secure EL2 timer FLAGS", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "CntReadBase Physical address", Length: 8, Format: fields.FormatHex},
	fields.Field{Name: gtdtPlatformTimerCount, Length: 4, Format: fields.FormatDecimal},
	fields.Field{Name: gtdtPlatformTimerOffset, Length: 4, Format: fields.FormatDecimal},
)

var gtdtTimerHeaderFields = []fields.Field{
	{Name: "Type", Length: 1, Format: fields.FormatHex},
	{Name: "Length", Length: 2, Format: fields.FormatDecimal},
}

var gtdtGtBlockFields = concat(gtdtTimerHeaderFields,
	fields.Field{Name: "Reserved", Length: 1, Format: fields.FormatHex, Validate: fields.ExpectZero()},
	fields.Field{Name: "Physical address (CntCtlBase)", Length: 8, Format: fields.FormatHex},
	fields.Field{Name: "Timer Count", Length: 4, Format: fields.FormatDecimal},
	fields.Field{Name: "Timer Offset", Length: 4, Format: fields.FormatDecimal},
)

var gtdtWatchdogFields = concat(gtdtTimerHeaderFields,
	fields.Field{Name: "Reserved", Length: 1, Format: fields.FormatHex, Validate: fields.ExpectZero()},
	fields.Field{Name: "RefreshFrame Physical Address", Length: 8, Format: fields.FormatHex},
	fields.Field{Name: "ControlFrame Physical Address", Length: 8, Format: fields.FormatHex},
	fields.Field{Name: "Watchdog Timer GSIV", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "Watchdog Timer Flags", Length: 4, Format: fields.FormatHex},
)

// GtdtParser decodes the GTDT and its platform timer array.
type GtdtParser struct{ tableIdentity }

var _ interfaces.TableParser = (*GtdtParser)(nil)

// NewGtdtParser creates the GTDT parser.
func NewGtdtParser() *GtdtParser {
	return &GtdtParser{tableIdentity{types.GtdtSignature, "Generic Timer Description Table"}}
}

// Parse implements interfaces.TableParser.
func (p *GtdtParser) Parse(ctx interfaces.ParseContext, trace bool, table []byte, revision uint8) {
	if !trace {
		return
	}

	values, _ := fields.Parse(ctx, trace, 2, "", table, 0, gtdtFields)

	count, ok := values.Uint(gtdtPlatformTimerCount)
	if !ok || count == 0 {
		return
	}
	offset, ok := values.Uint(gtdtPlatformTimerOffset)
	if !ok || !checkArrayBounds(ctx, "GTDT "+gtdtPlatformTimerOffset, table, offset, count, gtdtFixedSize) {
		return
	}

	index := 0
	walkStructures(ctx, table, int(offset), 2, int(count), "GTDT", func(s subStructure) {
		switch s.Type {
		case GtdtGtBlock:
			fields.Parse(ctx, trace, 2, structureTitle("GT Block", index), s.Data, 0, gtdtGtBlockFields)
		case GtdtSbsaWatchdog:
			fields.Parse(ctx, trace, 2, structureTitle("SBSA Generic Watchdog", index), s.Data, 0, gtdtWatchdogFields)
		default:
			if validating(ctx, trace) {
				fields.ReportError(ctx, "GTDT: unknown platform timer type 0x%X", s.Type)
			}
			fields.PrintTitle(ctx.Output(), 2, structureTitle(fmt.Sprintf("Unknown Timer (type 0x%X)", s.Type), index))
			fields.DumpRaw(ctx.Output(), s.Data)
		}
		index++
	})
}
