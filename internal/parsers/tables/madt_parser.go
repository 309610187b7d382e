package tables

import (
	"fmt"

	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/parsers/fields"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// madtStructuresOffset is the offset of the first interrupt controller structure.
const madtStructuresOffset = 44

// Interrupt controller structure types.
// Reference: ACPI 6.3, table 5-45
const (
	MadtProcessorLocalApic      uint8 = 0x00
	MadtIoApic                  uint8 = 0x01
	MadtInterruptSourceOverride uint8 = 0x02
	MadtLocalApicNmi            uint8 = 0x04
	MadtGicc                    uint8 = 0x0B
	MadtGicd                    uint8 = 0x0C
	MadtGicMsiFrame             uint8 = 0x0D
	MadtGicr                    uint8 = 0x0E
	MadtGicIts                  uint8 = 0x0F
)

// Multiple APIC Description Table (page 5.2.12)
var madtFields = withHeader(
	fields.Field{Name: "Local Interrupt Controller Address", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "Flags", Length: 4, Format: fields.FormatHex},
)

var structureHeaderFields = []fields.Field{
	{Name: "Type", Length: 1, Format: fields.FormatHex},
	{Name: "Length", Length: 1, Format: fields.FormatDecimal},
}

func withStructureHeader(body ...fields.Field) []fields.Field {
	return concat(structureHeaderFields, body...)
}

type madtStructureLayout struct {
	name    string
	members []fields.Field
}

var madtStructureLayouts = map[uint8]madtStructureLayout{
	MadtProcessorLocalApic: {"Processor Local APIC", withStructureHeader(
		fields.Field{Name: "ACPI Processor UID", Length: 1, Format: fields.FormatHex},
		fields.Field{Name: "APIC ID", Length: 1, Format: fields.FormatHex},
		fields.Field{Name: "Flags", Length: 4, Format: fields.FormatHex},
	)},
	MadtIoApic: {"I/O APIC", withStructureHeader(
		fields.Field{Name: "I/O APIC ID", Length: 1, Format: fields.FormatHex},
		fields.Field{Name: "Reserved", Length: 1, Format: fields.FormatHex, Validate: fields.ExpectZero()},
		fields.Field{Name: "I/O APIC Address", Length: 4, Format: fields.FormatHex},
		fields.Field{Name: "Global System Interrupt Base", Length: 4, Format: fields.FormatHex},
	)},
	MadtInterruptSourceOverride: {"Interrupt Source Override", withStructureHeader(
		fields.Field{Name: "Bus", Length: 1, Format: fields.FormatHex, Validate: fields.ExpectZero()},
		fields.Field{Name: "Source", Length: 1, Format: fields.FormatHex},
		fields.Field{Name: "Global System Interrupt", Length: 4, Format: fields.FormatHex},
		fields.Field{Name: "Flags", Length: 2, Format: fields.FormatHex},
	)},
	MadtLocalApicNmi: {"Local APIC NMI", withStructureHeader(
		fields.Field{Name: "ACPI Processor UID", Length: 1, Format: fields.FormatHex},
		fields.Field{Name: "Flags", Length: 2, Format: fields.FormatHex},
		fields.Field{Name: "Local APIC LINT#", Length: 1, Format: fields.FormatHex},
	)},
	MadtGicc: {"GICC", withStructureHeader(
		fields.Field{Name: "Reserved", Length: 2, Format: fields.FormatHex, Validate: fields.ExpectZero()},
		fields.Field{Name: "CPU Interface Number", Length: 4, Format: fields.FormatHex},
		fields.Field{Name: "ACPI Processor UID", Length: 4, Format: fields.FormatHex},
		fields.Field{Name: "Flags", Length: 4, Format: fields.FormatHex},
		fields.Field{Name: "Parking Protocol Version", Length: 4, Format: fields.FormatHex},
		fields.Field{Name: "Performance Interrupt GSIV", Length: 4, Format: fields.FormatHex},
		fields.Field{Name: "Parked Address", Length: 8, Format: fields.FormatHex},
		fields.Field{Name: "Physical Base Address", Length: 8, Format: fields.FormatHex},
		fields.Field{Name: "GICV", Length: 8, Format: fields.FormatHex},
		fields.Field{Name: "GICH", Length: 8, Format: fields.FormatHex},
		fields.Field{Name: "VGIC Maintenance interrupt", Length: 4, Format: fields.FormatHex},
		fields.Field{Name: "GICR Base Address", Length: 8, Format: fields.FormatHex},
		fields.Field{Name: "MPIDR", Length: 8, Format: fields.FormatHex},
		fields.Field{Name: "Processor Power Efficiency Class", Length: 1, Format: fields.FormatHex},
		fields.Field{Name: "Reserved1", Length: 1, Format: fields.FormatHex, Validate: fields.ExpectZero()},
		fields.Field{Name: "SPE overflow Interrupt", Length: 2, Format: fields.FormatHex},
	)},
	MadtGicd: {"GICD", withStructureHeader(
		fields.Field{Name: "Reserved", Length: 2, Format: fields.FormatHex, Validate: fields.ExpectZero()},
		fields.Field{Name: "GIC ID", Length: 4, Format: fields.FormatHex},
		fields.Field{Name: "Physical Base Address", Length: 8, Format: fields.FormatHex},
		fields.Field{Name: "System Vector Base", Length: 4, Format: fields.FormatHex, Validate: fields.ExpectZero()},
		fields.Field{Name: "GIC Version", Length: 1, Format: fields.FormatDecimal, Validate: fields.ExpectOneOf(0, 1, 2, 3, 4)},
		fields.Field{Name: "Reserved1", Length: 3, Format: fields.FormatBytes, Validate: fields.ExpectZero()},
	)},
	MadtGicMsiFrame: {"GIC MSI Frame", withStructureHeader(
		fields.Field{Name: "Reserved", Length: 2, Format: fields.FormatHex, Validate: fields.ExpectZero()},
		fields.Field{Name: "MSI Frame ID", Length: 4, Format: fields.FormatHex},
		fields.Field{Name: "Physical Base Address", Length: 8, Format: fields.FormatHex},
		fields.Field{Name: "Flags", Length: 4, Format: fields.FormatHex},
		fields.Field{Name: "SPI Count", Length: 2, Format: fields.FormatDecimal},
		fields.Field{Name: "SPI Base", Length: 2, Format: fields.FormatDecimal},
	)},
	MadtGicr: {"GICR", withStructureHeader(
		fields.Field{Name: "Reserved", Length: 2, Format: fields.FormatHex, Validate: fields.ExpectZero()},
		fields.Field{Name: "Discovery Range Base Address", Length: 8, Format: fields.FormatHex},
		fields.Field{Name: "Discovery Range Length", Length: 4, Format: fields.FormatHex},
	)},
	MadtGicIts: {"GIC ITS", withStructureHeader(
		fields.Field{Name: "Reserved", Length: 2, Format: fields.FormatHex, Validate: fields.ExpectZero()},
		fields.Field{Name: "GIC ITS ID", Length: 4, Format: fields.FormatHex},
		fields.Field{Name: "Physical Base Address", Length: 8, Format: fields.FormatHex},
		fields.Field{Name: "Reserved1", Length: 4, Format: fields.FormatHex, Validate: fields.ExpectZero()},
	)},
}

// MadtParser decodes the MADT and its interrupt controller structures.
type MadtParser struct{ tableIdentity }

var _ interfaces.TableParser = (*MadtParser)(nil)

// NewMadtParser creates the MADT parser.
func NewMadtParser() *MadtParser {
	return &MadtParser{tableIdentity{types.MadtSignature, "Multiple APIC Description Table"}}
}

// Parse implements interfaces.TableParser.
func (p *MadtParser) Parse(ctx interfaces.ParseContext, trace bool, table []byte, revision uint8) {
	if !trace {
		return
	}

	_, offset := fields.Parse(ctx, trace, 2, "", table, 0, madtFields)
	if offset < madtStructuresOffset {
		return
	}

	index := 0
	walkStructures(ctx, table, offset, 1, 0, "MADT", func(s subStructure) {
		layout, ok := madtStructureLayouts[s.Type]
		if !ok {
			fields.PrintTitle(ctx.Output(), 2, structureTitle(fmt.Sprintf("Unknown Structure (type 0x%X)", s.Type), index))
			fields.DumpRaw(ctx.Output(), s.Data)
			index++
			return
		}
		fields.Parse(ctx, trace, 2, structureTitle(layout.name, index), s.Data, 0, layout.members)
		index++
	})
}
