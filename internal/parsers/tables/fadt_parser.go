package tables

import (
	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/parsers/fields"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

const (
	fadtFirmwareCtrl  = "FIRMWARE_CTRL"
	fadtDsdt          = "DSDT"
	fadtXFirmwareCtrl = "X_FIRMWARE_CTRL"
	fadtXDsdt         = "X_DSDT"
)

// Fixed ACPI Description Table (page 5.2.9)
var fadtFields = withHeader(
	fields.Field{Name: fadtFirmwareCtrl, Length: 4, Format: fields.FormatHex},
	fields.Field{Name: fadtDsdt, Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "Reserved", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "Preferred_PM_Profile", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "SCI_INT", Length: 2, Format: fields.FormatHex},
	fields.Field{Name: "SMI_CMD", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "ACPI_ENABLE", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "ACPI_DISABLE", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "S4BIOS_REQ", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "PSTATE_CNT", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "PM1a_EVT_BLK", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "PM1b_EVT_BLK", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "PM1a_CNT_BLK", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "PM1b_CNT_BLK", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "PM2_CNT_BLK", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "PM_TMR_BLK", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "GPE0_BLK", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "GPE1_BLK", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "PM1_EVT_LEN", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "PM1_CNT_LEN", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "PM2_CNT_LEN", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "PM_TMR_LEN", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "GPE0_BLK_LEN", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "GPE1_BLK_LEN", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "GPE1_BASE", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "CST_CNT", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "P_LVL2_LAT", Length: 2, Format: fields.FormatHex},
	fields.Field{Name: "P_LVL3_LAT", Length: 2, Format: fields.FormatHex},
	fields.Field{Name: "FLUSH_SIZE", Length: 2, Format: fields.FormatHex},
	fields.Field{Name: "FLUSH_STRIDE", Length: 2, Format: fields.FormatHex},
	fields.Field{Name: "DUTY_OFFSET", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "DUTY_WIDTH", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "DAY_ALRM", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "MON_ALRM", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "CENTURY", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "IAPC_BOOT_ARCH", Length: 2, Format: fields.FormatHex},
	fields.Field{Name: "Reserved1", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "Flags", Length: 4, Format: fields.FormatHex},
	fields.Field{Name: "RESET_REG", Length: types.GasSize, Format: fields.FormatGAS},
	fields.Field{Name: "RESET_VALUE", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: "ARM_BOOT_ARCH", Length: 2, Format: fields.FormatHex},
	fields.Field{Name: "FADT Minor Version", Length: 1, Format: fields.FormatHex},
	fields.Field{Name: fadtXFirmwareCtrl, Length: 8, Format: fields.FormatHex},
	fields.Field{Name: fadtXDsdt, Length: 8, Format: fields.FormatHex},
	fields.Field{Name: "X_PM1a_EVT_BLK", Length: types.GasSize, Format: fields.FormatGAS},
	fields.Field{Name: "X_PM1b_EVT_BLK", Length: types.GasSize, Format: fields.FormatGAS},
	fields.Field{Name: "X_PM1a_CNT_BLK", Length: types.GasSize, Format: fields.FormatGAS},
	fields.Field{Name: "X_PM1b_CNT_BLK", Length: types.GasSize, Format: fields.FormatGAS},
	fields.Field{Name: "X_PM2_CNT_BLK", Length: types.GasSize, Format: fields.FormatGAS},
	fields.Field{Name: "X_PM_TMR_BLK", Length: types.GasSize, Format: fields.FormatGAS},
	fields.Field{Name: "X_GPE0_BLK", Length: types.GasSize, Format: fields.FormatGAS},
	fields.Field{Name: "X_GPE1_BLK", Length: types.GasSize, Format: fields.FormatGAS},
	fields.Field{Name: "SLEEP_CONTROL_REG", Length: types.GasSize, Format: fields.FormatGAS},
	fields.Field{Name: "SLEEP_STATUS_REG", Length: types.GasSize, Format: fields.FormatGAS},
	fields.Field{Name: "Hypervisor VendorIdentity", Length: 8, Format: fields.FormatHex},
)

// FadtParser decodes the FADT and dispatches the FACS and the DSDT.
type FadtParser struct{ tableIdentity }

var _ interfaces.TableParser = (*FadtParser)(nil)

// NewFadtParser creates the FADT parser.
func NewFadtParser() *FadtParser {
	return &FadtParser{tableIdentity{types.FadtSignature, "Fixed ACPI Description Table"}}
}

// Parse implements interfaces.TableParser.
func (p *FadtParser) Parse(ctx interfaces.ParseContext, trace bool, table []byte, revision uint8) {
	values, _ := fields.Parse(ctx, trace, 2, "", table, 0, fadtFields)

	firmwareCtrl, _ := values.Uint(fadtFirmwareCtrl)
	xFirmwareCtrl, _ := values.Uint(fadtXFirmwareCtrl)
	dsdt, _ := values.Uint(fadtDsdt)
	xDsdt, _ := values.Uint(fadtXDsdt)

	if validating(ctx, trace) && firmwareCtrl != 0 && xFirmwareCtrl != 0 {
		fields.ReportError(ctx, "FADT: both %s and %s are non-zero", fadtFirmwareCtrl, fadtXFirmwareCtrl)
	}

	if facs := preferWide(xFirmwareCtrl, firmwareCtrl); facs != 0 {
		ctx.ProcessTableAt(facs)
	}

	if target := preferWide(xDsdt, dsdt); target != 0 {
		ctx.ProcessTableAt(target)
	} else if validating(ctx, trace) {
		fields.ReportError(ctx, "FADT: neither %s nor %s holds a DSDT address", fadtXDsdt, fadtDsdt)
	}
}

// preferWide returns the 64-bit pointer when set, falling back to the legacy 32-bit one.
func preferWide(wide, legacy uint64) uint64 {
	if wide != 0 {
		return wide
	}
	return legacy
}
