package types

import (
	"github.com/google/uuid"
)

// ConfigurationTable is one entry of the EFI system table's configuration table directory.
// Reference: UEFI 2.8, section 4.6
type ConfigurationTable struct {
	// VendorGUID identifies the table referenced by Address.
	VendorGUID uuid.UUID

	// Address is the physical address of the vendor table.
	Address uint64
}

// ConfigurationTableEntrySize is the size of an EFI_CONFIGURATION_TABLE entry on 64-bit platforms.
const ConfigurationTableEntrySize = 24

// Well-known configuration table GUIDs.
// Reference: UEFI 2.8, section 4.6.1
var (
	// AcpiTableGUID locates the ACPI 2.0+ RSDP.
	AcpiTableGUID = uuid.MustParse("8868e871-e4f1-11d3-bc22-0080c73c8881")

	// Acpi10TableGUID locates the ACPI 1.0 RSDP.
	Acpi10TableGUID = uuid.MustParse("eb9d2d30-2d88-11d3-9a16-0090273fc14d")

	// SmbiosTableGUID locates the SMBIOS entry point.
	SmbiosTableGUID = uuid.MustParse("eb9d2d31-2d88-11d3-9a16-0090273fc14d")

	// Smbios3TableGUID locates the SMBIOS 3.0 entry point.
	Smbios3TableGUID = uuid.MustParse("f2fd1544-9794-4a2c-992e-e5bbcf20e394")
)
