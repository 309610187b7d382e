package types

// Root System Description Pointer (page 5.2.5.3)
// The RSDP is located through the EFI configuration table and anchors the table graph.

const (
	// RsdpRevisionOffset is the byte offset of the Revision field in the RSDP.
	RsdpRevisionOffset = 15

	// RsdpLengthOffset is the byte offset of the 32-bit Length field in the RSDP.
	// The field is only present when Revision >= 2.
	RsdpLengthOffset = 20

	// RsdpXsdtAddressOffset is the byte offset of the 64-bit XSDT physical address.
	RsdpXsdtAddressOffset = 24

	// RsdpV1Size is the size of the ACPI 1.0 portion covered by the first checksum.
	RsdpV1Size = 20

	// RsdpV2Size is the size of the RSDP structure for Revision >= 2.
	RsdpV2Size = 36

	// RsdpMinimumRevision is the lowest RSDP revision this tool accepts.
	// Revision 0 identifies ACPI 1.0 platforms that only provide an RSDT.
	RsdpMinimumRevision uint8 = 2
)

// RsdpSignatureBytes is the 8-byte signature at the start of the RSDP ("RSD PTR ").
var RsdpSignatureBytes = [8]byte{'R', 'S', 'D', ' ', 'P', 'T', 'R', ' '}

// System Description Table Header (page 5.2.6)
// Every table other than the RSDP and the FACS starts with this 36-byte header.

const (
	// SdtHeaderSize is the size of the common system description table header.
	SdtHeaderSize = 36

	// SdtLengthOffset is the byte offset of the 32-bit table Length.
	SdtLengthOffset = 4

	// SdtRevisionOffset is the byte offset of the table Revision.
	SdtRevisionOffset = 8

	// SdtChecksumOffset is the byte offset of the table Checksum.
	SdtChecksumOffset = 9

	// TablePrefixSize is the number of bytes needed to read a table signature and length.
	// It is also the smallest length any dispatched table may declare.
	TablePrefixSize = 8
)

// SdtHeader mirrors the common system description table header.
// Reference: ACPI 6.3, table 5-29
type SdtHeader struct {
	Signature       Signature
	Length          uint32
	Revision        uint8
	Checksum        uint8
	OemID           [6]byte
	OemTableID      [8]byte
	OemRevision     uint32
	CreatorID       [4]byte
	CreatorRevision uint32
}

// Generic Address Structure (page 5.2.3.2)

const (
	// GasSize is the size of a Generic Address Structure.
	GasSize = 12
)

// Address space identifiers used by the Generic Address Structure.
// Reference: ACPI 6.3, table 5-25
const (
	GasSystemMemory    uint8 = 0x00
	GasSystemIO        uint8 = 0x01
	GasPciConfig       uint8 = 0x02
	GasEmbeddedCtrl    uint8 = 0x03
	GasSmbus           uint8 = 0x04
	GasSystemCmos      uint8 = 0x05
	GasPciBarTarget    uint8 = 0x06
	GasIpmi            uint8 = 0x07
	GasGeneralPurpose  uint8 = 0x08
	GasGenericSerial   uint8 = 0x09
	GasPlatformCommCh  uint8 = 0x0A
	GasFunctionalFixed uint8 = 0x7F
)
