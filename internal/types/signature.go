// Package types implements data structures for ACPI table introspection.
// This package is based on the ACPI Specification 6.3 and the UEFI Specification 2.8.
package types

import (
	"encoding/binary"
	"strings"
)

// Signature is a 4-character ACPI table identifier packed into a 32-bit value.
// The first character occupies the least significant byte, matching the in-memory layout
// of the Signature field of every system description table header.
// Reference: ACPI 6.3, section 5.2.6
type Signature uint32

// SignatureSize is the size in bytes of a table signature.
const SignatureSize = 4

// ParseSignature converts a user-supplied table name into a Signature.
//
// Only the first four characters are used, lowercase ASCII letters are folded to uppercase
// and shorter tokens are zero padded on the right. Any input yields a deterministic value;
// callers decide whether that value names a real table.
func ParseSignature(token string) Signature {
	var b [SignatureSize]byte

	i := 0
	for _, r := range token {
		if i == SignatureSize {
			break
		}
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		b[i] = byte(r)
		i++
	}

	return Signature(binary.LittleEndian.Uint32(b[:]))
}

// SignatureFromBytes reads a Signature from the first four bytes of data.
// It returns zero if data is shorter than a signature.
func SignatureFromBytes(data []byte) Signature {
	if len(data) < SignatureSize {
		return 0
	}
	return Signature(binary.LittleEndian.Uint32(data[:SignatureSize]))
}

// Bytes returns the signature characters in table order.
func (s Signature) Bytes() [SignatureSize]byte {
	var b [SignatureSize]byte
	binary.LittleEndian.PutUint32(b[:], uint32(s))
	return b
}

// String returns the signature as text with any zero padding removed.
func (s Signature) String() string {
	b := s.Bytes()
	return strings.TrimRight(string(b[:]), "\x00")
}

// Well-known table signatures.
// Reference: ACPI 6.3, table 5-29 and table 5-30
var (
	// RsdpSignature identifies the root system description pointer in reports.
	// The RSDP itself carries the 8-byte "RSD PTR " signature.
	RsdpSignature = ParseSignature("RSDP")
	XsdtSignature = ParseSignature("XSDT")
	RsdtSignature = ParseSignature("RSDT")
	FadtSignature = ParseSignature("FACP")
	FacsSignature = ParseSignature("FACS")
	DsdtSignature = ParseSignature("DSDT")
	SsdtSignature = ParseSignature("SSDT")
	MadtSignature = ParseSignature("APIC")
	McfgSignature = ParseSignature("MCFG")
	GtdtSignature = ParseSignature("GTDT")
	SpcrSignature = ParseSignature("SPCR")
	Dbg2Signature = ParseSignature("DBG2")
	HpetSignature = ParseSignature("HPET")
	BgrtSignature = ParseSignature("BGRT")
	PpttSignature = ParseSignature("PPTT")
	IortSignature = ParseSignature("IORT")
)
