package fields

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// Standard header field names, shared with parsers that read them back from Values.
const (
	HeaderSignature = "Signature"
	HeaderLength    = "Length"
	HeaderRevision  = "Revision"
	HeaderChecksum  = "Checksum"
)

// StandardHeaderFields describes the 36-byte system description table header.
// Reference: ACPI 6.3, table 5-29
var StandardHeaderFields = []Field{
	{Name: HeaderSignature, Length: 4, Format: FormatChars},
	{Name: HeaderLength, Length: 4, Format: FormatDecimal},
	{Name: HeaderRevision, Length: 1, Format: FormatDecimal},
	{Name: HeaderChecksum, Length: 1, Format: FormatHex},
	{Name: "Oem ID", Length: 6, Format: FormatChars},
	{Name: "Oem Table ID", Length: 8, Format: FormatChars},
	{Name: "Oem Revision", Length: 4, Format: FormatHex},
	{Name: "Creator ID", Length: 4, Format: FormatChars},
	{Name: "Creator Revision", Length: 4, Format: FormatHex},
}

// ParseStandardHeader decodes (and traces) the standard header at the start of table.
// It returns the header and the offset of the first byte after it.
func ParseStandardHeader(ctx interfaces.ParseContext, trace bool, table []byte) (types.SdtHeader, int) {
	values, offset := Parse(ctx, trace, 2, "", table, 0, StandardHeaderFields)
	return headerFromValues(values), offset
}

// decodeStandardHeader decodes the standard header without tracing or reporting.
// ok is false when table is shorter than a header.
func decodeStandardHeader(table []byte) (hdr types.SdtHeader, ok bool) {
	if len(table) < types.SdtHeaderSize {
		return hdr, false
	}
	hdr.Signature = types.SignatureFromBytes(table[0:4])
	hdr.Length = binary.LittleEndian.Uint32(table[4:8])
	hdr.Revision = table[8]
	hdr.Checksum = table[9]
	copy(hdr.OemID[:], table[10:16])
	copy(hdr.OemTableID[:], table[16:24])
	hdr.OemRevision = binary.LittleEndian.Uint32(table[24:28])
	copy(hdr.CreatorID[:], table[28:32])
	hdr.CreatorRevision = binary.LittleEndian.Uint32(table[32:36])
	return hdr, true
}

func headerFromValues(v Values) types.SdtHeader {
	var hdr types.SdtHeader
	if b, ok := v.Bytes(HeaderSignature); ok {
		hdr.Signature = types.SignatureFromBytes(b)
	}
	if n, ok := v.Uint(HeaderLength); ok {
		hdr.Length = uint32(n)
	}
	if n, ok := v.Uint(HeaderRevision); ok {
		hdr.Revision = uint8(n)
	}
	if n, ok := v.Uint(HeaderChecksum); ok {
		hdr.Checksum = uint8(n)
	}
	if b, ok := v.Bytes("Oem ID"); ok {
		copy(hdr.OemID[:], b)
	}
	if b, ok := v.Bytes("Oem Table ID"); ok {
		copy(hdr.OemTableID[:], b)
	}
	if n, ok := v.Uint("Oem Revision"); ok {
		hdr.OemRevision = uint32(n)
	}
	if b, ok := v.Bytes("Creator ID"); ok {
		copy(hdr.CreatorID[:], b)
	}
	if n, ok := v.Uint("Creator Revision"); ok {
		hdr.CreatorRevision = uint32(n)
	}
	return hdr
}

// Checksum returns the 8-bit sum of data. A valid ACPI structure sums to zero.
func Checksum(data []byte) uint8 {
	var sum uint8
	for _, b := range data {
		sum += b
	}
	return sum
}

// VerifyChecksum reports a checksum error when data does not sum to zero. When log is set
// a successful check is printed too. It returns whether the checksum is valid.
func VerifyChecksum(ctx interfaces.ParseContext, log bool, name string, data []byte) bool {
	sum := Checksum(data)
	if sum != 0 {
		ReportError(ctx, "%s: invalid checksum (byte sum 0x%02X)", name, sum)
		return false
	}
	if log {
		PrintField(ctx.Output(), 2, name, "%s", "OK")
	}
	return true
}

// ExpectUint returns a Validator that reports an error when the field differs from want.
func ExpectUint(want uint64) Validator {
	return func(ctx interfaces.ParseContext, field string, value []byte) {
		got, ok := toUint(value)
		if !ok || got != want {
			ReportError(ctx, "%s: expected %d, found %s", field, want, describe(value, ok, got))
		}
	}
}

// ExpectOneOf returns a Validator that reports an error when the field is not in allowed.
func ExpectOneOf(allowed ...uint64) Validator {
	return func(ctx interfaces.ParseContext, field string, value []byte) {
		got, ok := toUint(value)
		if ok {
			for _, a := range allowed {
				if got == a {
					return
				}
			}
		}
		ReportError(ctx, "%s: unsupported value %s", field, describe(value, ok, got))
	}
}

// ExpectZero returns a Validator that warns when a reserved field is not zero.
func ExpectZero() Validator {
	return func(ctx interfaces.ParseContext, field string, value []byte) {
		for _, b := range value {
			if b != 0 {
				ReportWarning(ctx, "%s: reserved field must be zero, found %s", field, formatBytes(value))
				return
			}
		}
	}
}

func describe(value []byte, ok bool, n uint64) string {
	if ok {
		return fmt.Sprintf("%d", n)
	}
	return formatBytes(value)
}
