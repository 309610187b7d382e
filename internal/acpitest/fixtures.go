package acpitest

import (
	"bytes"
	"encoding/binary"
)

// SDT returns a table with a standard header, the given payload, a correct length and a
// correct checksum.
func SDT(sig string, revision uint8, payload []byte) []byte {
	buf := &bytes.Buffer{}

	sigBytes := make([]byte, 4)
	copy(sigBytes, sig)
	buf.Write(sigBytes)

	binary.Write(buf, binary.LittleEndian, uint32(0)) // Length, patched below
	buf.WriteByte(revision)
	buf.WriteByte(0) // Checksum, patched below
	buf.WriteString("GOACPI")
	buf.WriteString("TESTTBL ")
	binary.Write(buf, binary.LittleEndian, uint32(1))
	buf.WriteString("GOAT")
	binary.Write(buf, binary.LittleEndian, uint32(1))
	buf.Write(payload)

	return Finalize(buf.Bytes())
}

// Finalize patches the Length and Checksum fields of a table with a standard header.
func Finalize(b []byte) []byte {
	binary.LittleEndian.PutUint32(b[4:], uint32(len(b)))
	b[9] = 0
	b[9] = -sum(b)
	return b
}

// Corrupt flips the checksum byte so the table no longer sums to zero.
func Corrupt(b []byte) []byte {
	b[9]++
	return b
}

// RSDP returns a root pointer with the given revision referencing xsdtAddr. Both checksums
// are valid.
func RSDP(revision uint8, xsdtAddr uint64) []byte {
	b := make([]byte, 36)

	copy(b[0:], "RSD PTR ")
	copy(b[9:], "GOACPI")
	b[15] = revision
	binary.LittleEndian.PutUint32(b[20:], uint32(len(b)))
	binary.LittleEndian.PutUint64(b[24:], xsdtAddr)

	b[8] = -sum(b[:20])
	b[32] = -sum(b)

	return b
}

// XSDT returns an extended system description table listing entries.
func XSDT(entries ...uint64) []byte {
	payload := make([]byte, 8*len(entries))
	for i, e := range entries {
		binary.LittleEndian.PutUint64(payload[i*8:], e)
	}
	return SDT("XSDT", 1, payload)
}

// FADT returns a 276-byte revision 6 FADT with the given 64-bit FACS and DSDT pointers.
func FADT(xFacs, xDsdt uint64) []byte {
	payload := make([]byte, 276-36)
	binary.LittleEndian.PutUint64(payload[132-36:], xFacs)
	binary.LittleEndian.PutUint64(payload[140-36:], xDsdt)
	return SDT("FACP", 6, payload)
}

// FACS returns a 64-byte firmware ACPI control structure.
func FACS() []byte {
	b := make([]byte, 64)
	copy(b, "FACS")
	binary.LittleEndian.PutUint32(b[4:], 64)
	b[32] = 2 // Version
	return b
}

// Generic returns a table with a standard header and size bytes of zero payload.
func Generic(sig string, size int) []byte {
	return SDT(sig, 1, make([]byte, size))
}

func sum(b []byte) uint8 {
	var s uint8
	for _, c := range b {
		s += c
	}
	return s
}
