package device

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// MaxConfigurationTableEntries bounds the entry count accepted from a system table
const MaxConfigurationTableEntries = 1024

// DecodeEFIGUID converts a GUID in native EFI byte order, where the first three fields are
// little-endian, into its canonical form
func DecodeEFIGUID(b []byte) (uuid.UUID, error) {
	var u uuid.UUID
	if len(b) < 16 {
		return u, fmt.Errorf("EFI GUID needs 16 bytes, got %d", len(b))
	}

	binary.BigEndian.PutUint32(u[0:4], binary.LittleEndian.Uint32(b[0:4]))
	binary.BigEndian.PutUint16(u[4:6], binary.LittleEndian.Uint16(b[4:6]))
	binary.BigEndian.PutUint16(u[6:8], binary.LittleEndian.Uint16(b[6:8]))
	copy(u[8:], b[8:16])

	return u, nil
}

// EncodeEFIGUID converts a canonical GUID into native EFI byte order
func EncodeEFIGUID(u uuid.UUID) [16]byte {
	var b [16]byte

	binary.LittleEndian.PutUint32(b[0:4], binary.BigEndian.Uint32(u[0:4]))
	binary.LittleEndian.PutUint16(b[4:6], binary.BigEndian.Uint16(u[4:6]))
	binary.LittleEndian.PutUint16(b[6:8], binary.BigEndian.Uint16(u[6:8]))
	copy(b[8:], u[8:])

	return b
}

// ReadConfigurationTables decodes count EFI_CONFIGURATION_TABLE entries at addr
func ReadConfigurationTables(mem io.ReaderAt, addr uint64, count int) ([]types.ConfigurationTable, error) {
	if count <= 0 || count > MaxConfigurationTableEntries {
		return nil, fmt.Errorf("EFI configuration table entry count %d is invalid", count)
	}

	buf := make([]byte, count*types.ConfigurationTableEntrySize)
	if n, err := mem.ReadAt(buf, int64(addr)); n != len(buf) {
		return nil, fmt.Errorf("failed to read EFI configuration table at 0x%X (%d of %d bytes): %w", addr, n, len(buf), err)
	}

	tables := make([]types.ConfigurationTable, 0, count)
	for i := 0; i < len(buf); i += types.ConfigurationTableEntrySize {
		guid, err := DecodeEFIGUID(buf[i : i+16])
		if err != nil {
			return nil, err
		}
		tables = append(tables, types.ConfigurationTable{
			VendorGUID: guid,
			Address:    binary.LittleEndian.Uint64(buf[i+16:]),
		})
	}

	return tables, nil
}
