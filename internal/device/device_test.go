package device

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-acpiview/internal/types"
)

func TestMemoryImageReadAt(t *testing.T) {
	mem := NewMemoryImage()
	require.NoError(t, mem.Map(0x1000, []byte{1, 2, 3, 4}))
	require.NoError(t, mem.Map(0x1004, []byte{5, 6}))
	require.NoError(t, mem.Map(0x2000, []byte{9}))

	tests := []struct {
		name    string
		addr    int64
		size    int
		want    []byte
		wantErr error
	}{
		{"within region", 0x1001, 2, []byte{2, 3}, nil},
		{"across adjacent regions", 0x1002, 4, []byte{3, 4, 5, 6}, nil},
		{"unmapped start", 0x1800, 1, []byte{}, ErrUnmapped},
		{"runs off the end", 0x1005, 2, []byte{6}, io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.size)
			n, err := mem.ReadAt(buf, tt.addr)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, buf[:n])
		})
	}
}

func TestMemoryImageRejectsOverlap(t *testing.T) {
	mem := NewMemoryImage()
	require.NoError(t, mem.Map(0x1000, make([]byte, 16)))

	assert.Error(t, mem.Map(0x1008, make([]byte, 16)))
	assert.Error(t, mem.Map(0x2000, nil))
	assert.NoError(t, mem.Map(0x1010, make([]byte, 16)))
	require.Len(t, mem.regions, 2)
	assert.Equal(t, uint64(0x1000), mem.regions[0].base)
	assert.Equal(t, uint64(0x1010), mem.regions[1].base)
}

func TestMemoryImageMapFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/img/low.bin", []byte("ACPI"), 0o644))

	mem := NewMemoryImage()
	require.NoError(t, mem.MapFile(fs, 0x40, "/img/low.bin"))
	defer mem.Close()

	buf := make([]byte, 4)
	_, err := mem.ReadAt(buf, 0x40)
	require.NoError(t, err)
	assert.Equal(t, "ACPI", string(buf))

	assert.Error(t, mem.MapFile(fs, 0x100, "/img/missing.bin"))
}

func TestEFIGUIDRoundTrip(t *testing.T) {
	raw := EncodeEFIGUID(types.AcpiTableGUID)

	// the first field is stored little-endian
	assert.Equal(t, []byte{0x71, 0xe8, 0x68, 0x88}, raw[0:4])
	assert.Equal(t, []byte{0xf1, 0xe4}, raw[4:6])
	assert.Equal(t, []byte{0xd3, 0x11}, raw[6:8])
	assert.Equal(t, []byte{0xbc, 0x22, 0x00, 0x80, 0xc7, 0x3c, 0x88, 0x81}, raw[8:16])

	guid, err := DecodeEFIGUID(raw[:])
	require.NoError(t, err)
	assert.Equal(t, types.AcpiTableGUID, guid)

	_, err = DecodeEFIGUID(raw[:8])
	assert.Error(t, err)
}

func configTableBytes(entries ...types.ConfigurationTable) []byte {
	var out []byte
	for _, e := range entries {
		g := EncodeEFIGUID(e.VendorGUID)
		out = append(out, g[:]...)
		addr := make([]byte, 8)
		for i := 0; i < 8; i++ {
			addr[i] = byte(e.Address >> (8 * i))
		}
		out = append(out, addr...)
	}
	return out
}

func TestReadConfigurationTables(t *testing.T) {
	want := []types.ConfigurationTable{
		{VendorGUID: types.SmbiosTableGUID, Address: 0xF0000},
		{VendorGUID: types.AcpiTableGUID, Address: 0x7FFE0000},
	}

	mem := NewMemoryImage()
	require.NoError(t, mem.Map(0x5000, configTableBytes(want...)))

	got, err := ReadConfigurationTables(mem, 0x5000, 2)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ReadConfigurationTables(mem, 0x5000, 3)
	assert.Error(t, err, "short array")

	_, err = ReadConfigurationTables(mem, 0x5000, 0)
	assert.Error(t, err)

	_, err = ReadConfigurationTables(mem, 0x5000, MaxConfigurationTableEntries+1)
	assert.Error(t, err)
}

func TestParseSystab(t *testing.T) {
	input := "ACPI20=0x7ffe0014\nACPI=0x7ffe0000\nSMBIOS3=0x7ff00000\nMPS=0xf5a00\n\n"

	tables, err := ParseSystab(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, tables, 3)
	assert.Equal(t, types.ConfigurationTable{VendorGUID: types.AcpiTableGUID, Address: 0x7ffe0014}, tables[0])
	assert.Equal(t, types.Acpi10TableGUID, tables[1].VendorGUID)
	assert.Equal(t, types.Smbios3TableGUID, tables[2].VendorGUID)

	_, err = ParseSystab(strings.NewReader("ACPI20\n"))
	assert.Error(t, err)

	_, err = ParseSystab(strings.NewReader("ACPI20=zzz\n"))
	assert.Error(t, err)
}

func TestOpenEFIPlatform(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/sys/firmware/efi/systab", []byte("ACPI20=0x10\n"), 0o444))
	require.NoError(t, afero.WriteFile(fs, "/dev/mem", append(make([]byte, 16), 'R', 'S', 'D'), 0o400))

	p, err := OpenEFIPlatform(fs, "", "")
	require.NoError(t, err)
	defer p.Close()

	tables, err := p.ConfigurationTables()
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, uint64(0x10), tables[0].Address)

	buf := make([]byte, 3)
	_, err = p.Memory().ReadAt(buf, 0x10)
	require.NoError(t, err)
	assert.Equal(t, "RSD", string(buf))

	_, err = OpenEFIPlatform(fs, "/nonexistent", "")
	assert.Error(t, err)
}

func TestOpenImage(t *testing.T) {
	fs := afero.NewMemMapFs()
	entries := configTableBytes(types.ConfigurationTable{VendorGUID: types.SmbiosTableGUID, Address: 0x9000})

	require.NoError(t, afero.WriteFile(fs, "/cap/systab.bin", entries, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/cap/tables.bin", []byte("RSD PTR "), 0o644))
	manifest := `
configuration_tables:
  - guid: 8868e871-e4f1-11d3-bc22-0080c73c8881
    address: 0x8000
configuration_table:
  address: 0x4000
  count: 1
regions:
  - address: 0x4000
    file: systab.bin
  - address: 0x8000
    file: /cap/tables.bin
`
	require.NoError(t, afero.WriteFile(fs, "/cap/platform.yaml", []byte(manifest), 0o644))

	p, err := OpenImage(fs, "/cap/platform.yaml")
	require.NoError(t, err)
	defer p.Close()

	tables, err := p.ConfigurationTables()
	require.NoError(t, err)
	assert.Equal(t, []types.ConfigurationTable{
		{VendorGUID: types.AcpiTableGUID, Address: 0x8000},
		{VendorGUID: types.SmbiosTableGUID, Address: 0x9000},
	}, tables)

	buf := make([]byte, 8)
	_, err = p.Memory().ReadAt(buf, 0x8000)
	require.NoError(t, err)
	assert.Equal(t, "RSD PTR ", string(buf))
}

func TestOpenImageInvalidManifests(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cap/a.bin", []byte{0}, 0o644))

	tests := []struct {
		name     string
		manifest string
	}{
		{"not yaml", "regions: [\n"},
		{"no regions", "configuration_tables:\n  - guid: " + uuid.NewString() + "\n    address: 1\n"},
		{"no configuration table", "regions:\n  - address: 0\n    file: a.bin\n"},
		{"bad guid", "configuration_tables:\n  - guid: nope\n    address: 1\nregions:\n  - address: 0\n    file: a.bin\n"},
		{"missing region file", "configuration_tables:\n  - guid: " + uuid.NewString() + "\n    address: 1\nregions:\n  - address: 0\n    file: b.bin\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, afero.WriteFile(fs, "/cap/m.yaml", []byte(tt.manifest), 0o644))
			_, err := OpenImage(fs, "/cap/m.yaml")
			assert.Error(t, err)
		})
	}
}

func TestOpenSource(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Open(fs, SourceOptions{Source: "bogus"})
	assert.Error(t, err)

	_, err = Open(fs, SourceOptions{Source: SourceImage})
	assert.Error(t, err)
}
