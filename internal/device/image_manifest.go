package device

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// ImageManifest describes a captured platform: memory regions backed by files and the
// configuration table that points into them
type ImageManifest struct {
	// ConfigurationTables lists configuration entries directly
	ConfigurationTables []ManifestTableEntry `yaml:"configuration_tables"`

	// ConfigurationTable locates a raw EFI configuration table array inside the regions
	ConfigurationTable *ManifestTableArray `yaml:"configuration_table"`

	// Regions maps captured files into the physical address space
	Regions []ManifestRegion `yaml:"regions"`
}

// ManifestTableEntry is one configuration table entry
type ManifestTableEntry struct {
	GUID    string `yaml:"guid"`
	Address uint64 `yaml:"address"`
}

// ManifestTableArray locates an EFI_CONFIGURATION_TABLE array
type ManifestTableArray struct {
	Address uint64 `yaml:"address"`
	Count   int    `yaml:"count"`
}

// ManifestRegion maps a file at a physical address. Relative paths are resolved against
// the manifest directory.
type ManifestRegion struct {
	Address uint64 `yaml:"address"`
	File    string `yaml:"file"`
}

// LoadImageManifest reads and validates the manifest at path
func LoadImageManifest(fs afero.Fs, path string) (*ImageManifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image manifest: %w", err)
	}

	var m ImageManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse image manifest %s: %w", path, err)
	}

	if len(m.Regions) == 0 {
		return nil, fmt.Errorf("image manifest %s maps no memory regions", path)
	}
	if len(m.ConfigurationTables) == 0 && m.ConfigurationTable == nil {
		return nil, fmt.Errorf("image manifest %s has no configuration table", path)
	}

	return &m, nil
}

// OpenImage builds a platform from the manifest at path
func OpenImage(fs afero.Fs, path string) (*StaticPlatform, error) {
	m, err := LoadImageManifest(fs, path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	mem := NewMemoryImage()
	for _, r := range m.Regions {
		file := r.File
		if !filepath.IsAbs(file) {
			file = filepath.Join(dir, file)
		}
		if err := mem.MapFile(fs, r.Address, file); err != nil {
			mem.Close()
			return nil, err
		}
	}

	var tables []types.ConfigurationTable
	for i, e := range m.ConfigurationTables {
		guid, err := uuid.Parse(e.GUID)
		if err != nil {
			mem.Close()
			return nil, fmt.Errorf("configuration table entry %d: invalid GUID %q: %w", i, e.GUID, err)
		}
		tables = append(tables, types.ConfigurationTable{VendorGUID: guid, Address: e.Address})
	}

	if m.ConfigurationTable != nil {
		raw, err := ReadConfigurationTables(mem, m.ConfigurationTable.Address, m.ConfigurationTable.Count)
		if err != nil {
			mem.Close()
			return nil, err
		}
		tables = append(tables, raw...)
	}

	return NewStaticPlatform(tables, mem, mem), nil
}
