package device

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// DefaultSystabPath is where Linux exports the EFI configuration table pointers
const DefaultSystabPath = "/sys/firmware/efi/systab"

// systabGUIDs maps the names used in the systab export to configuration table GUIDs
var systabGUIDs = map[string]uuid.UUID{
	"ACPI20":  types.AcpiTableGUID,
	"ACPI":    types.Acpi10TableGUID,
	"SMBIOS":  types.SmbiosTableGUID,
	"SMBIOS3": types.Smbios3TableGUID,
}

// ParseSystab decodes NAME=0xADDRESS lines into configuration table entries in input
// order. Names without a known GUID are ignored.
func ParseSystab(r io.Reader) ([]types.ConfigurationTable, error) {
	var tables []types.ConfigurationTable

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		name, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("systab line %d: expected NAME=ADDRESS, got %q", line, text)
		}

		guid, known := systabGUIDs[strings.TrimSpace(name)]
		if !known {
			continue
		}

		addr, err := strconv.ParseUint(strings.TrimSpace(value), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("systab line %d: invalid address %q: %w", line, value, err)
		}

		tables = append(tables, types.ConfigurationTable{VendorGUID: guid, Address: addr})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read systab: %w", err)
	}

	return tables, nil
}

// ReadSystab parses the systab export at path
func ReadSystab(fs afero.Fs, path string) ([]types.ConfigurationTable, error) {
	if path == "" {
		path = DefaultSystabPath
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return ParseSystab(f)
}
