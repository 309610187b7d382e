package interfaces

import (
	"io"

	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// Platform provides the firmware data a traversal inspects
type Platform interface {
	// ConfigurationTables returns the EFI configuration table directory
	ConfigurationTables() ([]types.ConfigurationTable, error)

	// Memory returns a reader over physical memory where offsets are physical addresses
	Memory() io.ReaderAt

	// Close releases any handle held on physical memory
	Close() error
}
