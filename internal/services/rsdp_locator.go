package services

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/logger"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// RSDPLocator finds the root pointer through the ACPI 2.0 configuration table entry
type RSDPLocator struct {
	log logger.Logger
}

var _ RSDPLocatorService = (*RSDPLocator)(nil)

// NewRSDPLocator creates a locator
func NewRSDPLocator(log logger.Logger) *RSDPLocator {
	if log == nil {
		log = logger.Discard()
	}
	return &RSDPLocator{log: log}
}

// Locate searches the configuration table for the ACPI 2.0 GUID and reads the root pointer
// it references. A missing entry or unreadable pointer counts one error and returns
// ErrRSDPNotFound; a revision below 2 returns ErrUnsupportedRevision.
func (l *RSDPLocator) Locate(platform interfaces.Platform, counters interfaces.ErrorCounter) (*RootPointer, error) {
	entries, err := platform.ConfigurationTables()
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration table: %w", err)
	}

	entry, ok := LocateConfiguration(entries, types.AcpiTableGUID)
	if !ok {
		counters.IncrementErrorCount()
		l.log.Debug("ACPI 2.0 GUID absent", "entries", len(entries))
		return nil, ErrRSDPNotFound
	}

	mem := platform.Memory()

	head, err := readPhysical(mem, entry.Address, types.RsdpV2Size)
	if len(head) <= types.RsdpRevisionOffset {
		counters.IncrementErrorCount()
		return nil, fmt.Errorf("%w: root pointer at 0x%X is unreadable: %v", ErrRSDPNotFound, entry.Address, err)
	}

	revision := head[types.RsdpRevisionOffset]
	if revision < types.RsdpMinimumRevision {
		return nil, fmt.Errorf("%w (revision %d)", ErrUnsupportedRevision, revision)
	}

	if len(head) < types.RsdpV2Size {
		counters.IncrementErrorCount()
		return nil, fmt.Errorf("%w: root pointer at 0x%X is truncated: %v", ErrRSDPNotFound, entry.Address, err)
	}

	length := binary.LittleEndian.Uint32(head[types.RsdpLengthOffset:])
	data := head
	if length > types.RsdpV2Size && length <= DefaultMaxTableLength {
		// Extended root pointers are legal; keep whatever is readable.
		if full, _ := readPhysical(mem, entry.Address, int(length)); len(full) > len(head) {
			data = full
		}
	}

	l.log.Debug("root pointer located", "address", fmt.Sprintf("0x%X", entry.Address), "revision", revision, "length", length)

	return &RootPointer{
		Address:  entry.Address,
		Revision: revision,
		Length:   length,
		Data:     data,
	}, nil
}

// LocateConfiguration returns the first configuration table entry carrying guid
func LocateConfiguration(entries []types.ConfigurationTable, guid uuid.UUID) (types.ConfigurationTable, bool) {
	for _, e := range entries {
		if e.VendorGUID == guid {
			return e, true
		}
	}
	return types.ConfigurationTable{}, false
}

// readPhysical reads size bytes at addr. On a short read it returns the bytes obtained
// together with the error.
func readPhysical(mem io.ReaderAt, addr uint64, size int) ([]byte, error) {
	if mem == nil {
		return nil, errors.New("no physical memory reader")
	}
	buf := make([]byte, size)
	n, err := mem.ReadAt(buf, int64(addr))
	if n == size {
		return buf, nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return buf[:n], err
}
