package services

import "errors"

// Fatal run outcomes. Everything else a traversal finds is counted, not returned.
var (
	// ErrRSDPNotFound means the configuration table has no ACPI 2.0 entry or the root
	// pointer it references cannot be read.
	ErrRSDPNotFound = errors.New("ACPI table GUID not found in the system configuration table")

	// ErrUnsupportedRevision means the RSDP revision is below 2.
	ErrUnsupportedRevision = errors.New("RSDP version less than 2 is not supported")

	// ErrSinkNotWritable means the dump sink failed its write probe.
	ErrSinkNotWritable = errors.New("dump destination is not writable")

	// ErrNoRootParser means the registry has no parser for the root pointer.
	ErrNoRootParser = errors.New("no registered parser found for RSDP")

	// ErrInvalidOptions means the engine options are inconsistent.
	ErrInvalidOptions = errors.New("invalid acpiview options")
)
