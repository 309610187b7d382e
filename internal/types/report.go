package types

import "fmt"

// ReportMode selects how discovered tables are reported during one run.
type ReportMode int

const (
	// ReportAll traces every discovered table.
	ReportAll ReportMode = iota

	// ReportSelected traces only the table matching the selected signature.
	ReportSelected

	// ReportTableList prints one numbered line per discovered table.
	ReportTableList

	// ReportDumpBinFile writes the selected table's raw bytes to a file.
	ReportDumpBinFile
)

// String returns a human-readable name for the report mode.
func (m ReportMode) String() string {
	switch m {
	case ReportAll:
		return "all"
	case ReportSelected:
		return "selected"
	case ReportTableList:
		return "table-list"
	case ReportDumpBinFile:
		return "dump"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// RequiresSelection reports whether the mode needs a selected table signature.
func (m ReportMode) RequiresSelection() bool {
	return m == ReportSelected || m == ReportDumpBinFile
}

// Mandatory table specification identifiers accepted by the requirements check.
// The values match the ones used by the UEFI shell acpiview command.
const (
	SpecArmSbbr10 uint64 = 0x10000
	SpecArmSbbr11 uint64 = 0x10001
	SpecArmSbbr12 uint64 = 0x10002
)
