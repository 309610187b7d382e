package interfaces

import (
	"io"

	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// ErrorCounter provides the run-scoped error and warning counters shared by every
// parser and validator
type ErrorCounter interface {
	// IncrementErrorCount records one consistency error
	IncrementErrorCount()

	// IncrementWarningCount records one consistency warning
	IncrementWarningCount()

	// GetErrorCount returns the number of errors recorded since the last reset
	GetErrorCount() uint32

	// GetWarningCount returns the number of warnings recorded since the last reset
	GetWarningCount() uint32

	// ResetErrorCount sets the error count to zero
	ResetErrorCount()

	// ResetWarningCount sets the warning count to zero
	ResetWarningCount()
}

// ParseContext is handed to every table parser during a traversal
type ParseContext interface {
	ErrorCounter

	// Output returns the writer that receives the human-readable table trace
	Output() io.Writer

	// ColourHighlighting reports whether trace output may use ANSI colours
	ColourHighlighting() bool

	// ConsistencyChecking reports whether field validators should run
	ConsistencyChecking() bool

	// ProcessTableAt runs the report/lookup/parse cycle for the table at a physical address
	ProcessTableAt(address uint64)
}

// TableParser decodes and validates one kind of ACPI table
type TableParser interface {
	// Signature returns the table signature handled by this parser
	Signature() types.Signature

	// Name returns the human-readable table name
	Name() string

	// Parse decodes table, printing fields when trace is set and reporting every
	// inconsistency through ctx. It must never read outside table.
	Parse(ctx ParseContext, trace bool, table []byte, revision uint8)
}

// TableInfo describes a registered table parser
type TableInfo struct {
	// Signature of the table
	Signature types.Signature

	// Human-readable name
	Name string

	// Detailed description
	Description string

	// Parser decoding the table
	Parser TableParser
}

// ParserRegistry maps table signatures to parsers. It is read-only once built.
type ParserRegistry interface {
	// GetParser returns the parser registered for sig
	GetParser(sig types.Signature) (TableParser, bool)

	// ListTables returns every registered table ordered by signature text
	ListTables() []TableInfo
}

// MandatoryTableValidator audits the presence of the tables required by a specification
type MandatoryTableValidator interface {
	// Reset clears the observed-signature tally
	Reset()

	// Observe records one discovered table
	Observe(sig types.Signature)

	// Validate checks the tally against the profile identified by specID, reporting
	// every missing table through counter and w
	Validate(specID uint64, counter ErrorCounter, w io.Writer) MandatoryTableReport
}

// MandatoryTableReport summarises one mandatory-table audit
type MandatoryTableReport struct {
	SpecID   uint64   `json:"spec_id" yaml:"spec_id"`
	SpecName string   `json:"spec_name" yaml:"spec_name"`
	Known    bool     `json:"known" yaml:"known"`
	Required []string `json:"required" yaml:"required"`
	Missing  []string `json:"missing" yaml:"missing"`
}

// Passed reports whether the audited specification was known and fully satisfied
func (r MandatoryTableReport) Passed() bool {
	return r.Known && len(r.Missing) == 0
}
