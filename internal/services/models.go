package services

import (
	"time"

	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// Default traversal bounds
const (
	DefaultMaxDepth       = 8
	DefaultMaxTableLength = 1 << 20
)

// Options configures one acpiview run
type Options struct {
	// Mode selects how discovered tables are reported
	Mode types.ReportMode

	// SelectedName is the table name as typed by the user. It selects the table in
	// Selected and DumpBinFile modes and prefixes dump file names.
	SelectedName string

	// ConsistencyChecking enables field validators and the final statistics
	ConsistencyChecking bool

	// Highlight enables ANSI colours in the report
	Highlight bool

	// MandatoryTableValidate enables the mandatory table audit against MandatoryTableSpec
	MandatoryTableValidate bool
	MandatoryTableSpec     uint64

	// MaxDepth bounds recursive table dispatch. Zero selects DefaultMaxDepth.
	MaxDepth int

	// MaxTableLength bounds the declared length of any dispatched table. Zero selects
	// DefaultMaxTableLength.
	MaxTableLength uint32

	// DumpDir is the directory receiving dumped tables. Empty means the current directory.
	DumpDir string
}

// SelectedSignature returns the signature selected by SelectedName
func (o Options) SelectedSignature() types.Signature {
	return types.ParseSignature(o.SelectedName)
}

func (o Options) withDefaults() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxTableLength == 0 {
		o.MaxTableLength = DefaultMaxTableLength
	}
	if o.DumpDir == "" {
		o.DumpDir = "."
	}
	return o
}

// TableEntry records one dispatched table
type TableEntry struct {
	Ordinal   int    `json:"ordinal" yaml:"ordinal"`
	Signature string `json:"signature" yaml:"signature"`
	Address   uint64 `json:"address" yaml:"address"`
	Length    uint32 `json:"length" yaml:"length"`
	Revision  uint8  `json:"revision" yaml:"revision"`
	Depth     int    `json:"depth" yaml:"depth"`
	Traced    bool   `json:"traced" yaml:"traced"`
	Parsed    bool   `json:"parsed" yaml:"parsed"`
}

// Result summarises one completed run
type Result struct {
	Mode           string                           `json:"mode" yaml:"mode"`
	Tables         []TableEntry                     `json:"tables" yaml:"tables"`
	Errors         uint32                           `json:"errors" yaml:"errors"`
	Warnings       uint32                           `json:"warnings" yaml:"warnings"`
	Selected       string                           `json:"selected,omitempty" yaml:"selected,omitempty"`
	SelectedFound  bool                             `json:"selected_found" yaml:"selected_found"`
	MissingParsers []string                         `json:"missing_parsers" yaml:"missing_parsers"`
	DumpedFiles    []string                         `json:"dumped_files,omitempty" yaml:"dumped_files,omitempty"`
	Mandatory      *interfaces.MandatoryTableReport `json:"mandatory,omitempty" yaml:"mandatory,omitempty"`
	Duration       time.Duration                    `json:"duration_ns" yaml:"duration_ns"`
	DurationText   string                           `json:"duration" yaml:"duration"`
}

// RootPointer is the located RSDP
type RootPointer struct {
	Address  uint64
	Revision uint8
	Length   uint32
	Data     []byte
}
