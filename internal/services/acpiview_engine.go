package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hako/durafmt"
	"github.com/spf13/afero"

	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/logger"
	"github.com/deploymenttheory/go-acpiview/internal/parsers/fields"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// AcpiViewEngine locates the root pointer, walks the table graph and summarises the run
type AcpiViewEngine struct {
	registry  interfaces.ParserRegistry
	validator interfaces.MandatoryTableValidator
	locator   RSDPLocatorService
	fs        afero.Fs
	out       io.Writer
	log       logger.Logger
}

var _ AcpiViewService = (*AcpiViewEngine)(nil)

// NewAcpiViewEngine creates an engine writing its report to out and dumped tables to fs.
// A nil log falls back to the logger carried by the run context.
func NewAcpiViewEngine(registry interfaces.ParserRegistry, validator interfaces.MandatoryTableValidator,
	fs afero.Fs, out io.Writer, log logger.Logger) *AcpiViewEngine {
	if out == nil {
		out = io.Discard
	}
	return &AcpiViewEngine{
		registry:  registry,
		validator: validator,
		locator:   NewRSDPLocator(log),
		fs:        fs,
		out:       out,
		log:       log,
	}
}

// Run performs one traversal. Counted inconsistencies never fail the run; the returned
// error is set only when the root pointer is missing or unsupported or when the dump
// destination fails its probe. A Result is returned in every case except invalid options.
func (e *AcpiViewEngine) Run(ctx context.Context, platform interfaces.Platform, opts Options) (*Result, error) {
	start := time.Now()
	opts = opts.withDefaults()

	log := e.log
	if log == nil {
		log = logger.FromContext(ctx)
	}
	log = log.With("mode", opts.Mode.String())

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Mode.RequiresSelection() && opts.SelectedName == "" {
		return nil, fmt.Errorf("%w: mode %s requires a table selection", ErrInvalidOptions, opts.Mode)
	}
	if opts.MandatoryTableValidate && e.validator == nil {
		return nil, fmt.Errorf("%w: mandatory table validation requested without a validator", ErrInvalidOptions)
	}

	// Init
	counters := NewErrorCounters()
	report := NewReportController(opts, e.fs, e.out, log)

	var validator interfaces.MandatoryTableValidator
	if opts.MandatoryTableValidate {
		validator = e.validator
		validator.Reset()
	}

	result := &Result{
		Mode:           opts.Mode.String(),
		Tables:         []TableEntry{},
		MissingParsers: []string{},
	}
	if opts.Mode.RequiresSelection() {
		result.Selected = opts.SelectedSignature().String()
	}

	finish := func() {
		result.Errors = counters.GetErrorCount()
		result.Warnings = counters.GetWarningCount()
		result.SelectedFound = report.SelectedTableFound()
		result.DumpedFiles = report.DumpedFiles()
		result.Duration = time.Since(start)
		result.DurationText = durafmt.Parse(result.Duration).LimitFirstN(2).String()
	}

	if opts.Mode == types.ReportDumpBinFile {
		if err := report.ProbeSink(); err != nil {
			log.Error("dump destination probe failed", "error", err)
			finish()
			return result, err
		}
	}

	// RootLocated
	root, err := e.locator.Locate(platform, counters)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedRevision):
			fmt.Fprintln(e.out, "ERROR: RSDP version less than 2 is not supported.")
		case errors.Is(err, ErrRSDPNotFound):
			fmt.Fprintln(e.out, "ERROR: Failed to find ACPI Table Guid in System Configuration Table.")
		}
		log.Error("root pointer unavailable", "error", err)
		finish()
		return result, err
	}

	if _, ok := e.registry.GetParser(types.RsdpSignature); !ok {
		fmt.Fprintln(e.out, "ERROR: No registered parser found for RSDP.")
		finish()
		return result, ErrNoRootParser
	}

	// Traversing
	t := newTraversal(opts, platform.Memory(), e.registry, validator, report, counters, e.out, log)
	t.dispatchRoot(root)

	result.Tables = t.tables
	result.MissingParsers = append(result.MissingParsers, t.missing...)

	// Summarizing
	if validator != nil && opts.Mode != types.ReportDumpBinFile {
		mandatory := validator.Validate(opts.MandatoryTableSpec, counters, e.out)
		result.Mandatory = &mandatory
	}

	e.printSummary(opts, report, counters)

	finish()
	log.Info("traversal complete", "tables", len(result.Tables), "errors", result.Errors,
		"warnings", result.Warnings, "duration", result.DurationText)

	return result, nil
}

func (e *AcpiViewEngine) printSummary(opts Options, report *ReportController, counters *ErrorCounters) {
	if opts.Mode == types.ReportTableList {
		return
	}

	if opts.Mode.RequiresSelection() && !report.SelectedTableFound() {
		fmt.Fprintln(e.out, "\nRequested ACPI Table not found.")
		return
	}

	if !opts.ConsistencyChecking || opts.Mode == types.ReportDumpBinFile {
		return
	}

	errs := counters.GetErrorCount()
	warnings := counters.GetWarningCount()

	fmt.Fprintln(e.out, "\nTable Statistics:")
	fmt.Fprintf(e.out, "%s\n", fields.Colourize(opts.Highlight && errs > 0, fields.ColourRed, fmt.Sprintf("\t%d Error(s)", errs)))
	fmt.Fprintf(e.out, "%s\n", fields.Colourize(opts.Highlight && warnings > 0, fields.ColourRed, fmt.Sprintf("\t%d Warning(s)", warnings)))
}
