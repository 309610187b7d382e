package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/deploymenttheory/go-acpiview/internal/logger"
	"github.com/deploymenttheory/go-acpiview/internal/parsers/fields"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// ReportController applies the active report mode to every discovered table
type ReportController struct {
	mode         types.ReportMode
	selected     types.Signature
	selectedName string
	highlight    bool
	dumpDir      string

	fs  afero.Fs
	out io.Writer
	log logger.Logger

	tableCount    int
	binTableCount int
	found         bool
	dumped        []string
}

// NewReportController creates a controller for one run
func NewReportController(opts Options, fs afero.Fs, out io.Writer, log logger.Logger) *ReportController {
	if log == nil {
		log = logger.Discard()
	}
	opts = opts.withDefaults()
	return &ReportController{
		mode:         opts.Mode,
		selected:     opts.SelectedSignature(),
		selectedName: opts.SelectedName,
		highlight:    opts.Highlight,
		dumpDir:      opts.DumpDir,
		fs:           fs,
		out:          out,
		log:          log,
	}
}

// ProbeSink checks that the dump destination accepts new files by creating and removing a
// temporary file named after the next dump.
func (c *ReportController) ProbeSink() error {
	if c.fs == nil {
		return fmt.Errorf("%w: no filesystem configured", ErrSinkNotWritable)
	}

	name := c.fileName("tmp")
	f, err := c.fs.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSinkNotWritable, name, err)
	}
	f.Close()

	if err := c.fs.Remove(name); err != nil {
		c.log.Warn("failed to remove sink probe file", "file", name, "error", err)
	}
	return nil
}

// ProcessTableReportOptions applies the report mode to one table and reports whether its
// fields should be traced.
func (c *ReportController) ProcessTableReportOptions(sig types.Signature, data []byte) bool {
	trace := false

	switch c.mode {
	case types.ReportAll:
		trace = true
	case types.ReportSelected:
		if sig == c.selected {
			trace = true
			c.found = true
		}
	case types.ReportTableList:
		if c.tableCount == 0 {
			fmt.Fprintf(c.out, "\n%s\n", fields.Colourize(c.highlight, fields.ColourCyan, "Installed Table(s):"))
		}
		c.tableCount++
		fmt.Fprintf(c.out, "\t%4d. %s\n", c.tableCount, signatureText(sig))
	case types.ReportDumpBinFile:
		if sig == c.selected {
			c.found = true
			c.dumpTable(data)
		}
	}

	if trace {
		banner := fmt.Sprintf(" --------------- %s Table --------------- ", signatureText(sig))
		fmt.Fprintf(c.out, "\n\n%s\n\n", fields.Colourize(c.highlight, fields.ColourLightBlue, banner))
	}

	return trace
}

// dumpTable writes data to the next dump file. Failures are reported and do not stop the run.
func (c *ReportController) dumpTable(data []byte) bool {
	name := c.fileName("bin")
	c.binTableCount++

	f, err := c.fs.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		fmt.Fprintf(c.out, "acpiview: Read only media (%s)\n", name)
		c.log.Warn("failed to open dump file", "file", name, "error", err)
		return false
	}
	defer f.Close()

	fmt.Fprintf(c.out, "Dumping ACPI table to : %s ... ", name)

	n, err := f.Write(data)
	if err != nil || n != len(data) {
		fmt.Fprintln(c.out, "ERROR: Failed to dump table to binary file.")
		c.log.Warn("failed to write dump file", "file", name, "written", n, "error", err)
		return false
	}

	fmt.Fprintln(c.out, "DONE.")
	c.dumped = append(c.dumped, name)
	return true
}

func (c *ReportController) fileName(ext string) string {
	return filepath.Join(c.dumpDir, fmt.Sprintf("%s%04d.%s", c.selectedName, c.binTableCount, ext))
}

// SelectedTableFound reports whether the selected table was seen
func (c *ReportController) SelectedTableFound() bool { return c.found }

// DumpedFiles returns the files written in dump mode
func (c *ReportController) DumpedFiles() []string {
	return append([]string(nil), c.dumped...)
}

// signatureText renders all four signature bytes, showing padding as spaces.
func signatureText(sig types.Signature) string {
	b := sig.Bytes()
	for i := range b {
		if b[i] == 0 {
			b[i] = ' '
		}
	}
	return string(b[:])
}
