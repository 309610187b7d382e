package services

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/logger"
	"github.com/deploymenttheory/go-acpiview/internal/parsers/fields"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// visitKey identifies one table instance in the graph.
type visitKey struct {
	address   uint64
	signature types.Signature
}

// traversal is the per-run state handed to every parser.
type traversal struct {
	*ErrorCounters

	opts      Options
	mem       io.ReaderAt
	registry  interfaces.ParserRegistry
	validator interfaces.MandatoryTableValidator
	report    *ReportController
	out       io.Writer
	log       logger.Logger

	depth   int
	visited map[visitKey]bool
	tables  []TableEntry
	missing []string
}

var _ interfaces.ParseContext = (*traversal)(nil)

func newTraversal(opts Options, mem io.ReaderAt, registry interfaces.ParserRegistry, validator interfaces.MandatoryTableValidator,
	report *ReportController, counters *ErrorCounters, out io.Writer, log logger.Logger) *traversal {
	return &traversal{
		ErrorCounters: counters,
		opts:          opts,
		mem:           mem,
		registry:      registry,
		validator:     validator,
		report:        report,
		out:           out,
		log:           log,
		visited:       make(map[visitKey]bool),
	}
}

func (t *traversal) Output() io.Writer         { return t.out }
func (t *traversal) ColourHighlighting() bool  { return t.opts.Highlight }
func (t *traversal) ConsistencyChecking() bool { return t.opts.ConsistencyChecking }

// ProcessTableAt reads the table at address and runs the report, lookup and parse cycle
// for it. Malformed or repeated references are reported and skipped.
func (t *traversal) ProcessTableAt(address uint64) {
	if t.depth >= t.opts.MaxDepth {
		fields.ReportWarning(t, "table at 0x%X exceeds the maximum dispatch depth %d and is skipped", address, t.opts.MaxDepth)
		return
	}

	prefix, err := readPhysical(t.mem, address, types.TablePrefixSize)
	if err != nil {
		fields.ReportError(t, "unable to read the table header at 0x%X: %v", address, err)
		return
	}

	sig := types.SignatureFromBytes(prefix)
	length := binary.LittleEndian.Uint32(prefix[types.SdtLengthOffset:])

	if length < types.TablePrefixSize || length > t.opts.MaxTableLength {
		fields.ReportError(t, "%s table at 0x%X declares an invalid length %d", signatureText(sig), address, length)
		return
	}

	key := visitKey{address: address, signature: sig}
	if t.visited[key] {
		fields.ReportWarning(t, "%s table at 0x%X is referenced again and is skipped", signatureText(sig), address)
		return
	}
	t.visited[key] = true

	data, err := readPhysical(t.mem, address, int(length))
	if err != nil {
		fields.ReportWarning(t, "%s table at 0x%X: only %d of %d bytes are readable", signatureText(sig), address, len(data), length)
	}

	var revision uint8
	if sig != types.FacsSignature && len(data) > types.SdtRevisionOffset {
		revision = data[types.SdtRevisionOffset]
	}

	t.dispatch(address, sig, data, revision)
}

// dispatchRoot runs the dispatch cycle for the located root pointer.
func (t *traversal) dispatchRoot(root *RootPointer) {
	t.visited[visitKey{address: root.Address, signature: types.RsdpSignature}] = true
	t.dispatch(root.Address, types.RsdpSignature, root.Data, root.Revision)
}

func (t *traversal) dispatch(address uint64, sig types.Signature, data []byte, revision uint8) {
	trace := t.report.ProcessTableReportOptions(sig, data)

	if t.validator != nil {
		t.validator.Observe(sig)
	}

	index := len(t.tables)
	t.tables = append(t.tables, TableEntry{
		Ordinal:   index + 1,
		Signature: sig.String(),
		Address:   address,
		Length:    uint32(len(data)),
		Revision:  revision,
		Depth:     t.depth,
		Traced:    trace,
	})

	t.log.Debug("dispatching table", "signature", sig.String(), "address", fmt.Sprintf("0x%X", address),
		"length", len(data), "depth", t.depth, "trace", trace)

	// The root pointer parser prints its own fields and checksums
	if trace && sig != types.RsdpSignature {
		fields.DumpRaw(t.out, data)
		if hasChecksum(sig) {
			fields.VerifyChecksum(t, true, "Table Checksum", data)
		}
	}

	parser, ok := t.registry.GetParser(sig)
	if !ok {
		t.parserNotImplemented(sig, data, trace)
		return
	}
	t.tables[index].Parsed = true

	t.depth++
	defer func() { t.depth-- }()

	parser.Parse(t, trace, data, revision)
}

// parserNotImplemented records a table without a registered parser. It is not a
// consistency error.
func (t *traversal) parserNotImplemented(sig types.Signature, data []byte, trace bool) {
	name := sig.String()
	seen := false
	for _, m := range t.missing {
		if m == name {
			seen = true
			break
		}
	}
	if !seen {
		t.missing = append(t.missing, name)
	}

	t.log.Info("parser not implemented", "signature", name)

	if !trace {
		return
	}
	fmt.Fprintf(t.out, "\nNOTE: Parser not implemented for %s table\n", signatureText(sig))
	if len(data) >= types.SdtHeaderSize {
		fields.ParseStandardHeader(t, true, data)
	}
}

// hasChecksum reports whether tables with sig carry a checksum over their whole length.
// The FACS has none and the root pointer verifies its own two checksums.
func hasChecksum(sig types.Signature) bool {
	return sig != types.FacsSignature && sig != types.RsdpSignature
}
