// Package tables implements the per-signature ACPI table parsers.
//
// Every parser decodes its table through the fields toolkit, prints the decoded fields when
// the table is traced and dispatches referenced child tables through the parse context.
package tables

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/parsers/fields"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// tableIdentity carries the signature and name shared by every parser.
type tableIdentity struct {
	signature types.Signature
	name      string
}

func (t tableIdentity) Signature() types.Signature { return t.signature }
func (t tableIdentity) Name() string               { return t.name }

// withHeader returns the standard header fields followed by body.
func withHeader(body ...fields.Field) []fields.Field {
	return concat(fields.StandardHeaderFields, body...)
}

func concat(prefix []fields.Field, body ...fields.Field) []fields.Field {
	out := make([]fields.Field, 0, len(prefix)+len(body))
	out = append(out, prefix...)
	return append(out, body...)
}

// validating reports whether structural checks should be reported for this table.
func validating(ctx interfaces.ParseContext, trace bool) bool {
	return trace && ctx.ConsistencyChecking()
}

// subStructure describes one variable length structure inside a table body.
type subStructure struct {
	Offset int
	Type   uint8
	Length int
	Data   []byte
}

// walkStructures iterates the type/length prefixed structures of a table body starting at
// offset. lengthSize is 1 or 2 depending on the table. Iteration stops after limit structures
// when limit is positive, or at the end of table otherwise. A structure with a zero length or
// one that runs past the table is reported as an error and ends the walk.
func walkStructures(ctx interfaces.ParseContext, table []byte, offset, lengthSize, limit int, name string, visit func(subStructure)) {
	headerSize := 1 + lengthSize

	for n := 0; limit <= 0 || n < limit; n++ {
		if offset >= len(table) {
			if limit > 0 {
				fields.ReportError(ctx, "%s: structure %d of %d lies outside the table", name, n+1, limit)
			}
			return
		}
		if offset+headerSize > len(table) {
			fields.ReportError(ctx, "%s: structure header at offset %d is truncated", name, offset)
			return
		}

		var length int
		if lengthSize == 1 {
			length = int(table[offset+1])
		} else {
			length = int(binary.LittleEndian.Uint16(table[offset+1:]))
		}

		if length < headerSize {
			fields.ReportError(ctx, "%s: structure at offset %d has invalid length %d", name, offset, length)
			return
		}
		if offset+length > len(table) {
			fields.ReportError(ctx, "%s: structure at offset %d (length %d) overruns the table (length %d)",
				name, offset, length, len(table))
			return
		}

		visit(subStructure{
			Offset: offset,
			Type:   table[offset],
			Length: length,
			Data:   table[offset : offset+length],
		})
		offset += length
	}
}

// checkArrayBounds validates an (offset, count) pair locating an array inside table.
// It returns false, reporting an error, when the array cannot start inside the table.
func checkArrayBounds(ctx interfaces.ParseContext, name string, table []byte, offset, count uint64, minOffset int) bool {
	if count == 0 {
		return true
	}
	if offset < uint64(minOffset) || offset >= uint64(len(table)) {
		fields.ReportError(ctx, "%s: offset %d is outside the table body [%d, %d)", name, offset, minOffset, len(table))
		return false
	}
	return true
}

func structureTitle(kind string, index int) string {
	return fmt.Sprintf("%s [%d]", kind, index)
}
