package fields

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-acpiview/internal/acpitest"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

var sampleFields = []Field{
	{Name: "Byte", Length: 1, Format: FormatHex},
	{Name: "Word", Length: 2, Format: FormatDecimal},
	{Name: "Dword", Length: 4, Format: FormatHex},
	{Name: "Text", Length: 4, Format: FormatChars},
}

func TestParseDecodesAllFields(t *testing.T) {
	ctx := acpitest.NewContext()
	data := []byte{0xAB, 0x10, 0x00, 0x78, 0x56, 0x34, 0x12, 'A', 'B', 'C', 0}

	values, offset := Parse(ctx, true, 0, "Sample", data, 0, sampleFields)

	assert.Equal(t, 11, offset)
	b, _ := values.Uint("Byte")
	assert.Equal(t, uint64(0xAB), b)
	w, _ := values.Uint("Word")
	assert.Equal(t, uint64(16), w)
	d, _ := values.Uint("Dword")
	assert.Equal(t, uint64(0x12345678), d)

	out := ctx.Out.String()
	assert.Contains(t, out, "Sample")
	assert.Contains(t, out, "0x12345678")
	assert.Contains(t, out, ": 16")
	assert.Contains(t, out, ": ABC")
	assert.Zero(t, ctx.Errors)
	assert.Zero(t, ctx.Warnings)
}

func TestParseWithoutTracePrintsNothing(t *testing.T) {
	ctx := acpitest.NewContext()
	data := []byte{1, 2, 0, 3, 0, 0, 0, 'X', 'Y', 'Z', 'W'}

	values, _ := Parse(ctx, false, 0, "Sample", data, 0, sampleFields)

	assert.True(t, values.Has("Text"))
	assert.Empty(t, ctx.Out.String())
}

func TestParseTruncatedFieldWarnsOnce(t *testing.T) {
	ctx := acpitest.NewContext()
	// Dword starts at offset 3 but only 2 bytes remain.
	data := []byte{1, 2, 0, 3, 4}

	values, offset := Parse(ctx, true, 0, "Sample", data, 0, sampleFields)

	assert.Equal(t, uint32(1), ctx.Warnings)
	assert.Zero(t, ctx.Errors)
	assert.Equal(t, 3, offset)
	assert.True(t, values.Has("Word"))
	assert.False(t, values.Has("Dword"))
	assert.False(t, values.Has("Text"))
	assert.Contains(t, ctx.Out.String(), `"Dword" is truncated`)
}

func TestParseSkipsFieldsBeyondEndSilently(t *testing.T) {
	ctx := acpitest.NewContext()
	data := []byte{1, 2, 0}

	values, offset := Parse(ctx, true, 0, "", data, 0, sampleFields)

	assert.Equal(t, 3, offset)
	assert.False(t, values.Has("Dword"))
	assert.Zero(t, ctx.Warnings)
	assert.Zero(t, ctx.Errors)
}

func TestParseHonoursStartOffset(t *testing.T) {
	ctx := acpitest.NewContext()
	data := []byte{0xFF, 0xFF, 0x07}

	values, offset := Parse(ctx, false, 0, "", data, 2, sampleFields[:1])

	assert.Equal(t, 3, offset)
	v, ok := values.Uint("Byte")
	require.True(t, ok)
	assert.Equal(t, uint64(7), v)
}

func TestValidatorsRunOnlyWhenTracedAndChecking(t *testing.T) {
	fields := []Field{{Name: "Version", Length: 1, Format: FormatDecimal, Validate: ExpectUint(1)}}
	data := []byte{2}

	tests := []struct {
		name        string
		trace       bool
		consistency bool
		wantErrors  uint32
	}{
		{"traced and checking", true, true, 1},
		{"traced without checking", true, false, 0},
		{"not traced", false, true, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := acpitest.NewContext()
			ctx.Consistency = tc.consistency
			Parse(ctx, tc.trace, 0, "", data, 0, fields)
			assert.Equal(t, tc.wantErrors, ctx.Errors)
		})
	}
}

func TestExpectOneOf(t *testing.T) {
	v := ExpectOneOf(0, 3, 4)

	ctx := acpitest.NewContext()
	v(ctx, "Baud Rate", []byte{3})
	assert.Zero(t, ctx.Errors)

	v(ctx, "Baud Rate", []byte{5})
	assert.Equal(t, uint32(1), ctx.Errors)
	assert.Contains(t, ctx.Out.String(), "Baud Rate: unsupported value 5")
}

func TestExpectZeroWarns(t *testing.T) {
	ctx := acpitest.NewContext()
	v := ExpectZero()

	v(ctx, "Reserved", []byte{0, 0, 0})
	assert.Zero(t, ctx.Warnings)

	v(ctx, "Reserved", []byte{0, 1, 0})
	assert.Equal(t, uint32(1), ctx.Warnings)
	assert.Zero(t, ctx.Errors)
}

func TestGASFieldIsPrintedNested(t *testing.T) {
	ctx := acpitest.NewContext()
	gas := []byte{1, 8, 0, 1, 0x00, 0x10, 0, 0, 0, 0, 0, 0}

	Parse(ctx, true, 2, "", gas, 0, []Field{{Name: "Reset Register", Length: types.GasSize, Format: FormatGAS}})

	out := ctx.Out.String()
	assert.Contains(t, out, "Reset Register")
	assert.Contains(t, out, "Address Space ID")
	assert.Contains(t, out, "0x1000")
}

func TestFormatCharsHidesNulAndNonPrintable(t *testing.T) {
	assert.Equal(t, "AB.", formatChars([]byte{'A', 'B', 0x01, 0}))
}

func TestPrintFieldNameAlignsValueColumn(t *testing.T) {
	var sb strings.Builder
	PrintField(&sb, 2, "Length", "%d", 36)

	line := sb.String()
	assert.Equal(t, OutputFieldColumnWidth+len(" : "), strings.Index(line, "36"))
}

func TestReportErrorColours(t *testing.T) {
	ctx := acpitest.NewContext()
	ctx.Highlight = true

	ReportError(ctx, "bad %s", "thing")

	assert.Equal(t, uint32(1), ctx.Errors)
	assert.Contains(t, ctx.Out.String(), ColourRed+"ERROR: bad thing"+ColourReset)
}
