package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-acpiview/internal/acpitest"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

func TestDecodeStandardHeader(t *testing.T) {
	table := acpitest.Generic("HPET", 20)

	hdr, ok := decodeStandardHeader(table)
	require.True(t, ok)

	assert.Equal(t, types.HpetSignature, hdr.Signature)
	assert.Equal(t, uint32(56), hdr.Length)
	assert.Equal(t, uint8(1), hdr.Revision)
	assert.Equal(t, "GOACPI", string(hdr.OemID[:]))
	assert.Equal(t, "TESTTBL ", string(hdr.OemTableID[:]))
}

func TestDecodeStandardHeaderShort(t *testing.T) {
	_, ok := decodeStandardHeader(make([]byte, 20))
	assert.False(t, ok)
}

func TestParseStandardHeaderMatchesDecode(t *testing.T) {
	ctx := acpitest.NewContext()
	table := acpitest.Generic("SPCR", 44)

	parsed, offset := ParseStandardHeader(ctx, true, table)
	decoded, _ := decodeStandardHeader(table)

	assert.Equal(t, types.SdtHeaderSize, offset)
	assert.Equal(t, decoded, parsed)
	assert.Contains(t, ctx.Out.String(), "Oem Table ID")
}

func TestVerifyChecksum(t *testing.T) {
	table := acpitest.Generic("MCFG", 8)

	ctx := acpitest.NewContext()
	assert.True(t, VerifyChecksum(ctx, true, "Checksum", table))
	assert.Zero(t, ctx.Errors)
	assert.Contains(t, ctx.Out.String(), "OK")

	ctx = acpitest.NewContext()
	assert.False(t, VerifyChecksum(ctx, false, "Checksum", acpitest.Corrupt(table)))
	assert.Equal(t, uint32(1), ctx.Errors)
}

func TestChecksumOfFixtureIsZero(t *testing.T) {
	assert.Zero(t, Checksum(acpitest.RSDP(2, 0x1000)))
	assert.Zero(t, Checksum(acpitest.RSDP(2, 0x1000)[:types.RsdpV1Size]))
}
