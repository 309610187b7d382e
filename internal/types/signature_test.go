package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSignature_CaseFolding(t *testing.T) {
	names := []string{"xsdt", "facp", "apic", "dsdt", "mcfg", "gtdt", "spcr", "dbg2"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, ParseSignature(strings.ToUpper(name)), ParseSignature(name))
		})
	}
}

func TestParseSignature_MixedCaseRoundTrip(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"XsDt", "XSDT"},
		{"facp", "FACP"},
		{"Dbg2", "DBG2"},
		{"ssdt", "SSDT"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSignature(tt.input).String())
		})
	}
}

func TestParseSignature_ZeroPadding(t *testing.T) {
	sig := ParseSignature("ds")
	b := sig.Bytes()

	assert.Equal(t, [SignatureSize]byte{'D', 'S', 0, 0}, b)
	assert.Equal(t, "DS", sig.String())
	assert.Equal(t, sig, ParseSignature("DS"), "padding must be deterministic")
	assert.Equal(t, Signature(0), ParseSignature(""))
}

func TestParseSignature_IgnoresExtraCharacters(t *testing.T) {
	assert.Equal(t, ParseSignature("FACP"), ParseSignature("facpXYZ"))
	assert.Equal(t, "FACP", ParseSignature("facp-and-more").String())
}

func TestParseSignature_NonLetters(t *testing.T) {
	// Digits and punctuation pass through unchanged.
	assert.Equal(t, "DBG2", ParseSignature("dbg2").String())
	assert.Equal(t, "A_1!", ParseSignature("a_1!").String())
}

func TestSignatureFromBytes(t *testing.T) {
	assert.Equal(t, XsdtSignature, SignatureFromBytes([]byte("XSDT\x24\x00\x00\x00")))
	assert.Equal(t, Signature(0), SignatureFromBytes([]byte("XS")))
}

func TestSignature_MatchesTableLayout(t *testing.T) {
	// The first character is stored in the least significant byte.
	assert.Equal(t, Signature(0x54445358), XsdtSignature)
}

func TestReportMode_String(t *testing.T) {
	assert.Equal(t, "all", ReportAll.String())
	assert.Equal(t, "selected", ReportSelected.String())
	assert.Equal(t, "table-list", ReportTableList.String())
	assert.Equal(t, "dump", ReportDumpBinFile.String())
	assert.Equal(t, "unknown(9)", ReportMode(9).String())

	assert.True(t, ReportSelected.RequiresSelection())
	assert.True(t, ReportDumpBinFile.RequiresSelection())
	assert.False(t, ReportAll.RequiresSelection())
	assert.False(t, ReportTableList.RequiresSelection())
}
