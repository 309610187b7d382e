package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-acpiview/internal/types"
)

func TestProcessTableReportOptions(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		sigs      []string
		wantTrace []bool
		wantFound bool
	}{
		{"all", Options{Mode: types.ReportAll}, []string{"XSDT", "FACP"}, []bool{true, true}, false},
		{"selected", Options{Mode: types.ReportSelected, SelectedName: "FACP"}, []string{"XSDT", "FACP", "FACP"}, []bool{false, true, true}, true},
		{"selected absent", Options{Mode: types.ReportSelected, SelectedName: "APIC"}, []string{"XSDT"}, []bool{false}, false},
		{"table list", Options{Mode: types.ReportTableList}, []string{"XSDT", "FACP"}, []bool{false, false}, false},
		{"dump", Options{Mode: types.ReportDumpBinFile, SelectedName: "FACP"}, []string{"XSDT", "FACP"}, []bool{false, false}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewReportController(tt.opts, afero.NewMemMapFs(), &bytes.Buffer{}, nil)
			for i, s := range tt.sigs {
				got := c.ProcessTableReportOptions(types.ParseSignature(s), []byte(s))
				if got != tt.wantTrace[i] {
					t.Errorf("table %d (%s): trace = %v, want %v", i, s, got, tt.wantTrace[i])
				}
			}
			if c.SelectedTableFound() != tt.wantFound {
				t.Errorf("SelectedTableFound() = %v, want %v", c.SelectedTableFound(), tt.wantFound)
			}
		})
	}
}

func TestReportControllerTableList(t *testing.T) {
	out := &bytes.Buffer{}
	c := NewReportController(Options{Mode: types.ReportTableList}, nil, out, nil)

	for _, s := range []string{"RSDP", "XSDT", "AB"} {
		c.ProcessTableReportOptions(types.ParseSignature(s), nil)
	}

	assert.Equal(t, "\nInstalled Table(s):\n\t   1. RSDP\n\t   2. XSDT\n\t   3. AB  \n", out.String())

	out.Reset()
	c = NewReportController(Options{Mode: types.ReportTableList}, nil, out, nil)
	c.ProcessTableReportOptions(types.ParseSignature("FACP"), nil)
	assert.Equal(t, "\nInstalled Table(s):\n\t   1. FACP\n", out.String())
}

func TestReportControllerHighlight(t *testing.T) {
	out := &bytes.Buffer{}
	c := NewReportController(Options{Mode: types.ReportAll, Highlight: true}, nil, out, nil)
	c.ProcessTableReportOptions(types.ParseSignature("DSDT"), nil)

	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), " --------------- DSDT Table --------------- ")
}

func TestReportControllerDumpNumbering(t *testing.T) {
	fs := afero.NewMemMapFs()
	out := &bytes.Buffer{}
	c := NewReportController(Options{Mode: types.ReportDumpBinFile, SelectedName: "ssdt", DumpDir: "/out"}, fs, out, nil)
	require.NoError(t, fs.MkdirAll("/out", 0o755))

	c.ProcessTableReportOptions(types.SsdtSignature, []byte("first"))
	c.ProcessTableReportOptions(types.DsdtSignature, []byte("other"))
	c.ProcessTableReportOptions(types.SsdtSignature, []byte("second"))

	assert.Equal(t, []string{"/out/ssdt0000.bin", "/out/ssdt0001.bin"}, c.DumpedFiles())

	first, err := afero.ReadFile(fs, "/out/ssdt0000.bin")
	require.NoError(t, err)
	assert.Equal(t, "first", string(first))

	second, err := afero.ReadFile(fs, "/out/ssdt0001.bin")
	require.NoError(t, err)
	assert.Equal(t, "second", string(second))

	assert.Equal(t, 2, strings.Count(out.String(), "DONE."))
}

func TestReportControllerDumpReadOnly(t *testing.T) {
	out := &bytes.Buffer{}
	c := NewReportController(Options{Mode: types.ReportDumpBinFile, SelectedName: "DSDT"}, afero.NewReadOnlyFs(afero.NewMemMapFs()), out, nil)

	trace := c.ProcessTableReportOptions(types.DsdtSignature, []byte("aml"))

	assert.False(t, trace)
	assert.True(t, c.SelectedTableFound())
	assert.Empty(t, c.DumpedFiles())
	assert.Contains(t, out.String(), "acpiview: Read only media (DSDT0000.bin)")
}

func TestProbeSink(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := NewReportController(Options{Mode: types.ReportDumpBinFile, SelectedName: "FACP"}, fs, &bytes.Buffer{}, nil)

	require.NoError(t, c.ProbeSink())
	exists, err := afero.Exists(fs, "FACP0000.tmp")
	require.NoError(t, err)
	assert.False(t, exists)

	c = NewReportController(Options{Mode: types.ReportDumpBinFile, SelectedName: "FACP"}, afero.NewReadOnlyFs(fs), &bytes.Buffer{}, nil)
	assert.ErrorIs(t, c.ProbeSink(), ErrSinkNotWritable)

	c = NewReportController(Options{Mode: types.ReportDumpBinFile, SelectedName: "FACP"}, nil, &bytes.Buffer{}, nil)
	assert.ErrorIs(t, c.ProbeSink(), ErrSinkNotWritable)
}
