package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-acpiview/internal/types"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFs(afero.NewMemMapFs(), "")
	require.NoError(t, err)

	assert.Equal(t, "efi", cfg.Source)
	assert.Equal(t, "/sys/firmware/efi/systab", cfg.SystabPath)
	assert.Equal(t, "/dev/mem", cfg.DevMemPath)
	assert.Equal(t, ".", cfg.DumpDir)
	assert.Equal(t, uint32(1<<20), cfg.MaxTableLength)
	assert.Equal(t, 8, cfg.MaxDepth)
	assert.Equal(t, HighlightNever, cfg.Highlight)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.Equal(t, OutputText, cfg.Output)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.File)
	assert.False(t, cfg.HighlightEnabled(nil))
}

func TestLoadExplicitFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `
source: image
image: /captures/platform.yaml
max_depth: 4
highlight: always
output: json
timeout: 5s
profiles:
  "0x20000":
    name: Example Server
    signatures: [FACP, APIC, MCFG]
  "10000":
    name: SBBR 1.0 without debug port
    signatures: [DSDT, FACP, APIC, GTDT, SPCR]
`
	require.NoError(t, afero.WriteFile(fs, "/etc/custom.yaml", []byte(content), 0o644))

	cfg, err := LoadFs(fs, "/etc/custom.yaml")
	require.NoError(t, err)

	assert.Equal(t, "image", cfg.Source)
	assert.Equal(t, "/captures/platform.yaml", cfg.Image)
	assert.Equal(t, 4, cfg.MaxDepth)
	assert.Equal(t, OutputJSON, cfg.Output)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "/etc/custom.yaml", cfg.File)
	assert.True(t, cfg.HighlightEnabled(nil))

	profiles, err := cfg.MandatoryProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, types.SpecArmSbbr10, profiles[0].ID)
	assert.Equal(t, "SBBR 1.0 without debug port", profiles[0].Name)
	assert.Len(t, profiles[0].Signatures, 5)
	assert.Equal(t, uint64(0x20000), profiles[1].ID)
	assert.Equal(t, types.McfgSignature, profiles[1].Signatures[2])
}

func TestLoadSearchPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/acpiview/acpiview-config.yaml", []byte("dump_dir: /var/tmp\n"), 0o644))

	cfg, err := LoadFs(fs, "")
	require.NoError(t, err)
	assert.Equal(t, "/var/tmp", cfg.DumpDir)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("ACPIVIEW_OUTPUT", "yaml")

	cfg, err := LoadFs(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Equal(t, OutputYAML, cfg.Output)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad source", "source: network\n"},
		{"bad highlight", "highlight: sometimes\n"},
		{"bad output", "output: xml\n"},
		{"zero depth", "max_depth: 0\n"},
		{"tiny table bound", "max_table_length: 8\n"},
		{"negative timeout", "timeout: -1s\n"},
		{"bad profile id", "profiles:\n  zz:\n    signatures: [FACP]\n"},
		{"empty profile", "profiles:\n  \"0x30000\":\n    name: Empty\n"},
		{"not yaml", "source: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/cfg.yaml", []byte(tt.content), 0o644))

			_, err := LoadFs(fs, "/cfg.yaml")
			assert.Error(t, err)
		})
	}

	_, err := LoadFs(afero.NewMemMapFs(), "/missing.yaml")
	assert.Error(t, err, "explicit path must exist")
}

func TestParseSpecID(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{"0x10000", 0x10000, false},
		{"10001", 0x10001, false},
		{"0X10002", 0x10002, false},
		{" 0x1 ", 1, false},
		{"0x", 0, true},
		{"", 0, true},
		{"xyz", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseSpecID(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSpecID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSpecID(%q) = 0x%X, want 0x%X", tt.input, got, tt.want)
		}
	}
}
