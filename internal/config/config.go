// Package config loads acpiview settings from file, environment and defaults.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/deploymenttheory/go-acpiview/internal/device"
	"github.com/deploymenttheory/go-acpiview/internal/logger"
	"github.com/deploymenttheory/go-acpiview/internal/managers/validation"
	"github.com/deploymenttheory/go-acpiview/internal/services"
)

// Highlight modes
const (
	HighlightAuto   = "auto"
	HighlightAlways = "always"
	HighlightNever  = "never"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// DefaultTimeout bounds a run until traversal starts
const DefaultTimeout = 30 * time.Second

// Config holds the effective acpiview settings
type Config struct {
	Source         string                   `mapstructure:"source" yaml:"source" json:"source"`
	SystabPath     string                   `mapstructure:"systab_path" yaml:"systab_path" json:"systab_path"`
	DevMemPath     string                   `mapstructure:"devmem_path" yaml:"devmem_path" json:"devmem_path"`
	Image          string                   `mapstructure:"image" yaml:"image" json:"image"`
	DumpDir        string                   `mapstructure:"dump_dir" yaml:"dump_dir" json:"dump_dir"`
	MaxTableLength uint32                   `mapstructure:"max_table_length" yaml:"max_table_length" json:"max_table_length"`
	MaxDepth       int                      `mapstructure:"max_depth" yaml:"max_depth" json:"max_depth"`
	Highlight      string                   `mapstructure:"highlight" yaml:"highlight" json:"highlight"`
	LogLevel       string                   `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	LogFormat      string                   `mapstructure:"log_format" yaml:"log_format" json:"log_format"`
	Output         string                   `mapstructure:"output" yaml:"output" json:"output"`
	Timeout        time.Duration            `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
	Profiles       map[string]ProfileConfig `mapstructure:"profiles" yaml:"profiles,omitempty" json:"profiles,omitempty"`

	// File is the config file that was read, if any
	File string `mapstructure:"-" yaml:"-" json:"file,omitempty"`
}

// ProfileConfig declares a mandatory table profile. Its key in Config.Profiles is the
// hexadecimal specification ID.
type ProfileConfig struct {
	Name       string   `mapstructure:"name" yaml:"name" json:"name"`
	Signatures []string `mapstructure:"signatures" yaml:"signatures" json:"signatures"`
}

// Load reads the configuration from the OS filesystem
func Load(explicitPath string) (*Config, error) {
	return LoadFs(afero.NewOsFs(), explicitPath)
}

// LoadFs reads the configuration from fs. An explicit path must exist; otherwise the
// standard locations are searched and a missing file falls back to defaults.
func LoadFs(fs afero.Fs, explicitPath string) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName("acpiview-config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.acpiview")
		v.AddConfigPath("/etc/acpiview")
	}

	// Set defaults
	v.SetDefault("source", device.SourceEFI)
	v.SetDefault("systab_path", device.DefaultSystabPath)
	v.SetDefault("devmem_path", device.DefaultDevMemPath)
	v.SetDefault("image", "")
	v.SetDefault("dump_dir", ".")
	v.SetDefault("max_table_length", services.DefaultMaxTableLength)
	v.SetDefault("max_depth", services.DefaultMaxDepth)
	v.SetDefault("highlight", HighlightNever)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", logger.FormatPretty)
	v.SetDefault("output", OutputText)
	v.SetDefault("timeout", DefaultTimeout)

	// Allow environment variables
	v.SetEnvPrefix("ACPIVIEW")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || explicitPath != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks enumerated settings and profile declarations
func (c *Config) Validate() error {
	switch c.Source {
	case device.SourceEFI, device.SourceImage:
	default:
		return fmt.Errorf("invalid source %q: want %s or %s", c.Source, device.SourceEFI, device.SourceImage)
	}

	switch c.Highlight {
	case HighlightAuto, HighlightAlways, HighlightNever:
	default:
		return fmt.Errorf("invalid highlight mode %q: want auto, always or never", c.Highlight)
	}

	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid output format %q: want text, json or yaml", c.Output)
	}

	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.MaxTableLength < 36 {
		return fmt.Errorf("max_table_length must be at least 36, got %d", c.MaxTableLength)
	}

	_, err := c.MandatoryProfiles()
	return err
}

// MandatoryProfiles converts the configured profiles, ordered by ID
func (c *Config) MandatoryProfiles() ([]validation.Profile, error) {
	profiles := make([]validation.Profile, 0, len(c.Profiles))
	for key, p := range c.Profiles {
		id, err := ParseSpecID(key)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", key, err)
		}
		if len(p.Signatures) == 0 {
			return nil, fmt.Errorf("profile %q lists no signatures", key)
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("Profile 0x%X", id)
		}
		profiles = append(profiles, validation.NewProfile(id, name, p.Signatures...))
	}

	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })
	return profiles, nil
}

// ParseSpecID parses a hexadecimal specification ID with or without a 0x prefix
func ParseSpecID(s string) (uint64, error) {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	lower = strings.TrimPrefix(lower, "0x")
	if lower == "" {
		return 0, fmt.Errorf("invalid specification ID %q", s)
	}

	id, err := strconv.ParseUint(lower, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid specification ID %q: %w", s, err)
	}
	return id, nil
}

// HighlightEnabled resolves the highlight mode for out. Auto enables colours only when out
// is a terminal.
func (c *Config) HighlightEnabled(out *os.File) bool {
	switch c.Highlight {
	case HighlightAlways:
		return true
	case HighlightAuto:
		return out != nil && term.IsTerminal(int(out.Fd()))
	default:
		return false
	}
}
