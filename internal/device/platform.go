// Package device provides the platform sources a traversal reads from: the running
// firmware through Linux exports, or a captured image described by a manifest.
package device

import (
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// Platform source names
const (
	SourceEFI   = "efi"
	SourceImage = "image"
)

// StaticPlatform serves a fixed configuration table over a memory reader
type StaticPlatform struct {
	tables []types.ConfigurationTable
	mem    io.ReaderAt
	cache  *PageCache
	closer io.Closer
}

var (
	_ interfaces.Platform = (*StaticPlatform)(nil)
	_ CacheReporter       = (*StaticPlatform)(nil)
)

// CacheReporter is implemented by platforms that read memory through a PageCache
type CacheReporter interface {
	CacheStats() (CacheStats, bool)
}

// NewStaticPlatform creates a platform. closer may be nil.
func NewStaticPlatform(tables []types.ConfigurationTable, mem io.ReaderAt, closer io.Closer) *StaticPlatform {
	p := &StaticPlatform{tables: tables, mem: mem, closer: closer}
	if cache, ok := mem.(*PageCache); ok {
		p.cache = cache
	}
	return p
}

// CacheStats returns the page cache statistics, if memory is cached
func (p *StaticPlatform) CacheStats() (CacheStats, bool) {
	if p.cache == nil {
		return CacheStats{}, false
	}
	return p.cache.Stats(), true
}

// ConfigurationTables returns the configuration table entries
func (p *StaticPlatform) ConfigurationTables() ([]types.ConfigurationTable, error) {
	return append([]types.ConfigurationTable(nil), p.tables...), nil
}

// Memory returns the physical memory reader
func (p *StaticPlatform) Memory() io.ReaderAt {
	return p.mem
}

// Close releases the memory reader
func (p *StaticPlatform) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

// OpenEFIPlatform reads the configuration table from the systab export and physical
// memory from the memory device through a page cache
func OpenEFIPlatform(fs afero.Fs, systabPath, devMemPath string) (*StaticPlatform, error) {
	tables, err := ReadSystab(fs, systabPath)
	if err != nil {
		return nil, err
	}

	mem, err := OpenDevMem(fs, devMemPath)
	if err != nil {
		return nil, err
	}

	return NewStaticPlatform(tables, NewPageCache(mem, DefaultPageCacheBytes), mem), nil
}

// SourceOptions selects and locates a platform source
type SourceOptions struct {
	Source     string
	SystabPath string
	DevMemPath string
	ImagePath  string
}

// Open opens the platform named by opts.Source
func Open(fs afero.Fs, opts SourceOptions) (*StaticPlatform, error) {
	switch opts.Source {
	case SourceEFI, "":
		return OpenEFIPlatform(fs, opts.SystabPath, opts.DevMemPath)
	case SourceImage:
		if opts.ImagePath == "" {
			return nil, fmt.Errorf("source %q needs an image manifest path", SourceImage)
		}
		return OpenImage(fs, opts.ImagePath)
	default:
		return nil, fmt.Errorf("unknown platform source %q (want %s or %s)", opts.Source, SourceEFI, SourceImage)
	}
}
