package device

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/afero"
)

// ErrUnmapped is returned when a read starts at an address no region covers
var ErrUnmapped = errors.New("physical address not mapped")

type region struct {
	base uint64
	size uint64
	r    io.ReaderAt
}

func (r region) end() uint64 { return r.base + r.size }

// MemoryImage is a sparse physical address space assembled from captured regions.
// Reads may cross from one region into an adjacent one.
type MemoryImage struct {
	regions []region
	closers []io.Closer
}

// NewMemoryImage returns an empty image
func NewMemoryImage() *MemoryImage {
	return &MemoryImage{}
}

// Map places data at base
func (m *MemoryImage) Map(base uint64, data []byte) error {
	return m.MapReader(base, uint64(len(data)), bytes.NewReader(data))
}

// MapReader places size bytes read from r at base. Regions may not overlap.
func (m *MemoryImage) MapReader(base, size uint64, r io.ReaderAt) error {
	if size == 0 {
		return fmt.Errorf("region at 0x%X is empty", base)
	}
	if base+size < base {
		return fmt.Errorf("region at 0x%X with size %d wraps the address space", base, size)
	}

	nr := region{base: base, size: size, r: r}
	for _, existing := range m.regions {
		if nr.base < existing.end() && existing.base < nr.end() {
			return fmt.Errorf("region [0x%X, 0x%X) overlaps [0x%X, 0x%X)", nr.base, nr.end(), existing.base, existing.end())
		}
	}

	m.regions = append(m.regions, nr)
	sort.Slice(m.regions, func(i, j int) bool { return m.regions[i].base < m.regions[j].base })
	return nil
}

// MapFile places the contents of the file at path at base. The file stays open until
// the image is closed.
func (m *MemoryImage) MapFile(fs afero.Fs, base uint64, path string) error {
	f, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open region file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to stat region file %s: %w", path, err)
	}

	if err := m.MapReader(base, uint64(info.Size()), f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	m.closers = append(m.closers, f)
	return nil
}

// ReadAt implements io.ReaderAt over physical addresses
func (m *MemoryImage) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative physical address %d", off)
	}

	addr := uint64(off)
	n := 0
	for n < len(p) {
		r, ok := m.find(addr)
		if !ok {
			if n == 0 {
				return 0, fmt.Errorf("%w: 0x%X", ErrUnmapped, addr)
			}
			return n, io.ErrUnexpectedEOF
		}

		chunk := p[n:]
		if avail := r.end() - addr; uint64(len(chunk)) > avail {
			chunk = chunk[:avail]
		}

		got, err := r.r.ReadAt(chunk, int64(addr-r.base))
		n += got
		addr += uint64(got)
		if got < len(chunk) {
			if err == nil || err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return n, err
		}
	}

	return n, nil
}

func (m *MemoryImage) find(addr uint64) (region, bool) {
	i := sort.Search(len(m.regions), func(i int) bool { return m.regions[i].end() > addr })
	if i < len(m.regions) && m.regions[i].base <= addr {
		return m.regions[i], true
	}
	return region{}, false
}

// Close releases every file mapped with MapFile
func (m *MemoryImage) Close() error {
	var errs []error
	for _, c := range m.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	m.closers = nil
	return errors.Join(errs...)
}
