package device

import (
	"fmt"

	"github.com/spf13/afero"
)

// DefaultDevMemPath is the Linux physical memory device
const DefaultDevMemPath = "/dev/mem"

// DevMem provides read access to physical memory through a memory device file, where
// file offsets are physical addresses
type DevMem struct {
	file afero.File
	path string
}

// OpenDevMem opens the memory device at path read-only
func OpenDevMem(fs afero.Fs, path string) (*DevMem, error) {
	if path == "" {
		path = DefaultDevMemPath
	}

	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open physical memory device %s: %w", path, err)
	}

	return &DevMem{file: file, path: path}, nil
}

// ReadAt implements io.ReaderAt over physical addresses
func (d *DevMem) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, fmt.Errorf("%s: negative physical address %d", d.path, off)
	}
	return d.file.ReadAt(p, off)
}

// Close closes the device file
func (d *DevMem) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
