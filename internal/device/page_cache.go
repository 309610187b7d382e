package device

import (
	"fmt"
	"io"
	"sync"
)

// PageSize is the granularity of physical memory reads through a PageCache
const PageSize = 4096

// DefaultPageCacheBytes bounds the memory held by a PageCache
const DefaultPageCacheBytes = 4 << 20

// CacheStats tracks physical memory access through a PageCache
type CacheStats struct {
	PagesRead int64 `json:"pages_read" yaml:"pages_read"`
	BytesRead int64 `json:"bytes_read" yaml:"bytes_read"`
	Hits      int64 `json:"hits" yaml:"hits"`
	Misses    int64 `json:"misses" yaml:"misses"`
}

// HitRate returns the cache hit rate as a percentage
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// PageCache reads whole pages from an underlying reader and keeps complete pages until
// maxBytes is reached. Every table is read twice during dispatch, header first.
type PageCache struct {
	r        io.ReaderAt
	maxBytes int64

	mu    sync.Mutex
	pages map[int64][]byte
	size  int64
	stats CacheStats
}

// NewPageCache wraps r. A non-positive maxBytes selects DefaultPageCacheBytes.
func NewPageCache(r io.ReaderAt, maxBytes int64) *PageCache {
	if maxBytes <= 0 {
		maxBytes = DefaultPageCacheBytes
	}
	return &PageCache{
		r:        r,
		maxBytes: maxBytes,
		pages:    make(map[int64][]byte),
	}
}

// ReadAt implements io.ReaderAt
func (c *PageCache) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative physical address %d", off)
	}

	n := 0
	for n < len(p) {
		addr := off + int64(n)
		index := addr / PageSize
		data, err := c.page(index)

		if start := int(addr - index*PageSize); start < len(data) {
			n += copy(p[n:], data[start:])
		}

		// A short page ends the readable range
		if len(data) < PageSize && n < len(p) {
			if err == nil || err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return n, err
		}
	}

	return n, nil
}

func (c *PageCache) page(index int64) ([]byte, error) {
	c.mu.Lock()
	if cached, ok := c.pages[index]; ok {
		c.stats.Hits++
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	buf := make([]byte, PageSize)
	m, err := c.r.ReadAt(buf, index*PageSize)
	buf = buf[:m]

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Misses++
	c.stats.PagesRead++
	c.stats.BytesRead += int64(m)

	if m == PageSize {
		if c.size+PageSize <= c.maxBytes {
			c.pages[index] = buf
			c.size += PageSize
		}
		return buf, nil
	}
	return buf, err
}

// Stats returns a snapshot of the access statistics
func (c *PageCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
