package device

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCacheReadAt(t *testing.T) {
	backing := make([]byte, 3*PageSize+100)
	for i := range backing {
		backing[i] = byte(i % 251)
	}
	c := NewPageCache(bytes.NewReader(backing), 0)

	tests := []struct {
		name string
		off  int64
		size int
	}{
		{"within a page", 10, 36},
		{"across pages", PageSize - 8, 16},
		{"several pages", 100, 2*PageSize + 50},
		{"tail page", 3 * PageSize, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.size)
			n, err := c.ReadAt(buf, tt.off)
			require.NoError(t, err)
			assert.Equal(t, tt.size, n)
			assert.Equal(t, backing[tt.off:tt.off+int64(tt.size)], buf)
		})
	}

	buf := make([]byte, 200)
	n, err := c.ReadAt(buf, 3*PageSize)
	assert.Equal(t, 100, n)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	_, err = c.ReadAt(buf, -1)
	assert.Error(t, err)
}

func TestPageCacheStats(t *testing.T) {
	backing := make([]byte, 2*PageSize)
	c := NewPageCache(bytes.NewReader(backing), PageSize)

	buf := make([]byte, 8)
	_, err := c.ReadAt(buf, 0)
	require.NoError(t, err)
	_, err = c.ReadAt(buf, 16)
	require.NoError(t, err)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 50.0, stats.HitRate())

	// the cache holds one page; the second page is read every time
	_, err = c.ReadAt(buf, PageSize)
	require.NoError(t, err)
	_, err = c.ReadAt(buf, PageSize)
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.Stats().Misses)
	assert.Equal(t, int64(3*PageSize), c.Stats().BytesRead)

	assert.Equal(t, 0.0, CacheStats{}.HitRate())
}
