package sentimen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(0)
	_, ok := c.Get("bagus!")
	assert.False(t, ok)

	c.Set("bagus!", "bagus")
	v, ok := c.Get("bagus!")
	assert.True(t, ok)
	assert.Equal(t, "bagus", v)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(20 * time.Millisecond)
	c.Set("k", "v")
	_, ok := c.Get("k")
	assert.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := c.Get("k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
