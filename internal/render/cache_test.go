package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheHitReturnsCopy(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("k", []byte{1, 2, 3})

	img, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, img)

	// Mutating the returned slice must not poison the cache.
	img[0] = 9
	again, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, again)
}

func TestCacheMissAndExpiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)
	_, ok := c.Get("absent")
	assert.False(t, ok)

	c.Set("k", []byte("img"))
	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
}
