package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSetDelete(t *testing.T) {
	c := NewTTLCache[string, int]()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 1, time.Minute)
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, got)

	c.Delete("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := NewTTLCache[string, string]()

	c.Set("k", "v", 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestZeroTTLNotStored(t *testing.T) {
	c := NewTTLCache[string, string]()

	c.Set("k", "v", 0)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestPurge(t *testing.T) {
	c := NewTTLCache[int, string]()

	c.Set(1, "a", time.Minute)
	c.Set(2, "b", time.Minute)
	c.Purge()

	_, ok := c.Get(1)
	assert.False(t, ok)
	_, ok = c.Get(2)
	assert.False(t, ok)
}
