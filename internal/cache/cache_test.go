package cache

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(4)

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "a", "1"))
	val, ok := c.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, "1", val)

	require.NoError(t, c.Set(ctx, "a", "2"))
	val, _ = c.Get(ctx, "a")
	assert.Equal(t, "2", val)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)

	require.NoError(t, c.Set(ctx, "a", "1"))
	require.NoError(t, c.Set(ctx, "b", "2"))
	require.NoError(t, c.Set(ctx, "c", "3"))

	_, ok := c.Get(ctx, "a")
	assert.False(t, ok, "oldest key should be evicted")
	_, ok = c.Get(ctx, "c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestMemoryCache_DefaultCapacity(t *testing.T) {
	c := NewMemoryCache(0)
	assert.Equal(t, DefaultMemoryCapacity, c.capacity)
}

func TestMemoryCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(64)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (i*100+j)%80)
				_ = c.Set(ctx, key, "v")
				c.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 64)
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("FDGO_REDIS_ADDR")
	if addr == "" {
		t.Skip("FDGO_REDIS_ADDR not set")
	}

	ctx := context.Background()
	c := NewRedisCache(addr, "fdgo-test:", time.Minute)
	defer c.Close()
	require.NoError(t, c.Ping(ctx))

	require.NoError(t, c.Set(ctx, "k", "v"))
	val, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", val)
}
