package cache

import (
	"context"
	"sync"
)

// DefaultMemoryCapacity bounds the in-memory cache when no size is given
const DefaultMemoryCapacity = 1024

// MemoryCache is a bounded, goroutine-safe in-memory Cache. When full, the
// oldest inserted key is evicted.
type MemoryCache struct {
	mu       sync.Mutex
	capacity int
	data     map[string]string
	order    []string
}

// NewMemoryCache creates a cache holding at most capacity entries
func NewMemoryCache(capacity int) *MemoryCache {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryCache{
		capacity: capacity,
		data:     make(map[string]string, capacity),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	val, ok := m.data[key]
	return val, ok
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		if len(m.order) >= m.capacity {
			oldest := m.order[0]
			m.order = m.order[1:]
			delete(m.data, oldest)
		}
		m.order = append(m.order, key)
	}
	m.data[key] = value
	return nil
}

// Len returns the number of cached entries
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
