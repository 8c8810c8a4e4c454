package cache

import "context"

// Cache stores memoized preview results keyed on their input tuple
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}
