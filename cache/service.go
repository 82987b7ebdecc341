package cache

import (
	"context"
	"errors"
)

// ErrInvalidResultType is returned when a cached value cannot be converted to
// the type the caller asked for. It indicates two callers sharing one key
// with different types, which is a programming error.
var ErrInvalidResultType = errors.New("cache: cached value has unexpected type")

// KeySerializer builds a cache key from a namespace and key segments.
// Implementations must produce stable keys across calls.
type KeySerializer interface {
	SerializeKey(namespace string, segments ...string) string
}

// FetchFn is the loader signature used on a cache miss: the actual
// backing-store call, honoring the provided context.
type FetchFn[T any] func(ctx context.Context) (T, error)

// CacheService exposes the operations the reference cache needs from a cache
// backend. GetOrFetch must collapse concurrent loads for the same key into a
// single backend call (single flight), propagate a loader failure to every
// waiter, and cache nothing on failure.
type CacheService interface {
	GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error)
	Get(ctx context.Context, key string) (any, bool)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// GetOrFetch is the type-safe wrapper over CacheService.GetOrFetch.
func GetOrFetch[T any](ctx context.Context, service CacheService, key string, fetch FetchFn[T]) (T, error) {
	var zero T
	result, err := service.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	value, ok := result.(T)
	if !ok {
		return zero, ErrInvalidResultType
	}
	return value, nil
}
