package cache

import (
	"context"
	"sync"
)

// ReferenceConfig describes one cached reference aggregate kind.
type ReferenceConfig[T any] struct {
	// Kind is the key namespace for this aggregate, e.g. "payment_method".
	Kind string

	// Key renders a value's identity as a cache key segment.
	Key func(T) string

	// Newer reports whether a should sort before b in the collection
	// snapshot (newest first, id descending in the repositories).
	Newer func(a, b T) bool
}

func (c ReferenceConfig[T]) validate() error {
	if c.Kind == "" {
		return &ConfigFieldError{Field: "Kind", Message: "is required"}
	}
	if c.Key == nil {
		return &ConfigFieldError{Field: "Key", Message: "is required"}
	}
	if c.Newer == nil {
		return &ConfigFieldError{Field: "Newer", Message: "is required"}
	}
	return nil
}

// Reference is the read-through, invalidating cache for small reference
// aggregates (statuses, types, payment methods). It maintains two
// independently populated views over the same backing store: per-id entries
// and an "all items" collection snapshot ordered newest first.
//
// Reads go through CacheService.GetOrFetch and are therefore single flight:
// concurrent cold reads of the same key share one loader call, and a loader
// failure reaches every waiter while leaving the cache empty.
//
// Cache contents are never authoritative for writes. Callers write to the
// store first and then invalidate through SetEntity/ResetEntity; a reset
// racing an in-flight load can leave the loaded snapshot in place for one
// cycle, which is the accepted staleness window for this data.
type Reference[T any] struct {
	service CacheService
	keys    KeySerializer
	config  ReferenceConfig[T]

	// mu serializes collection snapshot mutations so SetEntity's
	// read-modify-write of the "all" entry cannot interleave with another
	// SetEntity or ResetEntity.
	mu sync.Mutex
}

// NewReference builds a reference cache for one aggregate kind on top of the
// provided cache backend and key serializer.
func NewReference[T any](service CacheService, keys KeySerializer, config ReferenceConfig[T]) (*Reference[T], error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Reference[T]{service: service, keys: keys, config: config}, nil
}

// Kind returns the configured key namespace.
func (r *Reference[T]) Kind() string {
	return r.config.Kind
}

func (r *Reference[T]) allKey() string {
	return r.keys.SerializeKey(r.config.Kind, "all")
}

func (r *Reference[T]) idKey(segment string) string {
	return r.keys.SerializeKey(r.config.Kind, "id", segment)
}

// GetAll returns the collection snapshot, loading it through loader on a
// miss. The returned slice is a copy; callers may reorder or mutate it
// without affecting the cached snapshot.
func (r *Reference[T]) GetAll(ctx context.Context, loader FetchFn[[]T]) ([]T, error) {
	snapshot, err := GetOrFetch(ctx, r.service, r.allKey(), func(ctx context.Context) ([]T, error) {
		items, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return append([]T(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]T(nil), snapshot...), nil
}

// GetByID returns the entry for key, loading it through loader on a miss.
// The per-id view is independent of the collection snapshot: a hit here does
// not imply GetAll is materialized, and vice versa.
func (r *Reference[T]) GetByID(ctx context.Context, key string, loader FetchFn[T]) (T, error) {
	return GetOrFetch(ctx, r.service, r.idKey(key), loader)
}

// SetEntity inserts or replaces value in the by-id view and, when the
// collection snapshot is materialized, upserts it there too preserving
// newest-first order. Called after a successful create or update so
// subsequent reads see fresh data without a reload.
func (r *Reference[T]) SetEntity(ctx context.Context, value T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.config.Key(value)
	if err := r.service.Set(ctx, r.idKey(key), value); err != nil {
		return err
	}

	cached, ok := r.service.Get(ctx, r.allKey())
	if !ok {
		return nil
	}
	snapshot, ok := cached.([]T)
	if !ok {
		// Foreign value under our key; drop it rather than guess.
		return r.service.Delete(ctx, r.allKey())
	}

	return r.service.Set(ctx, r.allKey(), upsertOrdered(snapshot, value, key, r.config))
}

// ResetEntity drops value's by-id entry and invalidates the whole collection
// snapshot; the next GetAll reloads from the backing store. Idempotent.
func (r *Reference[T]) ResetEntity(ctx context.Context, value T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.service.Delete(ctx, r.idKey(r.config.Key(value))); err != nil {
		return err
	}
	return r.service.Delete(ctx, r.allKey())
}

// upsertOrdered returns a new slice with value replacing its previous entry
// or inserted at its ordered position. The input snapshot is not modified.
func upsertOrdered[T any](snapshot []T, value T, key string, config ReferenceConfig[T]) []T {
	out := make([]T, 0, len(snapshot)+1)
	inserted := false

	for _, item := range snapshot {
		if config.Key(item) == key {
			if !inserted {
				out = append(out, value)
				inserted = true
			}
			continue
		}
		if !inserted && config.Newer(value, item) {
			out = append(out, value)
			inserted = true
		}
		out = append(out, item)
	}
	if !inserted {
		out = append(out, value)
	}
	return out
}
