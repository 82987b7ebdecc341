package consistency

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/coursekit/go-course-store/cache"
	"github.com/coursekit/go-course-store/guard"
	"github.com/coursekit/go-course-store/store"
)

// Coordinator composes the versioned store, the delete guard and the
// reference cache into the operation shape application services call. The
// store is always the source of truth: every write goes to the store first
// and the cache is only touched after the write committed.
//
// The cache and the guard are both optional. User-authored aggregates
// (courses, registrations) run without a cache; aggregates nothing references
// run without a guard.
type Coordinator[T any, ID comparable] struct {
	store  store.Store[T, ID]
	guard  *guard.Guard
	cache  *cache.Reference[T]
	logger *zap.Logger
}

// Option configures a Coordinator.
type Option[T any, ID comparable] func(*Coordinator[T, ID])

// WithGuard installs the delete guard evaluated before destructive writes.
func WithGuard[T any, ID comparable](g *guard.Guard) Option[T, ID] {
	return func(c *Coordinator[T, ID]) { c.guard = g }
}

// WithCache installs the reference cache consulted on reads and invalidated
// after writes. Only reference/lookup aggregates should carry one.
func WithCache[T any, ID comparable](r *cache.Reference[T]) Option[T, ID] {
	return func(c *Coordinator[T, ID]) { c.cache = r }
}

// WithLogger installs the logger used for degraded cache paths. Defaults to
// a nop logger.
func WithLogger[T any, ID comparable](l *zap.Logger) Option[T, ID] {
	return func(c *Coordinator[T, ID]) { c.logger = l }
}

// New builds a coordinator around the given store.
func New[T any, ID comparable](s store.Store[T, ID], opts ...Option[T, ID]) (*Coordinator[T, ID], error) {
	if s == nil {
		return nil, fmt.Errorf("consistency: store is required")
	}
	c := &Coordinator[T, ID]{store: s, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Create persists the aggregate and, for cached kinds, refreshes the cache
// with the stored value. The reset before the set clears any stale
// collection snapshot ordering before the fresh value is re-inserted.
func (c *Coordinator[T, ID]) Create(ctx context.Context, record T) (T, error) {
	created, err := c.store.Create(ctx, record)
	if err != nil {
		return created, err
	}
	c.refreshCache(ctx, "create", created)
	return created, nil
}

// Update performs the token-guarded store update and refreshes the cache on
// success. A ConflictError propagates unchanged with the cache untouched,
// since nothing was persisted.
func (c *Coordinator[T, ID]) Update(ctx context.Context, id ID, expected store.VersionToken, mutate store.Mutator[T]) (T, error) {
	updated, err := c.store.Update(ctx, id, expected, mutate)
	if err != nil {
		return updated, err
	}
	c.refreshCache(ctx, "update", updated)
	return updated, nil
}

// Delete runs the guard, performs the token-guarded store delete, and then
// drops the aggregate from the cache. When the guard refuses, neither the
// store nor the cache is touched.
func (c *Coordinator[T, ID]) Delete(ctx context.Context, id ID, expected store.VersionToken) error {
	if c.guard != nil {
		if err := c.guard.EnsureDeletable(ctx, id); err != nil {
			return err
		}
	}

	// The cache key derives from the value, so snapshot it before the row
	// disappears. Cached kinds only; plain aggregates skip the extra read.
	var deleted T
	if c.cache != nil {
		var err error
		if deleted, err = c.store.GetByID(ctx, id); err != nil {
			return err
		}
	}

	if err := c.store.Delete(ctx, id, expected); err != nil {
		return err
	}

	if c.cache != nil {
		if err := c.cache.ResetEntity(ctx, deleted); err != nil {
			c.logger.Warn("cache reset after delete failed",
				zap.String("kind", c.cache.Kind()),
				zap.Any("id", id),
				zap.Error(err))
		}
	}
	return nil
}

// GetByID reads through the cache when one is configured, with the store as
// loader, and goes straight to the store otherwise.
func (c *Coordinator[T, ID]) GetByID(ctx context.Context, id ID) (T, error) {
	if c.cache == nil {
		return c.store.GetByID(ctx, id)
	}
	return c.cache.GetByID(ctx, fmt.Sprint(id), func(ctx context.Context) (T, error) {
		return c.store.GetByID(ctx, id)
	})
}

// List returns the newest-first snapshot, through the cache for cached kinds.
func (c *Coordinator[T, ID]) List(ctx context.Context) ([]T, error) {
	if c.cache == nil {
		return c.store.List(ctx)
	}
	return c.cache.GetAll(ctx, func(ctx context.Context) ([]T, error) {
		return c.store.List(ctx)
	})
}

// refreshCache applies the reset-then-set discipline after a committed write.
// Cache failures degrade to eventual consistency (the TTL and the next reload
// repair them), so they are logged, never surfaced.
func (c *Coordinator[T, ID]) refreshCache(ctx context.Context, op string, value T) {
	if c.cache == nil {
		return
	}
	if err := c.cache.ResetEntity(ctx, value); err != nil {
		c.logger.Warn("cache reset failed",
			zap.String("kind", c.cache.Kind()),
			zap.String("op", op),
			zap.Error(err))
		return
	}
	if err := c.cache.SetEntity(ctx, value); err != nil {
		c.logger.Warn("cache set failed",
			zap.String("kind", c.cache.Kind()),
			zap.String("op", op),
			zap.Error(err))
	}
}
