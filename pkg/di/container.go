package di

import (
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/coursekit/go-course-store/cache"
	"github.com/coursekit/go-course-store/consistency"
	"github.com/coursekit/go-course-store/guard"
	"github.com/coursekit/go-course-store/internal/storeinfra"
	"github.com/coursekit/go-course-store/store"
)

// Container wires the shared pieces every aggregate coordinator needs: the
// bun database handle, the singleton cache service, the key serializer and
// the logger. The cache is explicitly constructed and lifetime-scoped here,
// never package-global state.
type Container struct {
	db            bun.IDB
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	logger        *zap.Logger
	config        cache.Config
}

// NewContainer creates a DI container around the database handle with the
// provided cache configuration. Pass a nil logger to run silent.
func NewContainer(db bun.IDB, cfg cache.Config, logger *zap.Logger) (*Container, error) {
	cacheService, err := cache.NewCacheService(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Container{
		db:            db,
		cacheService:  cacheService,
		keySerializer: cache.NewDefaultKeySerializer(),
		logger:        logger,
		config:        cfg,
	}, nil
}

// NewContainerWithDefaults creates a container using the default cache
// configuration and a nop logger.
func NewContainerWithDefaults(db bun.IDB) (*Container, error) {
	return NewContainer(db, cache.DefaultConfig(), nil)
}

// DB returns the database handle the container was built around.
func (c *Container) DB() bun.IDB { return c.db }

// CacheService returns the singleton cache service instance.
func (c *Container) CacheService() cache.CacheService { return c.cacheService }

// KeySerializer returns the singleton key serializer instance.
func (c *Container) KeySerializer() cache.KeySerializer { return c.keySerializer }

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger { return c.logger }

// Config returns a copy of the cache configuration used by this container.
func (c *Container) Config() cache.Config { return c.config }

// NewStore creates the bun-backed versioned store for one aggregate kind.
// Since Go methods cannot have type parameters, the factories below are
// package-level functions taking the container as their first argument.
func NewStore[T any, ID comparable](container *Container, handlers store.Handlers[T, ID]) (store.Store[T, ID], error) {
	return storeinfra.NewBunStore(container.db, handlers)
}

// NewReference creates a reference cache for one aggregate kind on the
// container's shared cache service.
func NewReference[T any](container *Container, cfg cache.ReferenceConfig[T]) (*cache.Reference[T], error) {
	return cache.NewReference(container.cacheService, container.keySerializer, cfg)
}

// NewCoordinator assembles the full consistency surface for one aggregate
// kind: bun store, optional delete guard, optional reference cache.
// Pass a nil guard for kinds nothing references, and a nil cache config for
// user-authored kinds that should not be cached.
func NewCoordinator[T any, ID comparable](
	container *Container,
	handlers store.Handlers[T, ID],
	g *guard.Guard,
	cacheConfig *cache.ReferenceConfig[T],
) (*consistency.Coordinator[T, ID], error) {
	st, err := NewStore(container, handlers)
	if err != nil {
		return nil, err
	}

	opts := []consistency.Option[T, ID]{
		consistency.WithLogger[T, ID](container.logger),
	}
	if g != nil {
		opts = append(opts, consistency.WithGuard[T, ID](g))
	}
	if cacheConfig != nil {
		ref, err := NewReference(container, *cacheConfig)
		if err != nil {
			return nil, err
		}
		opts = append(opts, consistency.WithCache[T, ID](ref))
	}

	return consistency.New(st, opts...)
}
