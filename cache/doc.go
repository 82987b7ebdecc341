// Package cache provides the read-through caching layer for reference
// aggregates: the cache service contract, key serialization, and the
// Reference type that maintains per-id and collection views of one
// aggregate kind.
//
// # Overview
//
// The package exports three main pieces:
//
//   - CacheService: a generic single-flight cache contract. Concurrent
//     GetOrFetch calls for the same key share one loader invocation, a
//     loader error reaches every waiter, and failed loads are never cached.
//   - KeySerializer: builds stable, prefix-invalidatable cache keys from a
//     namespace and key segments.
//   - Reference: the per-kind cache used for lookup data (statuses, types,
//     payment methods). It keeps a by-id view and a newest-first collection
//     snapshot, both loaded lazily and invalidated explicitly after writes.
//
// The default CacheService implementation is backed by sturdyc and built
// through NewCacheService; see Config for the tuning knobs.
//
// # Basic Usage
//
//	service, err := cache.NewCacheService(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	ref, err := cache.NewReference(service, cache.NewDefaultKeySerializer(), cache.ReferenceConfig[PaymentMethod]{
//		Kind:  "payment_method",
//		Key:   func(v PaymentMethod) string { return strconv.FormatInt(v.ID, 10) },
//		Newer: func(a, b PaymentMethod) bool { return a.ID > b.ID },
//	})
//
// Reads go through GetAll and GetByID with the backing store as loader.
// After a successful store write the caller invalidates with ResetEntity
// and optionally repopulates with SetEntity; the cache itself is never the
// source of truth.
//
// # Key Serialization Strategy
//
// The default serializer produces keys like "payment_method::id::42" and
// "payment_method::all". The namespace stays literal after sanitization so
// DeleteByPrefix(namespace) drops every view of one aggregate kind; longer
// segments are replaced by an xxhash digest to keep keys acceptable to
// external backends.
//
// Custom KeySerializer implementations are useful when keys must survive
// process restarts in a different format or carry extra tenancy segments.
//
// # Consistency Model
//
// Cached values may lag the backing store by at most one invalidation
// cycle: a reset racing an in-flight load can leave the loaded snapshot in
// place until the next write or TTL expiry. Version tokens are preserved
// verbatim in cached values, so an update submitted with a token read from
// the cache behaves exactly like one read from the store.
package cache
