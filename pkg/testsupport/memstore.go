// Package testsupport provides shared fakes for package tests and consumers:
// most importantly an in-memory store.Store with real compare-and-swap
// semantics, so concurrency behaviour can be tested without a database.
package testsupport

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/coursekit/go-course-store/store"
)

// Interface assertion to ensure MemoryStore implements store.Store
var _ store.Store[any, string] = (*MemoryStore[any, string])(nil)

type memEntry[T any] struct {
	record T
	seq    uint64
}

// MemoryStore is an in-memory store.Store backed by a concurrent map. The
// token check and the write happen inside a single Compute callback, so the
// lost-update guarantee holds under concurrent access exactly like the
// conditional UPDATE of the bun store.
//
// When Handlers.NewID is nil the store assigns int64 serials; using it that
// way with a non-int64 id type is a programming error and panics.
type MemoryStore[T any, ID comparable] struct {
	handlers store.Handlers[T, ID]
	items    *xsync.MapOf[ID, memEntry[T]]
	seq      atomic.Uint64
	serial   atomic.Int64

	mu     sync.Mutex
	forced error
}

// NewMemoryStore builds an empty in-memory store for one aggregate kind.
func NewMemoryStore[T any, ID comparable](handlers store.Handlers[T, ID]) (*MemoryStore[T, ID], error) {
	handlers = handlers.Normalize()
	if err := handlers.Validate(); err != nil {
		return nil, err
	}
	return &MemoryStore[T, ID]{
		handlers: handlers,
		items:    xsync.NewMapOf[ID, memEntry[T]](),
	}, nil
}

// FailWith makes every subsequent operation return err (wrapped as a
// StoreError) until called again with nil. Used to test degraded paths.
func (s *MemoryStore[T, ID]) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced = err
}

func (s *MemoryStore[T, ID]) forcedError(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forced != nil {
		return &store.StoreError{Op: op, Kind: s.handlers.Kind, Err: s.forced}
	}
	return nil
}

// Len reports the number of stored aggregates.
func (s *MemoryStore[T, ID]) Len() int {
	return s.items.Size()
}

func (s *MemoryStore[T, ID]) newID() ID {
	if s.handlers.NewID != nil {
		return s.handlers.NewID()
	}
	return any(s.serial.Add(1)).(ID)
}

func (s *MemoryStore[T, ID]) Create(ctx context.Context, record T) (T, error) {
	var zero T
	if err := s.forcedError("create"); err != nil {
		return zero, err
	}

	var zeroID ID
	if s.handlers.ID(record) == zeroID {
		s.handlers.SetID(&record, s.newID())
	}
	if s.handlers.Token(record).IsZero() {
		s.handlers.SetToken(&record, store.NewVersionToken())
	}

	id := s.handlers.ID(record)
	if _, loaded := s.items.LoadOrStore(id, memEntry[T]{record: record, seq: s.seq.Add(1)}); loaded {
		return zero, &store.ValidationError{Kind: s.handlers.Kind, Message: "duplicate id"}
	}
	return record, nil
}

func (s *MemoryStore[T, ID]) GetByID(ctx context.Context, id ID) (T, error) {
	var zero T
	if err := s.forcedError("get"); err != nil {
		return zero, err
	}

	entry, ok := s.items.Load(id)
	if !ok {
		return zero, &store.NotFoundError{Kind: s.handlers.Kind, ID: id}
	}
	return entry.record, nil
}

func (s *MemoryStore[T, ID]) Update(ctx context.Context, id ID, expected store.VersionToken, mutate store.Mutator[T]) (T, error) {
	var zero T
	if err := s.forcedError("update"); err != nil {
		return zero, err
	}

	var result T
	var outcome error
	s.items.Compute(id, func(old memEntry[T], loaded bool) (memEntry[T], bool) {
		if !loaded {
			outcome = &store.NotFoundError{Kind: s.handlers.Kind, ID: id}
			return old, true
		}
		if s.handlers.Token(old.record) != expected {
			outcome = &store.ConflictError{Kind: s.handlers.Kind, ID: id}
			return old, false
		}
		updated := mutate(old.record)
		s.handlers.SetID(&updated, id)
		s.handlers.SetToken(&updated, store.NewVersionToken())
		result = updated
		return memEntry[T]{record: updated, seq: old.seq}, false
	})
	if outcome != nil {
		return zero, outcome
	}
	return result, nil
}

func (s *MemoryStore[T, ID]) Delete(ctx context.Context, id ID, expected store.VersionToken) error {
	if err := s.forcedError("delete"); err != nil {
		return err
	}

	var outcome error
	s.items.Compute(id, func(old memEntry[T], loaded bool) (memEntry[T], bool) {
		if !loaded {
			outcome = &store.NotFoundError{Kind: s.handlers.Kind, ID: id}
			return old, true
		}
		if s.handlers.Token(old.record) != expected {
			outcome = &store.ConflictError{Kind: s.handlers.Kind, ID: id}
			return old, false
		}
		return old, true
	})
	return outcome
}

func (s *MemoryStore[T, ID]) List(ctx context.Context) ([]T, error) {
	if err := s.forcedError("list"); err != nil {
		return nil, err
	}

	var entries []memEntry[T]
	s.items.Range(func(_ ID, entry memEntry[T]) bool {
		entries = append(entries, entry)
		return true
	})
	// Newest first, matching the id-descending projection of the bun store.
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })

	records := make([]T, len(entries))
	for i, entry := range entries {
		records[i] = entry.record
	}
	return records, nil
}
