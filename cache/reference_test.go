package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
)

// refItem is a stand-in for a reference aggregate (id + payload).
type refItem struct {
	ID   int64
	Name string
}

func newTestReference(t *testing.T) *Reference[refItem] {
	t.Helper()

	service, err := NewCacheService(DefaultConfig())
	if err != nil {
		t.Fatalf("failed to build cache service: %v", err)
	}
	ref, err := NewReference(service, NewDefaultKeySerializer(), ReferenceConfig[refItem]{
		Kind:  "ref_item",
		Key:   func(v refItem) string { return strconv.FormatInt(v.ID, 10) },
		Newer: func(a, b refItem) bool { return a.ID > b.ID },
	})
	if err != nil {
		t.Fatalf("failed to build reference cache: %v", err)
	}
	return ref
}

// countingLoader returns a collection loader that counts invocations.
func countingLoader(items []refItem, calls *atomic.Int64) FetchFn[[]refItem] {
	return func(ctx context.Context) ([]refItem, error) {
		calls.Add(1)
		return items, nil
	}
}

func failingGetByID(t *testing.T) FetchFn[refItem] {
	return func(ctx context.Context) (refItem, error) {
		t.Error("loader must not be called")
		return refItem{}, nil
	}
}

func TestReference_GetAll_SingleFlight(t *testing.T) {
	ref := newTestReference(t)
	ctx := context.Background()

	var calls atomic.Int64
	items := []refItem{{ID: 3, Name: "three"}, {ID: 2, Name: "two"}, {ID: 1, Name: "one"}}

	const waiters = 25
	start := make(chan struct{})
	var wg sync.WaitGroup
	results := make([][]refItem, waiters)
	errs := make([]error, waiters)

	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i], errs[i] = ref.GetAll(ctx, countingLoader(items, &calls))
		}(i)
	}
	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("expected exactly 1 loader call, got %d", got)
	}
	for i := 0; i < waiters; i++ {
		if errs[i] != nil {
			t.Fatalf("waiter %d failed: %v", i, errs[i])
		}
		if len(results[i]) != len(items) {
			t.Errorf("waiter %d got %d items, want %d", i, len(results[i]), len(items))
		}
	}
}

func TestReference_GetByID_SingleFlight(t *testing.T) {
	ref := newTestReference(t)
	ctx := context.Background()

	var calls atomic.Int64
	item := refItem{ID: 7, Name: "seven"}

	const waiters = 25
	start := make(chan struct{})
	var wg sync.WaitGroup
	results := make([]refItem, waiters)
	errs := make([]error, waiters)

	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i], errs[i] = ref.GetByID(ctx, "7", func(ctx context.Context) (refItem, error) {
				calls.Add(1)
				return item, nil
			})
		}(i)
	}
	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("expected exactly 1 loader call, got %d", got)
	}
	for i := 0; i < waiters; i++ {
		if errs[i] != nil {
			t.Fatalf("waiter %d failed: %v", i, errs[i])
		}
		if results[i] != item {
			t.Errorf("waiter %d got %+v, want %+v", i, results[i], item)
		}
	}
}

func TestReference_GetByID_ErrorReachesCaller(t *testing.T) {
	ref := newTestReference(t)
	ctx := context.Background()

	loadErr := errors.New("backing store down")
	_, err := ref.GetByID(ctx, "7", func(ctx context.Context) (refItem, error) {
		return refItem{}, loadErr
	})
	if !errors.Is(err, loadErr) {
		t.Errorf("expected loader error, got %v", err)
	}

	// The failure is not cached; the next read loads again.
	got, err := ref.GetByID(ctx, "7", func(ctx context.Context) (refItem, error) {
		return refItem{ID: 7, Name: "seven"}, nil
	})
	if err != nil {
		t.Fatalf("retry after failure errored: %v", err)
	}
	if got.Name != "seven" {
		t.Errorf("unexpected item after retry: %+v", got)
	}
}

func TestReference_GetAll_ErrorReachesAllWaiters(t *testing.T) {
	ref := newTestReference(t)
	ctx := context.Background()

	loadErr := errors.New("backing store down")
	var calls atomic.Int64

	const waiters = 10
	start := make(chan struct{})
	var wg sync.WaitGroup
	errs := make([]error, waiters)

	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = ref.GetAll(ctx, func(ctx context.Context) ([]refItem, error) {
				calls.Add(1)
				return nil, loadErr
			})
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < waiters; i++ {
		if !errors.Is(errs[i], loadErr) {
			t.Errorf("waiter %d: expected loader error, got %v", i, errs[i])
		}
	}

	// The failure must not be cached: the next read hits the loader again.
	var retry atomic.Int64
	if _, err := ref.GetAll(ctx, countingLoader(nil, &retry)); err != nil {
		t.Fatalf("retry after failure errored: %v", err)
	}
	if retry.Load() != 1 {
		t.Errorf("expected retry to hit the loader, calls=%d", retry.Load())
	}
}

func TestReference_GetAll_ReturnsCopy(t *testing.T) {
	ref := newTestReference(t)
	ctx := context.Background()

	var calls atomic.Int64
	items := []refItem{{ID: 2, Name: "two"}, {ID: 1, Name: "one"}}

	first, err := ref.GetAll(ctx, countingLoader(items, &calls))
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	first[0] = refItem{ID: 99, Name: "tampered"}

	second, err := ref.GetAll(ctx, countingLoader(items, &calls))
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected cached snapshot, loader calls=%d", calls.Load())
	}
	if second[0].ID != 2 {
		t.Errorf("cached snapshot was mutated through the returned slice: %+v", second[0])
	}
}

func TestReference_ViewsAreIndependent(t *testing.T) {
	ref := newTestReference(t)
	ctx := context.Background()

	// Populate only the by-id view.
	got, err := ref.GetByID(ctx, "7", func(ctx context.Context) (refItem, error) {
		return refItem{ID: 7, Name: "seven"}, nil
	})
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "seven" {
		t.Errorf("unexpected item: %+v", got)
	}

	// The collection view must still load from the backing store.
	var allCalls atomic.Int64
	if _, err := ref.GetAll(ctx, countingLoader([]refItem{{ID: 7, Name: "seven"}}, &allCalls)); err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if allCalls.Load() != 1 {
		t.Errorf("expected GetAll to load despite by-id hit, calls=%d", allCalls.Load())
	}
}

func TestReference_SetEntity_UpdatesBothViews(t *testing.T) {
	ref := newTestReference(t)
	ctx := context.Background()

	var calls atomic.Int64
	items := []refItem{{ID: 2, Name: "two"}, {ID: 1, Name: "one"}}
	if _, err := ref.GetAll(ctx, countingLoader(items, &calls)); err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}

	fresh := refItem{ID: 3, Name: "three"}
	if err := ref.SetEntity(ctx, fresh); err != nil {
		t.Fatalf("SetEntity failed: %v", err)
	}

	// Collection snapshot gains the new value at its ordered position
	// without another backing-store call.
	all, err := ref.GetAll(ctx, countingLoader(items, &calls))
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected no reload after SetEntity, calls=%d", calls.Load())
	}
	if len(all) != 3 || all[0].ID != 3 || all[1].ID != 2 || all[2].ID != 1 {
		t.Errorf("unexpected snapshot order: %+v", all)
	}

	// By-id view serves the value without a loader call.
	got, err := ref.GetByID(ctx, "3", failingGetByID(t))
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "three" {
		t.Errorf("unexpected by-id value: %+v", got)
	}
}

func TestReference_SetEntity_ReplacesInPlace(t *testing.T) {
	ref := newTestReference(t)
	ctx := context.Background()

	var calls atomic.Int64
	items := []refItem{{ID: 3, Name: "c"}, {ID: 2, Name: "b"}, {ID: 1, Name: "a"}}
	if _, err := ref.GetAll(ctx, countingLoader(items, &calls)); err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}

	if err := ref.SetEntity(ctx, refItem{ID: 2, Name: "b-renamed"}); err != nil {
		t.Fatalf("SetEntity failed: %v", err)
	}

	all, err := ref.GetAll(ctx, countingLoader(items, &calls))
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 items, got %d", len(all))
	}
	if all[1].ID != 2 || all[1].Name != "b-renamed" {
		t.Errorf("replacement lost position or value: %+v", all)
	}
}

func TestReference_SetEntity_WithoutSnapshot(t *testing.T) {
	ref := newTestReference(t)
	ctx := context.Background()

	// No GetAll has run; SetEntity must not fabricate a one-item snapshot.
	if err := ref.SetEntity(ctx, refItem{ID: 5, Name: "five"}); err != nil {
		t.Fatalf("SetEntity failed: %v", err)
	}

	var calls atomic.Int64
	all, err := ref.GetAll(ctx, countingLoader([]refItem{{ID: 5, Name: "five"}, {ID: 4, Name: "four"}}, &calls))
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected GetAll to load from the store, calls=%d", calls.Load())
	}
	if len(all) != 2 {
		t.Errorf("expected full collection from the store, got %+v", all)
	}
}

func TestReference_ResetEntity_Idempotent(t *testing.T) {
	ref := newTestReference(t)
	ctx := context.Background()

	var calls atomic.Int64
	items := []refItem{{ID: 1, Name: "one"}}
	if _, err := ref.GetAll(ctx, countingLoader(items, &calls)); err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if _, err := ref.GetByID(ctx, "1", func(ctx context.Context) (refItem, error) {
		return items[0], nil
	}); err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	// Double reset must behave exactly like a single one.
	if err := ref.ResetEntity(ctx, items[0]); err != nil {
		t.Fatalf("ResetEntity failed: %v", err)
	}
	if err := ref.ResetEntity(ctx, items[0]); err != nil {
		t.Fatalf("second ResetEntity failed: %v", err)
	}

	var idCalls atomic.Int64
	if _, err := ref.GetByID(ctx, "1", func(ctx context.Context) (refItem, error) {
		idCalls.Add(1)
		return items[0], nil
	}); err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if idCalls.Load() != 1 {
		t.Errorf("by-id entry survived reset, loader calls=%d", idCalls.Load())
	}

	if _, err := ref.GetAll(ctx, countingLoader(items, &calls)); err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("collection snapshot survived reset, loader calls=%d", calls.Load())
	}
}

func TestReference_ResetThenSet(t *testing.T) {
	ref := newTestReference(t)
	ctx := context.Background()

	value := refItem{ID: 9, Name: "nine"}
	if err := ref.ResetEntity(ctx, value); err != nil {
		t.Fatalf("ResetEntity failed: %v", err)
	}
	if err := ref.SetEntity(ctx, value); err != nil {
		t.Fatalf("SetEntity failed: %v", err)
	}

	// Reset followed by set must leave the by-id view serving the fresh
	// value, matching what a cold read from the backing store would return.
	got, err := ref.GetByID(ctx, "9", failingGetByID(t))
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != value {
		t.Errorf("expected %+v, got %+v", value, got)
	}
}

func TestNewReference_Validation(t *testing.T) {
	service, err := NewCacheService(DefaultConfig())
	if err != nil {
		t.Fatalf("failed to build cache service: %v", err)
	}
	keys := NewDefaultKeySerializer()

	tests := []struct {
		name   string
		config ReferenceConfig[refItem]
	}{
		{name: "missing kind", config: ReferenceConfig[refItem]{
			Key:   func(v refItem) string { return strconv.FormatInt(v.ID, 10) },
			Newer: func(a, b refItem) bool { return a.ID > b.ID },
		}},
		{name: "missing key func", config: ReferenceConfig[refItem]{
			Kind:  "ref_item",
			Newer: func(a, b refItem) bool { return a.ID > b.ID },
		}},
		{name: "missing newer func", config: ReferenceConfig[refItem]{
			Kind: "ref_item",
			Key:  func(v refItem) string { return strconv.FormatInt(v.ID, 10) },
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewReference(service, keys, tt.config); err == nil {
				t.Error("expected a config error")
			}
		})
	}
}
