// Package guard implements the advisory delete checks that run before an
// aggregate referenced by other aggregates is removed. A Guard turns "this
// row is still referenced" into a clean InUseError with a useful message
// before the delete is attempted; the backing store's RESTRICT foreign keys
// remain the authoritative backstop for the narrow window between the check
// and the delete.
package guard

import (
	"context"
	"fmt"

	"github.com/coursekit/go-course-store/store"
)

// Predicate reports whether any dependent aggregate still references the
// candidate id. It is normally backed by a backing-store existence query.
type Predicate func(ctx context.Context, id any) (bool, error)

// Rule couples a dependent aggregate kind with its existence predicate:
// "the target cannot be deleted while Predicate(id) holds".
type Rule struct {
	// DependentKind names the referencing aggregate, e.g. "course_event";
	// it ends up in the InUseError message.
	DependentKind string

	InUse Predicate
}

// Guard evaluates a chain of Rules for one aggregate kind.
type Guard struct {
	kind  string
	rules []Rule
}

// New builds a guard for the named aggregate kind.
func New(kind string, rules ...Rule) (*Guard, error) {
	if kind == "" {
		return nil, fmt.Errorf("guard: aggregate kind is required")
	}
	for _, r := range rules {
		if r.DependentKind == "" || r.InUse == nil {
			return nil, fmt.Errorf("guard %s: rule needs a dependent kind and a predicate", kind)
		}
	}
	return &Guard{kind: kind, rules: rules}, nil
}

// Kind returns the guarded aggregate kind.
func (g *Guard) Kind() string {
	return g.kind
}

// EnsureDeletable evaluates every rule and returns a store.InUseError naming
// the first dependent kind observed to hold, or nil when the aggregate is
// free to delete. All rules are evaluated even after a failing one so each
// predicate's backing query gets exercised consistently; the first failure
// encountered determines the reported kind. A predicate error aborts the
// check and surfaces as a StoreError, in which case the delete must not
// proceed.
func (g *Guard) EnsureDeletable(ctx context.Context, id any) error {
	var failed *store.InUseError

	for _, rule := range g.rules {
		inUse, err := rule.InUse(ctx, id)
		if err != nil {
			return &store.StoreError{Op: "ensure deletable", Kind: g.kind, Err: err}
		}
		if inUse && failed == nil {
			failed = &store.InUseError{Kind: g.kind, ID: id, DependentKind: rule.DependentKind}
		}
	}

	if failed != nil {
		return failed
	}
	return nil
}
