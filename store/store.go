package store

import (
	"context"

	"github.com/google/uuid"
)

// VersionToken is the opaque concurrency stamp carried by every mutable
// aggregate. Tokens are regenerated by the store on every successful write and
// compared for equality on update/delete; the contents are never interpreted.
type VersionToken string

// NewVersionToken returns a fresh random token.
func NewVersionToken() VersionToken {
	return VersionToken(uuid.NewString())
}

// IsZero reports whether the token has not been assigned yet.
func (t VersionToken) IsZero() bool {
	return t == ""
}

// Mutator transforms the currently stored value into the value to persist.
// It must be a pure function of its input; the store may re-apply it.
type Mutator[T any] func(T) T

// Store is the persistence contract for a single aggregate kind with
// lost-update protection. Implementations must perform the token check and the
// write as one atomic backing-store operation (a conditional update clause),
// never as a read followed by a separate write.
//
// All methods report failures through the error kinds in this package:
// NotFoundError, ConflictError, InUseError, ValidationError and StoreError.
type Store[T any, ID comparable] interface {
	// Create persists a new aggregate, assigning an id and an initial
	// VersionToken when the record does not carry them, and returns the
	// stored value including the token.
	Create(ctx context.Context, record T) (T, error)

	// GetByID returns the aggregate or a NotFoundError. It has no side effects.
	GetByID(ctx context.Context, id ID) (T, error)

	// Update atomically compares the stored token against expected, applies
	// mutate to the stored value, writes a new token and returns the updated
	// aggregate. A mismatch yields a ConflictError; the caller must reload
	// and resubmit, the store never merges.
	Update(ctx context.Context, id ID, expected VersionToken, mutate Mutator[T]) (T, error)

	// Delete removes the aggregate permanently after the same token check as
	// Update. There is no soft delete.
	Delete(ctx context.Context, id ID, expected VersionToken) error

	// List returns a restartable snapshot of all aggregates ordered newest
	// first (id descending).
	List(ctx context.Context) ([]T, error)
}

// Handlers bundles the per-aggregate accessors a generic store needs to read
// and write identity and version fields without reflection. Zero columns
// default to "id" and "version_token".
type Handlers[T any, ID comparable] struct {
	// Kind names the aggregate in errors and cache keys, e.g. "course_event_type".
	Kind string

	ID       func(T) ID
	SetID    func(*T, ID)
	Token    func(T) VersionToken
	SetToken func(*T, VersionToken)

	// NewID generates ids for user-authored aggregates. When nil the backing
	// store assigns the id (serial columns for reference aggregates).
	NewID func() ID

	IDColumn    string
	TokenColumn string
}

// Normalize fills in defaulted columns and returns the handlers by value.
func (h Handlers[T, ID]) Normalize() Handlers[T, ID] {
	if h.IDColumn == "" {
		h.IDColumn = "id"
	}
	if h.TokenColumn == "" {
		h.TokenColumn = "version_token"
	}
	return h
}

// Validate reports whether the required accessors are present.
func (h Handlers[T, ID]) Validate() error {
	if h.Kind == "" {
		return &ValidationError{Kind: "handlers", Message: "Kind is required"}
	}
	if h.ID == nil || h.SetID == nil {
		return &ValidationError{Kind: h.Kind, Message: "ID and SetID handlers are required"}
	}
	if h.Token == nil || h.SetToken == nil {
		return &ValidationError{Kind: h.Kind, Message: "Token and SetToken handlers are required"}
	}
	return nil
}
