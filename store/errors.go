package store

import (
	"errors"
	"fmt"
)

// NotFoundError reports that no aggregate exists for the requested id.
// The presentation layer maps it to 404.
type NotFoundError struct {
	Kind string
	ID   any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v: not found", e.Kind, e.ID)
}

// ConflictError reports a version-token mismatch on update or delete: the
// aggregate was modified by another caller since the token was read. The
// caller must reload and resubmit; the store never retries or merges.
type ConflictError struct {
	Kind string
	ID   any
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %v: modified by another user, reload and retry", e.Kind, e.ID)
}

// InUseError reports a delete refused because dependent aggregates still
// reference the target. DependentKind names the referencing aggregate so the
// caller can produce a useful 409 message.
type InUseError struct {
	Kind          string
	ID            any
	DependentKind string
}

func (e *InUseError) Error() string {
	if e.DependentKind == "" {
		return fmt.Sprintf("cannot delete %s %v: still referenced", e.Kind, e.ID)
	}
	return fmt.Sprintf("cannot delete %s %v: in use by %s", e.Kind, e.ID, e.DependentKind)
}

// ValidationError reports a constraint violation surfaced by the backing
// store on write, typically a unique-name collision.
type ValidationError struct {
	Kind    string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: constraint violation: %v", e.Kind, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// StoreError wraps transient infrastructure failures (connectivity, driver
// errors) that are not one of the expected domain outcomes.
type StoreError struct {
	Op   string
	Kind string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NotFoundError anywhere in its chain.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsConflict reports whether err is a ConflictError anywhere in its chain.
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsInUse reports whether err is an InUseError anywhere in its chain.
func IsInUse(err error) bool {
	var target *InUseError
	return errors.As(err, &target)
}

// IsValidation reports whether err is a ValidationError anywhere in its chain.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
