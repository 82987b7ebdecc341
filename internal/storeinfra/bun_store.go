package storeinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/coursekit/go-course-store/store"
)

// Interface assertion to ensure BunStore implements store.Store
var _ store.Store[any, string] = (*BunStore[any, string])(nil)

// BunStore is the bun-backed implementation of store.Store. The version-token
// check and the write are issued as a single conditional statement
// (UPDATE/DELETE ... WHERE id = ? AND version_token = ?), so the backing store
// linearizes concurrent writes to the same aggregate: exactly one caller with
// a given observed token wins, all others get a ConflictError.
type BunStore[T any, ID comparable] struct {
	db       bun.IDB
	handlers store.Handlers[T, ID]
}

// NewBunStore builds a store for one aggregate kind. The handlers supply
// typed access to the id and token fields; see store.Handlers.
func NewBunStore[T any, ID comparable](db bun.IDB, handlers store.Handlers[T, ID]) (*BunStore[T, ID], error) {
	handlers = handlers.Normalize()
	if err := handlers.Validate(); err != nil {
		return nil, err
	}
	return &BunStore[T, ID]{db: db, handlers: handlers}, nil
}

// Create persists a new aggregate. Ids are generated through Handlers.NewID
// when configured (user-authored aggregates); otherwise the insert relies on
// the backing store's serial column and the assigned id is read back via
// RETURNING. The initial version token is always assigned here.
func (s *BunStore[T, ID]) Create(ctx context.Context, record T) (T, error) {
	var zero T
	var zeroID ID

	if s.handlers.NewID != nil && s.handlers.ID(record) == zeroID {
		s.handlers.SetID(&record, s.handlers.NewID())
	}
	if s.handlers.Token(record).IsZero() {
		s.handlers.SetToken(&record, store.NewVersionToken())
	}

	if _, err := s.db.NewInsert().Model(&record).Returning("*").Exec(ctx); err != nil {
		return zero, s.translate("create", s.handlers.ID(record), err)
	}
	return record, nil
}

// GetByID returns the stored aggregate or a NotFoundError.
func (s *BunStore[T, ID]) GetByID(ctx context.Context, id ID) (T, error) {
	var record T
	err := s.db.NewSelect().
		Model(&record).
		Where("? = ?", bun.Ident(s.handlers.IDColumn), id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		var zero T
		return zero, s.translate("get", id, err)
	}
	return record, nil
}

// Update loads the current row, applies mutate, and writes the result guarded
// by the expected token. The load only feeds the mutator; the authoritative
// token check happens inside the conditional UPDATE itself, so an interleaved
// write between the load and the update still fails cleanly.
func (s *BunStore[T, ID]) Update(ctx context.Context, id ID, expected store.VersionToken, mutate store.Mutator[T]) (T, error) {
	var zero T

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if s.handlers.Token(current) != expected {
		return zero, &store.ConflictError{Kind: s.handlers.Kind, ID: id}
	}

	updated := mutate(current)
	s.handlers.SetID(&updated, id)
	s.handlers.SetToken(&updated, store.NewVersionToken())

	res, err := s.db.NewUpdate().
		Model(&updated).
		WherePK().
		Where("? = ?", bun.Ident(s.handlers.TokenColumn), string(expected)).
		Exec(ctx)
	if err != nil {
		return zero, s.translate("update", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		// The row moved under us after the load: either a concurrent write
		// replaced the token, or a concurrent delete removed the row.
		if _, err := s.GetByID(ctx, id); err != nil {
			return zero, err
		}
		return zero, &store.ConflictError{Kind: s.handlers.Kind, ID: id}
	}
	return updated, nil
}

// Delete removes the row guarded by the expected token. A RESTRICT foreign
// key on a dependent table surfaces as an InUseError; callers normally run a
// guard.Guard first for a better message, the constraint is the backstop.
func (s *BunStore[T, ID]) Delete(ctx context.Context, id ID, expected store.VersionToken) error {
	var record T
	res, err := s.db.NewDelete().
		Model(&record).
		Where("? = ?", bun.Ident(s.handlers.IDColumn), id).
		Where("? = ?", bun.Ident(s.handlers.TokenColumn), string(expected)).
		Exec(ctx)
	if err != nil {
		return s.translate("delete", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		return &store.ConflictError{Kind: s.handlers.Kind, ID: id}
	}
	return nil
}

// List returns all aggregates ordered id-descending, newest first.
func (s *BunStore[T, ID]) List(ctx context.Context) ([]T, error) {
	var records []T
	err := s.db.NewSelect().
		Model(&records).
		OrderExpr("? DESC", bun.Ident(s.handlers.IDColumn)).
		Scan(ctx)
	if err != nil {
		var none ID
		return nil, s.translate("list", none, err)
	}
	return records, nil
}

// translate maps driver-level failures onto the store error taxonomy.
func (s *BunStore[T, ID]) translate(op string, id any, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &store.NotFoundError{Kind: s.handlers.Kind, ID: id}
	}
	return translateDriverError(op, s.handlers.Kind, id, err)
}
