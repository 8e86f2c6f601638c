package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ordermesh/inventory-api/internal/shared/txn"
)

type ctxKey struct{}

// Transactor runs units of work inside a single database transaction. The
// open transaction travels in the context so that every repository call made
// within the unit of work shares it.
type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinTx opens a transaction, stores it in the context, and commits when fn
// returns nil. Any error rolls back every mutation made inside fn.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if t == nil || t.db == nil {
		return errors.New("postgres transactor not configured")
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, ctxKey{}, tx))
	})
}

// DBFromContext returns the transaction bound to the context, or the fallback
// handle when the call is not running inside a unit of work.
func DBFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(ctxKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return fallback
}

var _ txn.Transactor = (*Transactor)(nil)
