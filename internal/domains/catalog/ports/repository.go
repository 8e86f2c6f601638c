package ports

import (
	"context"
	"errors"

	"github.com/ordermesh/inventory-api/internal/domains/catalog/domain"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a negative stock adjustment
	// would drive the quantity below zero. The check and the decrement are
	// one atomic step in every adapter.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository persists products. AdjustStock is the conditional primitive the
// inventory ledger relies on: a negative delta is applied only when the
// current quantity covers it, otherwise ErrInsufficientStock is returned and
// nothing changes.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Search(ctx context.Context, query string) ([]*domain.Product, error)
	AdjustStock(ctx context.Context, id int64, delta int) error
	MarkDeleted(ctx context.Context, id int64) error
}
