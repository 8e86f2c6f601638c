package ports

import (
	"context"
	"errors"

	"github.com/ordermesh/inventory-api/internal/domains/stock/domain"
)

var (
	ErrEntryNotFound    = errors.New("stock entry not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrSupplierNotFound = errors.New("supplier not found")
	// ErrInsufficientStock is returned when reversing a credit would drive
	// the product's stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository persists stock entries.
type Repository interface {
	Save(ctx context.Context, entry *domain.StockEntry) (*domain.StockEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.StockEntry, error)
	List(ctx context.Context) ([]*domain.StockEntry, error)
	ListByProduct(ctx context.Context, productID int64) ([]*domain.StockEntry, error)
	MarkDeleted(ctx context.Context, id int64) error
}

// ProductGateway is the outbound port to the catalog context. Debit is
// atomic with its availability check.
type ProductGateway interface {
	Exists(ctx context.Context, id int64) error
	CreditStock(ctx context.Context, id int64, quantity int) error
	DebitStock(ctx context.Context, id int64, quantity int) error
}

// SupplierGateway checks supplier references against the partners context.
type SupplierGateway interface {
	Exists(ctx context.Context, id int64) error
}

// Service defines the stock use cases exposed to adapters (inbound port).
type Service interface {
	CreateEntry(ctx context.Context, entry *domain.StockEntry) (*domain.StockEntry, error)
	GetEntry(ctx context.Context, id int64) (*domain.StockEntry, error)
	ListEntries(ctx context.Context) ([]*domain.StockEntry, error)
	ListEntriesByProduct(ctx context.Context, productID int64) ([]*domain.StockEntry, error)
	UpdateEntry(ctx context.Context, entry *domain.StockEntry) (*domain.StockEntry, error)
	DeleteEntry(ctx context.Context, id int64) error
}
