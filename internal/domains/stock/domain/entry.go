package domain

import (
	"errors"
	"time"
)

// State tags an entry as live or soft-deleted.
type State string

const (
	StateActive  State = "active"
	StateDeleted State = "deleted"
)

var (
	ErrInvalidQuantity = errors.New("stock entry quantity must be positive")
	ErrInvalidProduct  = errors.New("stock entry requires a product reference")
	ErrInvalidSupplier = errors.New("stock entry requires a supplier reference")
)

// StockEntry records one receipt of goods from a supplier. It is a credit
// event: its existence accounts for Quantity units of the product's stock,
// so deleting it takes that credit back.
type StockEntry struct {
	ID         int64
	ProductID  int64
	SupplierID int64
	Quantity   int
	EntryDate  time.Time
	State      State
}

// NewStockEntry builds a validated live entry.
func NewStockEntry(productID, supplierID int64, quantity int, entryDate time.Time) (*StockEntry, error) {
	if productID <= 0 {
		return nil, ErrInvalidProduct
	}
	if supplierID <= 0 {
		return nil, ErrInvalidSupplier
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if entryDate.IsZero() {
		entryDate = time.Now().UTC()
	}
	return &StockEntry{
		ProductID:  productID,
		SupplierID: supplierID,
		Quantity:   quantity,
		EntryDate:  entryDate,
		State:      StateActive,
	}, nil
}

// Deleted reports whether the entry has been soft-deleted.
func (e *StockEntry) Deleted() bool { return e.State == StateDeleted }
