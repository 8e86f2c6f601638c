package application

import (
	"errors"
	"fmt"

	"github.com/ordermesh/inventory-api/internal/domains/orders/domain"
	"github.com/ordermesh/inventory-api/internal/domains/orders/ports"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid order input")

// InsufficientStockError names the product and the shortfall that made a
// reservation fail. It unwraps to ports.ErrInsufficientStock so callers can
// match it with errors.Is.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d (%s): available %d, requested %d",
		e.ProductID, e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ports.ErrInsufficientStock }

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidCustomer) ||
		errors.Is(err, domain.ErrInvalidProduct) ||
		errors.Is(err, domain.ErrNegativeItemCost) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
