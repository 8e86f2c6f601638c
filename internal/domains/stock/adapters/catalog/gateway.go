// Package catalog adapts the catalog bounded context to the stock
// ProductGateway port.
package catalog

import (
	"context"
	"errors"

	catalogports "github.com/ordermesh/inventory-api/internal/domains/catalog/ports"
	"github.com/ordermesh/inventory-api/internal/domains/stock/ports"
)

var _ ports.ProductGateway = (*Gateway)(nil)

// Gateway bridges the stock ledger to the catalog repository.
type Gateway struct {
	products catalogports.Repository
}

func NewGateway(products catalogports.Repository) *Gateway {
	return &Gateway{products: products}
}

func (g *Gateway) Exists(ctx context.Context, id int64) error {
	_, err := g.products.GetByID(ctx, id)
	return mapCatalogError(err)
}

// CreditStock adds received quantity to the product's stock.
func (g *Gateway) CreditStock(ctx context.Context, id int64, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	return mapCatalogError(g.products.AdjustStock(ctx, id, quantity))
}

// DebitStock takes a credit back; the decrement only happens when current
// stock covers it.
func (g *Gateway) DebitStock(ctx context.Context, id int64, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	return mapCatalogError(g.products.AdjustStock(ctx, id, -quantity))
}

func mapCatalogError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, catalogports.ErrNotFound):
		return ports.ErrProductNotFound
	case errors.Is(err, catalogports.ErrInsufficientStock):
		return ports.ErrInsufficientStock
	default:
		return err
	}
}
