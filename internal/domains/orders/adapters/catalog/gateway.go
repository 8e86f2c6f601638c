// Package catalog adapts the catalog bounded context to the orders
// ProductGateway port.
package catalog

import (
	"context"
	"errors"

	catalogports "github.com/ordermesh/inventory-api/internal/domains/catalog/ports"
	"github.com/ordermesh/inventory-api/internal/domains/orders/ports"
)

var _ ports.ProductGateway = (*Gateway)(nil)

// Gateway bridges the orders ledger to the catalog repository. It goes
// straight to the repository rather than the catalog service so ReserveStock
// stays a single conditional storage operation.
type Gateway struct {
	products catalogports.Repository
}

func NewGateway(products catalogports.Repository) *Gateway {
	return &Gateway{products: products}
}

func (g *Gateway) GetByID(ctx context.Context, id int64) (*ports.ProductSnapshot, error) {
	product, err := g.products.GetByID(ctx, id)
	if err != nil {
		return nil, mapCatalogError(err)
	}
	return &ports.ProductSnapshot{
		ID:              product.ID,
		Name:            product.Name,
		Price:           product.Price,
		QuantityInStock: product.QuantityInStock,
	}, nil
}

// ReserveStock decrements the product's stock only when the quantity is
// covered; the check and the write are one atomic step in the repository.
func (g *Gateway) ReserveStock(ctx context.Context, id int64, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	return mapCatalogError(g.products.AdjustStock(ctx, id, -quantity))
}

// ReleaseStock credits previously reserved stock back.
func (g *Gateway) ReleaseStock(ctx context.Context, id int64, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	return mapCatalogError(g.products.AdjustStock(ctx, id, quantity))
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
