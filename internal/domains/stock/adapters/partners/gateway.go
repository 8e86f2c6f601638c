// Package partners adapts the partners bounded context to the stock
// SupplierGateway port.
package partners

import (
	"context"
	"errors"

	partnersports "github.com/ordermesh/inventory-api/internal/domains/partners/ports"
	"github.com/ordermesh/inventory-api/internal/domains/stock/ports"
)

var _ ports.SupplierGateway = (*Gateway)(nil)

// Gateway checks supplier references against the partners repository.
type Gateway struct {
	suppliers partnersports.SupplierRepository
}

func NewGateway(suppliers partnersports.SupplierRepository) *Gateway {
	return &Gateway{suppliers: suppliers}
}

func (g *Gateway) Exists(ctx context.Context, id int64) error {
	_, err := g.suppliers.GetByID(ctx, id)
	if errors.Is(err, partnersports.ErrSupplierNotFound) {
		return ports.ErrSupplierNotFound
	}
	return err
}
