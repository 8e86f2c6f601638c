// Package partners adapts the partners bounded context to the orders
// CustomerGateway port.
package partners

import (
	"context"
	"errors"

	"github.com/ordermesh/inventory-api/internal/domains/orders/ports"
	partnersports "github.com/ordermesh/inventory-api/internal/domains/partners/ports"
)

var _ ports.CustomerGateway = (*Gateway)(nil)

// Gateway checks customer references against the partners repository.
type Gateway struct {
	customers partnersports.CustomerRepository
}

func NewGateway(customers partnersports.CustomerRepository) *Gateway {
	return &Gateway{customers: customers}
}

func (g *Gateway) Exists(ctx context.Context, id int64) error {
	_, err := g.customers.GetByID(ctx, id)
	if errors.Is(err, partnersports.ErrCustomerNotFound) {
		return ports.ErrCustomerNotFound
	}
	return err
}
