package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	ordertypes "github.com/ordermesh/inventory-api/internal/domains/orders/application/types"
	"github.com/ordermesh/inventory-api/internal/domains/orders/domain"
	ordersports "github.com/ordermesh/inventory-api/internal/domains/orders/ports"
)

// PlaceOrderActivityName runs the inventory ledger for one order request.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder admits one order through the ledger and returns the created
// aggregate.
func (a *Activities) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "customerId", input.CustomerID)
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "customerId", input.CustomerID, "items", len(input.Items))
	order, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "customerId", input.CustomerID, "error", err)
		return nil, err
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID)
	return order, nil
}
