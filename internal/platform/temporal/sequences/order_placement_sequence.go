package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/ordermesh/inventory-api/internal/domains/orders/application/types"
	"github.com/ordermesh/inventory-api/internal/domains/orders/domain"
	orderactivities "github.com/ordermesh/inventory-api/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the ordered activities needed to admit
// an order. The ledger activity is not retried on its own: the insufficient
// stock and not-found failures it raises are terminal for the request, and a
// blind retry would double-reserve stock on a timeout.
func RunOrderPlacementSequence(ctx workflow.Context, input ordertypes.PlaceOrderInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "customerId", input.CustomerID, "items", len(input.Items))
	placeOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}

	var order domain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, placeOptions), orderactivities.PlaceOrderActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("order placement sequence failed", "customerId", input.CustomerID, "error", err)
		return nil, err
	}
	logger.Info("order placement sequence persisted", "orderId", order.ID, "total", order.TotalAmount.String())
	return &order, nil
}
