package orders

import (
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/ordermesh/inventory-api/internal/domains/orders/application/types"
	"github.com/ordermesh/inventory-api/internal/domains/orders/domain"
	"github.com/ordermesh/inventory-api/internal/platform/temporal/sequences"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderPlacementTaskQueue = "ORDER_PLACEMENT"
)

// OrderPlacementWorkflowInput captures the payload required to place an order.
type OrderPlacementWorkflowInput struct {
	Command ordertypes.PlaceOrderInput
	TraceID string
}

// OrderPlacementWorkflow orchestrates the activities needed to admit an order
// through the inventory ledger.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderPlacementWorkflow started", withTraceID(input.TraceID, "customerId", input.Command.CustomerID)...)
	order, err := sequences.RunOrderPlacementSequence(ctx, input.Command)
	if err != nil {
		logger.Error("OrderPlacementWorkflow failed", withTraceID(input.TraceID, "customerId", input.Command.CustomerID, "error", err)...)
		return nil, err
	}
	if order != nil {
		logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	} else {
		logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID)...)
	}
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
