package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	ordertypes "github.com/ordermesh/inventory-api/internal/domains/orders/application/types"
	ordersdomain "github.com/ordermesh/inventory-api/internal/domains/orders/domain"
	ordersports "github.com/ordermesh/inventory-api/internal/domains/orders/ports"
	"github.com/ordermesh/inventory-api/internal/idempotency"
)

// OrderAPI wires HTTP transport with the orders bounded context service and
// workflows.
type OrderAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Post /api/v1/orders
// Place a new order; requires an Idempotency-Key header.
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input := ordertypes.PlaceOrderInput{
		CustomerID:     payload.CustomerID,
		OrderDate:      payload.OrderDate,
		IdempotencyKey: idempotency.KeyFromContext(c),
	}
	for _, line := range payload.Items {
		input.Items = append(input.Items, ordertypes.OrderItemInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	created, err := api.placeOrder(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromOrder(created))
}

func (api *OrderAPI) placeOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*ordersdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.PlaceOrder(ctx, input)
}

// Get /api/v1/orders/:orderId
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrder(order))
}

// Get /api/v1/orders
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrderList(orders))
}

// Get /api/v1/customers/:customerId/orders
func (api *OrderAPI) ListOrdersByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}
	orders, err := api.service.ListOrdersByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrderList(orders))
}

// Delete /api/v1/orders/:orderId
// Deleting an order restores stock for every item it owned.
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	if err := api.service.DeleteOrder(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /api/v1/orders/stats
func (api *OrderAPI) OrderStats(c *gin.Context) {
	stats, err := api.service.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, OrderStatsResponse{
		OrderCount:        stats.OrderCount,
		TotalRevenue:      stats.TotalRevenue,
		AverageOrderValue: stats.AverageOrderValue,
		OrdersPerCustomer: stats.OrdersPerCustomer,
	})
}

// Post /api/v1/orders/:orderId/items
// Add a product to an existing order; quantities merge when it is already
// on the order.
func (api *OrderAPI) AddOrderItem(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload AddOrderItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	order, err := api.service.AddItem(c.Request.Context(), ordertypes.AddItemInput{
		OrderID:   id,
		ProductID: payload.ProductID,
		Quantity:  payload.Quantity,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrder(order))
}

// Put /api/v1/order-items/:itemId
// Change an item's product or quantity; stock is reconciled by the ledger.
func (api *OrderAPI) UpdateOrderItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	var payload UpdateOrderItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	order, err := api.service.UpdateItem(c.Request.Context(), ordertypes.UpdateItemInput{
		ItemID:    id,
		ProductID: payload.ProductID,
		Quantity:  payload.Quantity,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrder(order))
}

// Delete /api/v1/order-items/:itemId
// Removing an item credits its quantity back to the product.
func (api *OrderAPI) RemoveOrderItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	order, err := api.service.RemoveItem(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrder(order))
}
