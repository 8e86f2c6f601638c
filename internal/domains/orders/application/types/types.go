package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemInput is one requested (product, quantity) pair.
type OrderItemInput struct {
	ProductID int64
	Quantity  int
}

// PlaceOrderInput carries everything the order-placement use case needs.
// IdempotencyKey is the caller-supplied token already validated by the
// duplicate-submission guard; the workflow orchestrator derives a stable
// workflow identifier from it.
type PlaceOrderInput struct {
	CustomerID     int64
	OrderDate      *time.Time
	IdempotencyKey string
	Items          []OrderItemInput
}

// AddItemInput adds a product to an existing order. If the product is
// already on the order the quantities merge onto the existing line.
type AddItemInput struct {
	OrderID   int64
	ProductID int64
	Quantity  int
}

// UpdateItemInput mutates a single order line. A zero ProductID keeps the
// current product.
type UpdateItemInput struct {
	ItemID    int64
	ProductID int64
	Quantity  int
}

// OrderStats aggregates revenue figures over live orders.
type OrderStats struct {
	OrderCount        int64
	TotalRevenue      decimal.Decimal
	AverageOrderValue decimal.Decimal
	OrdersPerCustomer map[int64]int64
}
