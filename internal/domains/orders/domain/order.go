package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// State tags an aggregate as live or soft-deleted. Deleted rows stay in
// storage but are absent from every stock and total computation.
type State string

const (
	StateActive  State = "active"
	StateDeleted State = "deleted"
)

var (
	ErrNoItems          = errors.New("order has no items")
	ErrInvalidQuantity  = errors.New("item quantity must be positive")
	ErrInvalidCustomer  = errors.New("order requires a customer reference")
	ErrInvalidProduct   = errors.New("item requires a product reference")
	ErrNegativeItemCost = errors.New("item price must not be negative")
)

// OrderItem is a line of an order. Price is the product price captured
// when the line was added; it is never re-read from the catalog, so
// historical totals survive later repricing.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
	State     State
}

// Deleted reports whether the item has been soft-deleted.
func (i *OrderItem) Deleted() bool { return i.State == StateDeleted }

// Subtotal is price times quantity.
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i *OrderItem) validate() error {
	if i.ProductID <= 0 {
		return ErrInvalidProduct
	}
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i.Price.IsNegative() {
		return ErrNegativeItemCost
	}
	return nil
}

// Order is the aggregate root owning its items.
type Order struct {
	ID          int64
	CustomerID  int64
	OrderDate   time.Time
	TotalAmount decimal.Decimal
	Items       []*OrderItem
	State       State
}

// NewOrder builds a live order with validated items and a computed total.
func NewOrder(customerID int64, orderDate time.Time, items []*OrderItem) (*Order, error) {
	if customerID <= 0 {
		return nil, ErrInvalidCustomer
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if orderDate.IsZero() {
		orderDate = time.Now().UTC()
	}
	for _, item := range items {
		if err := item.validate(); err != nil {
			return nil, err
		}
		if item.State == "" {
			item.State = StateActive
		}
	}
	order := &Order{
		CustomerID: customerID,
		OrderDate:  orderDate,
		Items:      items,
		State:      StateActive,
	}
	order.RecalculateTotal()
	return order, nil
}

// Deleted reports whether the order has been soft-deleted.
func (o *Order) Deleted() bool { return o.State == StateDeleted }

// LiveItems returns the items that still count toward stock and total.
func (o *Order) LiveItems() []*OrderItem {
	live := make([]*OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		if item.Deleted() {
			continue
		}
		live = append(live, item)
	}
	return live
}

// RecalculateTotal sets TotalAmount to the sum of subtotals over live
// items. Must run after every item mutation.
func (o *Order) RecalculateTotal() {
	total := decimal.Zero
	for _, item := range o.LiveItems() {
		total = total.Add(item.Subtotal())
	}
	o.TotalAmount = total.Round(2)
}

// FindItem locates a live item by identifier.
func (o *Order) FindItem(itemID int64) (*OrderItem, bool) {
	for _, item := range o.Items {
		if item.ID == itemID && !item.Deleted() {
			return item, true
		}
	}
	return nil, false
}
