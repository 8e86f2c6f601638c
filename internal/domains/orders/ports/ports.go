package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	ordertypes "github.com/ordermesh/inventory-api/internal/domains/orders/application/types"
	"github.com/ordermesh/inventory-api/internal/domains/orders/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrItemNotFound  = errors.New("order item not found")

	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrInsufficientStock is surfaced by ProductGateway.ReserveStock when
	// the conditional decrement fails; nothing has changed when it returns.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository persists orders and their items.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error)
	UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error
	MarkDeleted(ctx context.Context, orderID int64) error

	GetItem(ctx context.Context, itemID int64) (*domain.OrderItem, error)
	AddItem(ctx context.Context, orderID int64, item *domain.OrderItem) (*domain.OrderItem, error)
	SaveItem(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error)
	MarkItemDeleted(ctx context.Context, itemID int64) error
}

// ProductSnapshot is the catalog view the ledger works with. Price is the
// current catalog price, captured onto an item exactly once.
type ProductSnapshot struct {
	ID              int64
	Name            string
	Price           decimal.Decimal
	QuantityInStock int
}

// ProductGateway is the outbound port to the catalog context. Reserve and
// Release are the only stock mutations the ledger performs; Reserve is
// atomic with its availability check.
type ProductGateway interface {
	GetByID(ctx context.Context, id int64) (*ProductSnapshot, error)
	ReserveStock(ctx context.Context, id int64, quantity int) error
	ReleaseStock(ctx context.Context, id int64, quantity int) error
}

// CustomerGateway checks order ownership references against the partners
// context.
type CustomerGateway interface {
	Exists(ctx context.Context, id int64) error
}

// Service defines the orders use cases exposed to adapters (inbound port).
type Service interface {
	PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error)
	AddItem(ctx context.Context, input ordertypes.AddItemInput) (*domain.Order, error)
	UpdateItem(ctx context.Context, input ordertypes.UpdateItemInput) (*domain.Order, error)
	RemoveItem(ctx context.Context, itemID int64) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*ordertypes.OrderStats, error)
}

// WorkflowOrchestrator exposes durable workflow operations required by the
// orders bounded context.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*domain.Order, error)
}
