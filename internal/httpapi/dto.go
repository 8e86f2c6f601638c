package httpapi

import (
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/ordermesh/inventory-api/internal/domains/catalog/domain"
	ordersdomain "github.com/ordermesh/inventory-api/internal/domains/orders/domain"
	partnersdomain "github.com/ordermesh/inventory-api/internal/domains/partners/domain"
	stockdomain "github.com/ordermesh/inventory-api/internal/domains/stock/domain"
)

// Product is the HTTP representation of a catalog product.
type Product struct {
	ID              int64           `json:"id,omitempty"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug,omitempty"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	QuantityInStock int             `json:"quantityInStock"`
}

func fromProduct(product *catalogdomain.Product) Product {
	return Product{
		ID:              product.ID,
		Name:            product.Name,
		Slug:            product.Slug,
		Description:     product.Description,
		Price:           product.Price,
		QuantityInStock: product.QuantityInStock,
	}
}

func fromProductList(products []*catalogdomain.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, product := range products {
		out = append(out, fromProduct(product))
	}
	return out
}

// Customer is the HTTP representation of a customer.
type Customer struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	ContactInfo string `json:"contactInfo,omitempty"`
}

func fromCustomer(customer *partnersdomain.Customer) Customer {
	return Customer{
		ID:          customer.ID,
		Name:        customer.Name,
		Slug:        customer.Slug,
		ContactInfo: customer.ContactInfo,
	}
}

// Supplier is the HTTP representation of a supplier.
type Supplier struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	ContactInfo string `json:"contactInfo,omitempty"`
}

func fromSupplier(supplier *partnersdomain.Supplier) Supplier {
	return Supplier{
		ID:          supplier.ID,
		Name:        supplier.Name,
		ContactInfo: supplier.ContactInfo,
	}
}

// OrderItem is the HTTP representation of one order line.
type OrderItem struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Order is the HTTP representation of an order with its live items.
type Order struct {
	ID          int64           `json:"id"`
	CustomerID  int64           `json:"customerId"`
	OrderDate   time.Time       `json:"orderDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Items       []OrderItem     `json:"items"`
}

func fromOrder(order *ordersdomain.Order) Order {
	out := Order{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		OrderDate:   order.OrderDate,
		TotalAmount: order.TotalAmount,
		Items:       make([]OrderItem, 0, len(order.Items)),
	}
	for _, item := range order.LiveItems() {
		out.Items = append(out.Items, OrderItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Subtotal:  item.Subtotal(),
		})
	}
	return out
}

func fromOrderList(orders []*ordersdomain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, fromOrder(order))
	}
	return out
}

// PlaceOrderRequest captures the order-creation payload.
type PlaceOrderRequest struct {
	CustomerID int64                 `json:"customerId"`
	OrderDate  *time.Time            `json:"orderDate,omitempty"`
	Items      []PlaceOrderItemInput `json:"items"`
}

// PlaceOrderItemInput is one requested (product, quantity) pair.
type PlaceOrderItemInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// AddOrderItemRequest adds a product to an existing order.
type AddOrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// UpdateOrderItemRequest mutates one order line. Omitting productId keeps
// the current product.
type UpdateOrderItemRequest struct {
	ProductID int64 `json:"productId,omitempty"`
	Quantity  int   `json:"quantity"`
}

// OrderStatsResponse aggregates revenue figures over live orders.
type OrderStatsResponse struct {
	OrderCount        int64           `json:"orderCount"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	OrdersPerCustomer map[int64]int64 `json:"ordersPerCustomer"`
}

// StockEntry is the HTTP representation of a stock receipt.
type StockEntry struct {
	ID         int64      `json:"id,omitempty"`
	ProductID  int64      `json:"productId"`
	SupplierID int64      `json:"supplierId"`
	Quantity   int        `json:"quantity"`
	EntryDate  *time.Time `json:"entryDate,omitempty"`
}

func fromStockEntry(entry *stockdomain.StockEntry) StockEntry {
	date := entry.EntryDate
	return StockEntry{
		ID:         entry.ID,
		ProductID:  entry.ProductID,
		SupplierID: entry.SupplierID,
		Quantity:   entry.Quantity,
		EntryDate:  &date,
	}
}

func fromStockEntryList(entries []*stockdomain.StockEntry) []StockEntry {
	out := make([]StockEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, fromStockEntry(entry))
	}
	return out
}
