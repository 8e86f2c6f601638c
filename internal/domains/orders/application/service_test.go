package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/ordermesh/inventory-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/ordermesh/inventory-api/internal/domains/catalog/domain"
	orderscatalog "github.com/ordermesh/inventory-api/internal/domains/orders/adapters/catalog"
	ordersmemory "github.com/ordermesh/inventory-api/internal/domains/orders/adapters/memory"
	orderspartners "github.com/ordermesh/inventory-api/internal/domains/orders/adapters/partners"
	ordertypes "github.com/ordermesh/inventory-api/internal/domains/orders/application/types"
	"github.com/ordermesh/inventory-api/internal/domains/orders/ports"
	partnersmemory "github.com/ordermesh/inventory-api/internal/domains/partners/adapters/memory"
	partnersdomain "github.com/ordermesh/inventory-api/internal/domains/partners/domain"
)

type fixture struct {
	svc      *Service
	products *catalogmemory.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	products := catalogmemory.NewRepository()
	customers := partnersmemory.NewCustomerRepository()

	customer, err := partnersdomain.NewCustomer(1, "Acme Corp", "orders@acme.test")
	require.NoError(t, err)
	_, err = customers.Save(context.Background(), customer)
	require.NoError(t, err)

	svc := NewService(
		ordersmemory.NewRepository(),
		orderscatalog.NewGateway(products),
		orderspartners.NewGateway(customers),
		nil,
	)
	return &fixture{svc: svc, products: products}
}

func (f *fixture) seedProduct(t *testing.T, name string, price string, stock int) int64 {
	t.Helper()
	product, err := catalogdomain.NewProduct(0, name, decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	saved, err := f.products.Save(context.Background(), product)
	require.NoError(t, err)
	return saved.ID
}

func (f *fixture) stockOf(t *testing.T, productID int64) int {
	t.Helper()
	product, err := f.products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	return product.QuantityInStock
}

func TestPlaceOrder_CapturesPriceAndDecrementsStock(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", "19.99", 5)

	order, err := f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
		CustomerID: 1,
		Items:      []ordertypes.OrderItemInput{{ProductID: productID, Quantity: 3}},
	})

	require.NoError(t, err)
	require.NotNil(t, order)
	require.Len(t, order.Items, 1)
	require.True(t, order.Items[0].Price.Equal(decimal.RequireFromString("19.99")))
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("59.97")))
	require.Equal(t, 2, f.stockOf(t, productID))
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", "19.99", 5)

	_, err := f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
		CustomerID: 1,
		Items:      []ordertypes.OrderItemInput{{ProductID: productID, Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
		CustomerID: 1,
		Items:      []ordertypes.OrderItemInput{{ProductID: productID, Quantity: 3}},
	})

	require.ErrorIs(t, err, ports.ErrInsufficientStock)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, productID, stockErr.ProductID)
	require.Equal(t, "Widget", stockErr.ProductName)
	require.Equal(t, 2, stockErr.Available)
	require.Equal(t, 3, stockErr.Requested)
	require.Equal(t, 2, f.stockOf(t, productID))
}

func TestPlaceOrder_AllOrNothing(t *testing.T) {
	f := newFixture(t)
	plentiful := f.seedProduct(t, "Widget", "10.00", 100)
	scarce := f.seedProduct(t, "Gadget", "25.00", 1)

	_, err := f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
		CustomerID: 1,
		Items: []ordertypes.OrderItemInput{
			{ProductID: plentiful, Quantity: 4},
			{ProductID: scarce, Quantity: 2},
		},
	})

	require.ErrorIs(t, err, ports.ErrInsufficientStock)
	require.Equal(t, 100, f.stockOf(t, plentiful))
	require.Equal(t, 1, f.stockOf(t, scarce))

	orders, err := f.svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestPlaceOrder_UnknownCustomer(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", "10.00", 5)

	_, err := f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
		CustomerID: 42,
		Items:      []ordertypes.OrderItemInput{{ProductID: productID, Quantity: 1}},
	})

	require.ErrorIs(t, err, ports.ErrCustomerNotFound)
	require.Equal(t, 5, f.stockOf(t, productID))
}

func TestPlaceOrder_RejectsEmptyAndInvalidLines(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", "10.00", 5)

	_, err := f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{CustomerID: 1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
		CustomerID: 1,
		Items:      []ordertypes.OrderItemInput{{ProductID: productID, Quantity: 0}},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlaceOrder_PriceFrozenAfterReprice(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", "19.99", 10)

	order, err := f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
		CustomerID: 1,
		Items:      []ordertypes.OrderItemInput{{ProductID: productID, Quantity: 2}},
	})
	require.NoError(t, err)

	product, err := f.products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NoError(t, product.Reprice(decimal.RequireFromString("29.99")))
	_, err = f.products.Save(context.Background(), product)
	require.NoError(t, err)

	reloaded, err := f.svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.True(t, reloaded.Items[0].Price.Equal(decimal.RequireFromString("19.99")))
	require.True(t, reloaded.TotalAmount.Equal(decimal.RequireFromString("39.98")))
}

func TestUpdateItem_SameProductMovesDelta(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", "10.00", 10)

	order, err := f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
		CustomerID: 1,
		Items:      []ordertypes.OrderItemInput{{ProductID: productID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, 8, f.stockOf(t, productID))

	updated, err := f.svc.UpdateItem(context.Background(), ordertypes.UpdateItemInput{
		ItemID:   order.Items[0].ID,
		Quantity: 5,
	})
	require.NoError(t, err)
	require.Equal(t, 5, f.stockOf(t, productID))
	require.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("50.00")))

	updated, err = f.svc.UpdateItem(context.Background(), ordertypes.UpdateItemInput{
		ItemID:   order.Items[0].ID,
		Quantity: 1,
	})
	require.NoError(t, err)
	require.Equal(t, 9, f.stockOf(t, productID))
	require.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("10.00")))
}

func TestUpdateItem_InsufficientStockLeavesLineIntact(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", "10.00", 4)

	order, err := f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
		CustomerID: 1,
		Items:      []ordertypes.OrderItemInput{{ProductID: productID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateItem(context.Background(), ordertypes.UpdateItemInput{
		ItemID:   order.Items[0].ID,
		Quantity: 10,
	})

	require.ErrorIs(t, err, ports.ErrInsufficientStock)
	require.Equal(t, 2, f.stockOf(t, productID))

	reloaded, err := f.svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, 2, reloaded.Items[0].Quantity)
}

func TestUpdateItem_SwapsProductAndRecapturesPrice(t *testing.T) {
	f := newFixture(t)
	oldProduct := f.seedProduct(t, "Widget", "10.00", 10)
	newProduct := f.seedProduct(t, "Gadget", "25.00", 6)

	order, err := f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
		CustomerID: 1,
		Items:      []ordertypes.OrderItemInput{{ProductID: oldProduct, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, 7, f.stockOf(t, oldProduct))

	updated, err := f.svc.UpdateItem(context.Background(), ordertypes.UpdateItemInput{
		ItemID:    order.Items[0].ID,
		ProductID: newProduct,
		Quantity:  2,
	})

	require.NoError(t, err)
	require.Equal(t, 10, f.stockOf(t, oldProduct))
	require.Equal(t, 4, f.stockOf(t, newProduct))
	require.Equal(t, newProduct, updated.Items[0].ProductID)
	require.True(t, updated.Items[0].Price.Equal(decimal.RequireFromString("25.00")))
	require.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("50.00")))
}

func TestUpdateItem_SwapRestoresOldProductOnFailure(t *testing.T) {
	f := newFixture(t)
	oldProduct := f.seedProduct(t, "Widget", "10.00", 10)
	newProduct := f.seedProduct(t, "Gadget", "25.00", 1)

	order, err := f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
		CustomerID: 1,
		Items:      []ordertypes.OrderItemInput{{ProductID: oldProduct, Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateItem(context.Background(), ordertypes.UpdateItemInput{
		ItemID:    order.Items[0].ID,
		ProductID: newProduct,
		Quantity:  5,
	})

	require.ErrorIs(t, err, ports.ErrInsufficientStock)
	require.Equal(t, 7, f.stockOf(t, oldProduct))
	require.Equal(t, 1, f.stockOf(t, newProduct))
}

func TestRemoveItem_CreditsStockAndRecomputesTotal(t *testing.T) {
	f := newFixture(t)
	first := f.seedProduct(t, "Widget", "10.00", 10)
	second := f.seedProduct(t, "Gadget", "25.00", 10)

	order, err := f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
		CustomerID: 1,
		Items: []ordertypes.OrderItemInput{
			{ProductID: first, Quantity: 2},
			{ProductID: second, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("45.00")))

	updated, err := f.svc.RemoveItem(context.Background(), order.Items[1].ID)
	require.NoError(t, err)
	require.Equal(t, 10, f.stockOf(t, second))
	require.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("20.00")))

	reloaded, err := f.svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.LiveItems(), 1)
}

func TestDeleteOrder_RestoresEveryLiveItem(t *testing.T) {
	f := newFixture(t)
	first := f.seedProduct(t, "Widget", "10.00", 5)
	second := f.seedProduct(t, "Gadget", "25.00", 5)

	order, err := f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
		CustomerID: 1,
		Items: []ordertypes.OrderItemInput{
			{ProductID: first, Quantity: 2},
			{ProductID: second, Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 3, f.stockOf(t, first))
	require.Equal(t, 2, f.stockOf(t, second))

	require.NoError(t, f.svc.DeleteOrder(context.Background(), order.ID))
	require.Equal(t, 5, f.stockOf(t, first))
	require.Equal(t, 5, f.stockOf(t, second))

	_, err = f.svc.GetOrder(context.Background(), order.ID)
	require.ErrorIs(t, err, ports.ErrOrderNotFound)
}

func TestStats_AggregatesLiveOrders(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", "10.00", 100)

	for _, quantity := range []int{1, 2, 3} {
		_, err := f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
			CustomerID: 1,
			Items:      []ordertypes.OrderItemInput{{ProductID: productID, Quantity: quantity}},
		})
		require.NoError(t, err)
	}

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.OrderCount)
	require.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("60.00")))
	require.True(t, stats.AverageOrderValue.Equal(decimal.RequireFromString("20.00")))
	require.Equal(t, map[int64]int64{1: 3}, stats.OrdersPerCustomer)
}

func TestStats_EmptyLedger(t *testing.T) {
	f := newFixture(t)

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(0), stats.OrderCount)
	require.True(t, stats.TotalRevenue.IsZero())
	require.True(t, stats.AverageOrderValue.IsZero())
	require.Empty(t, stats.OrdersPerCustomer)
}

func TestRemoveItem_UnknownItem(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RemoveItem(context.Background(), 99)
	require.True(t, errors.Is(err, ports.ErrItemNotFound))
}

func TestAddItem_NewLineCapturesCurrentPrice(t *testing.T) {
	f := newFixture(t)
	widgetID := f.seedProduct(t, "Widget", "19.99", 10)
	gadgetID := f.seedProduct(t, "Gadget", "5.00", 8)

	order, err := f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
		CustomerID: 1,
		Items:      []ordertypes.OrderItemInput{{ProductID: widgetID, Quantity: 2}},
	})
	require.NoError(t, err)

	updated, err := f.svc.AddItem(context.Background(), ordertypes.AddItemInput{
		OrderID:   order.ID,
		ProductID: gadgetID,
		Quantity:  3,
	})
	require.NoError(t, err)
	require.Len(t, updated.LiveItems(), 2)
	require.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("54.98")))
	require.Equal(t, 5, f.stockOf(t, gadgetID))
}

func TestAddItem_MergesOntoExistingLine(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", "19.99", 10)

	order, err := f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
		CustomerID: 1,
		Items:      []ordertypes.OrderItemInput{{ProductID: productID, Quantity: 2}},
	})
	require.NoError(t, err)

	// Reprice between the two adds; the merged line keeps the price it
	// captured when the order was placed.
	product, err := f.products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NoError(t, product.Reprice(decimal.RequireFromString("29.99")))
	_, err = f.products.Save(context.Background(), product)
	require.NoError(t, err)

	updated, err := f.svc.AddItem(context.Background(), ordertypes.AddItemInput{
		OrderID:   order.ID,
		ProductID: productID,
		Quantity:  3,
	})
	require.NoError(t, err)
	require.Len(t, updated.LiveItems(), 1)
	require.Equal(t, 5, updated.LiveItems()[0].Quantity)
	require.True(t, updated.LiveItems()[0].Price.Equal(decimal.RequireFromString("19.99")))
	require.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("99.95")))
	require.Equal(t, 5, f.stockOf(t, productID))
}

func TestAddItem_InsufficientStock(t *testing.T) {
	f := newFixture(t)
	widgetID := f.seedProduct(t, "Widget", "19.99", 10)
	scarceID := f.seedProduct(t, "Scarce", "5.00", 2)

	order, err := f.svc.PlaceOrder(context.Background(), ordertypes.PlaceOrderInput{
		CustomerID: 1,
		Items:      []ordertypes.OrderItemInput{{ProductID: widgetID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.svc.AddItem(context.Background(), ordertypes.AddItemInput{
		OrderID:   order.ID,
		ProductID: scarceID,
		Quantity:  3,
	})
	require.ErrorIs(t, err, ports.ErrInsufficientStock)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, 2, stockErr.Available)
	require.Equal(t, 3, stockErr.Requested)

	reloaded, err := f.svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.LiveItems(), 1)
	require.True(t, reloaded.TotalAmount.Equal(decimal.RequireFromString("19.99")))
	require.Equal(t, 2, f.stockOf(t, scarceID))
}

func TestAddItem_UnknownOrder(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", "19.99", 10)

	_, err := f.svc.AddItem(context.Background(), ordertypes.AddItemInput{
		OrderID:   404,
		ProductID: productID,
		Quantity:  1,
	})
	require.ErrorIs(t, err, ports.ErrOrderNotFound)
	require.Equal(t, 10, f.stockOf(t, productID))
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", "19.99", 10)

	_, err := f.svc.AddItem(context.Background(), ordertypes.AddItemInput{
		OrderID:   1,
		ProductID: productID,
		Quantity:  0,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}
