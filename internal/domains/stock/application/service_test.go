package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/ordermesh/inventory-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/ordermesh/inventory-api/internal/domains/catalog/domain"
	partnersmemory "github.com/ordermesh/inventory-api/internal/domains/partners/adapters/memory"
	partnersdomain "github.com/ordermesh/inventory-api/internal/domains/partners/domain"
	stockcatalog "github.com/ordermesh/inventory-api/internal/domains/stock/adapters/catalog"
	stockmemory "github.com/ordermesh/inventory-api/internal/domains/stock/adapters/memory"
	stockpartners "github.com/ordermesh/inventory-api/internal/domains/stock/adapters/partners"
	"github.com/ordermesh/inventory-api/internal/domains/stock/domain"
	"github.com/ordermesh/inventory-api/internal/domains/stock/ports"
)

type fixture struct {
	svc      *Service
	products *catalogmemory.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	products := catalogmemory.NewRepository()
	suppliers := partnersmemory.NewSupplierRepository()

	supplier, err := partnersdomain.NewSupplier(1, "Northwind Traders", "sales@northwind.test")
	require.NoError(t, err)
	_, err = suppliers.Save(context.Background(), supplier)
	require.NoError(t, err)

	svc := NewService(
		stockmemory.NewRepository(),
		stockcatalog.NewGateway(products),
		stockpartners.NewGateway(suppliers),
		nil,
	)
	return &fixture{svc: svc, products: products}
}

func (f *fixture) seedProduct(t *testing.T, name string, stock int) int64 {
	t.Helper()
	product, err := catalogdomain.NewProduct(0, name, decimal.RequireFromString("9.99"), stock)
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

func TestCreateEntry_CreditsStock(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", 3)

	entry, err := f.svc.CreateEntry(context.Background(), &domain.StockEntry{
		ProductID:  productID,
		SupplierID: 1,
		Quantity:   7,
	})

	require.NoError(t, err)
	require.NotZero(t, entry.ID)
	require.False(t, entry.EntryDate.IsZero())
	require.Equal(t, 10, f.stockOf(t, productID))
}

func TestCreateEntry_UnknownSupplier(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", 3)

	_, err := f.svc.CreateEntry(context.Background(), &domain.StockEntry{
		ProductID:  productID,
		SupplierID: 42,
		Quantity:   7,
	})

	require.ErrorIs(t, err, ports.ErrSupplierNotFound)
	require.Equal(t, 3, f.stockOf(t, productID))
}

func TestCreateEntry_InvalidQuantity(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", 3)

	_, err := f.svc.CreateEntry(context.Background(), &domain.StockEntry{
		ProductID:  productID,
		SupplierID: 1,
		Quantity:   0,
	})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateEntry_AppliesSignedDelta(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", 0)

	entry, err := f.svc.CreateEntry(context.Background(), &domain.StockEntry{
		ProductID:  productID,
		SupplierID: 1,
		Quantity:   10,
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateEntry(context.Background(), &domain.StockEntry{
		ID:       entry.ID,
		Quantity: 15,
	})
	require.NoError(t, err)
	require.Equal(t, 15, updated.Quantity)
	require.Equal(t, 15, f.stockOf(t, productID))

	updated, err = f.svc.UpdateEntry(context.Background(), &domain.StockEntry{
		ID:       entry.ID,
		Quantity: 4,
	})
	require.NoError(t, err)
	require.Equal(t, 4, updated.Quantity)
	require.Equal(t, 4, f.stockOf(t, productID))
}

func TestUpdateEntry_MigratesCreditAcrossProducts(t *testing.T) {
	f := newFixture(t)
	oldProduct := f.seedProduct(t, "Widget", 0)
	newProduct := f.seedProduct(t, "Gadget", 0)

	entry, err := f.svc.CreateEntry(context.Background(), &domain.StockEntry{
		ProductID:  oldProduct,
		SupplierID: 1,
		Quantity:   6,
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateEntry(context.Background(), &domain.StockEntry{
		ID:        entry.ID,
		ProductID: newProduct,
		Quantity:  6,
	})

	require.NoError(t, err)
	require.Equal(t, newProduct, updated.ProductID)
	require.Equal(t, 0, f.stockOf(t, oldProduct))
	require.Equal(t, 6, f.stockOf(t, newProduct))
}

func TestUpdateEntry_ReductionBlockedByConsumedStock(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", 0)

	entry, err := f.svc.CreateEntry(context.Background(), &domain.StockEntry{
		ProductID:  productID,
		SupplierID: 1,
		Quantity:   10,
	})
	require.NoError(t, err)

	// Orders consumed 8 of the 10 credited units.
	require.NoError(t, f.products.AdjustStock(context.Background(), productID, -8))

	_, err = f.svc.UpdateEntry(context.Background(), &domain.StockEntry{
		ID:       entry.ID,
		Quantity: 3,
	})

	require.ErrorIs(t, err, ports.ErrInsufficientStock)
	require.Equal(t, 2, f.stockOf(t, productID))

	unchanged, err := f.svc.GetEntry(context.Background(), entry.ID)
	require.NoError(t, err)
	require.Equal(t, 10, unchanged.Quantity)
}

func TestDeleteEntry_ReversesCredit(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", 0)

	entry, err := f.svc.CreateEntry(context.Background(), &domain.StockEntry{
		ProductID:  productID,
		SupplierID: 1,
		Quantity:   5,
	})
	require.NoError(t, err)
	require.Equal(t, 5, f.stockOf(t, productID))

	require.NoError(t, f.svc.DeleteEntry(context.Background(), entry.ID))
	require.Equal(t, 0, f.stockOf(t, productID))

	_, err = f.svc.GetEntry(context.Background(), entry.ID)
	require.ErrorIs(t, err, ports.ErrEntryNotFound)
}

func TestDeleteEntry_BlockedByConsumedStock(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Widget", 0)

	entry, err := f.svc.CreateEntry(context.Background(), &domain.StockEntry{
		ProductID:  productID,
		SupplierID: 1,
		Quantity:   5,
	})
	require.NoError(t, err)
	require.NoError(t, f.products.AdjustStock(context.Background(), productID, -4))

	err = f.svc.DeleteEntry(context.Background(), entry.ID)

	require.ErrorIs(t, err, ports.ErrInsufficientStock)
	require.Equal(t, 1, f.stockOf(t, productID))

	still, err := f.svc.GetEntry(context.Background(), entry.ID)
	require.NoError(t, err)
	require.Equal(t, 5, still.Quantity)
}

func TestListEntriesByProduct(t *testing.T) {
	f := newFixture(t)
	first := f.seedProduct(t, "Widget", 0)
	second := f.seedProduct(t, "Gadget", 0)

	for _, productID := range []int64{first, first, second} {
		_, err := f.svc.CreateEntry(context.Background(), &domain.StockEntry{
			ProductID:  productID,
			SupplierID: 1,
			Quantity:   2,
		})
		require.NoError(t, err)
	}

	entries, err := f.svc.ListEntriesByProduct(context.Background(), first)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}
