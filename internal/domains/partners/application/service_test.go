package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ordermesh/inventory-api/internal/domains/partners/adapters/memory"
	"github.com/ordermesh/inventory-api/internal/domains/partners/domain"
	"github.com/ordermesh/inventory-api/internal/domains/partners/ports"
)

func newService() *Service {
	return NewService(memory.NewCustomerRepository(), memory.NewSupplierRepository())
}

func TestCreateCustomer_Success(t *testing.T) {
	svc := newService()

	created, err := svc.CreateCustomer(context.Background(), &domain.Customer{
		Name:        "Acme Corp",
		ContactInfo: "orders@acme.test",
	})

	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "acme-corp", created.Slug)
	require.Equal(t, domain.StateActive, created.State)
}

func TestCreateCustomer_EmptyName(t *testing.T) {
	svc := newService()

	_, err := svc.CreateCustomer(context.Background(), &domain.Customer{Name: "   "})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteCustomer_HidesFromReads(t *testing.T) {
	svc := newService()

	created, err := svc.CreateCustomer(context.Background(), &domain.Customer{Name: "Acme"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCustomer(context.Background(), created.ID))

	_, err = svc.GetCustomerByID(context.Background(), created.ID)
	require.ErrorIs(t, err, ports.ErrCustomerNotFound)

	list, err := svc.ListCustomers(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestSupplierLifecycle(t *testing.T) {
	svc := newService()

	created, err := svc.CreateSupplier(context.Background(), &domain.Supplier{
		Name:        "Northwind Traders",
		ContactInfo: "sales@northwind.test",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	loaded, err := svc.GetSupplierByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Northwind Traders", loaded.Name)

	require.NoError(t, svc.DeleteSupplier(context.Background(), created.ID))
	_, err = svc.GetSupplierByID(context.Background(), created.ID)
	require.ErrorIs(t, err, ports.ErrSupplierNotFound)
}

func TestCreateSupplier_EmptyName(t *testing.T) {
	svc := newService()

	_, err := svc.CreateSupplier(context.Background(), &domain.Supplier{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateCustomer_RenamesAndRefreshesSlug(t *testing.T) {
	svc := newService()

	created, err := svc.CreateCustomer(context.Background(), &domain.Customer{
		Name:        "Acme Corp",
		ContactInfo: "orders@acme.test",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateCustomer(context.Background(), &domain.Customer{
		ID:          created.ID,
		Name:        "Acme Holdings",
		ContactInfo: "billing@acme.test",
	})
	require.NoError(t, err)
	require.Equal(t, "Acme Holdings", updated.Name)
	require.Equal(t, "acme-holdings", updated.Slug)
	require.Equal(t, "billing@acme.test", updated.ContactInfo)
}

func TestUpdateCustomer_NotFound(t *testing.T) {
	svc := newService()

	_, err := svc.UpdateCustomer(context.Background(), &domain.Customer{ID: 404, Name: "Ghost"})
	require.ErrorIs(t, err, ports.ErrCustomerNotFound)
}

func TestUpdateSupplier_RejectsEmptyName(t *testing.T) {
	svc := newService()

	created, err := svc.CreateSupplier(context.Background(), &domain.Supplier{Name: "Northwind Traders"})
	require.NoError(t, err)

	_, err = svc.UpdateSupplier(context.Background(), &domain.Supplier{ID: created.ID, Name: "  "})
	require.ErrorIs(t, err, ErrInvalidInput)

	kept, err := svc.GetSupplierByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Northwind Traders", kept.Name)
}
