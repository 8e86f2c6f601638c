package ports

import (
	"context"
	"errors"

	"github.com/ordermesh/inventory-api/internal/domains/partners/domain"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrSupplierNotFound = errors.New("supplier not found")
)

// CustomerRepository persists customers.
type CustomerRepository interface {
	Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	MarkDeleted(ctx context.Context, id int64) error
}

// SupplierRepository persists suppliers.
type SupplierRepository interface {
	Save(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error)
	GetByID(ctx context.Context, id int64) (*domain.Supplier, error)
	List(ctx context.Context) ([]*domain.Supplier, error)
	MarkDeleted(ctx context.Context, id int64) error
}

// Service exposes partner use cases to adapters.
type Service interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error

	CreateSupplier(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error)
	GetSupplierByID(ctx context.Context, id int64) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]*domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error
}
