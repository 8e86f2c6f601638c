package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/ordermesh/inventory-api/internal/domains/partners/domain"
	"github.com/ordermesh/inventory-api/internal/domains/partners/ports"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid partner input")

// Service orchestrates customer and supplier use cases.
type Service struct {
	customers ports.CustomerRepository
	suppliers ports.SupplierRepository
}

func NewService(customers ports.CustomerRepository, suppliers ports.SupplierRepository) *Service {
	return &Service{customers: customers, suppliers: suppliers}
}

func (s *Service) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	validated, err := domain.NewCustomer(customer.ID, customer.Name, customer.ContactInfo)
	if err != nil {
		return nil, mapError(err)
	}
	return s.customers.Save(ctx, validated)
}

func (s *Service) GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *Service) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.customers.List(ctx)
}

func (s *Service) UpdateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	existing, err := s.customers.GetByID(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	if err := existing.Rename(customer.Name); err != nil {
		return nil, mapError(err)
	}
	existing.ContactInfo = customer.ContactInfo
	return s.customers.Save(ctx, existing)
}

func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	return s.customers.MarkDeleted(ctx, id)
}

func (s *Service) CreateSupplier(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	if supplier == nil {
		return nil, errors.New("supplier is nil")
	}
	validated, err := domain.NewSupplier(supplier.ID, supplier.Name, supplier.ContactInfo)
	if err != nil {
		return nil, mapError(err)
	}
	return s.suppliers.Save(ctx, validated)
}

func (s *Service) GetSupplierByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	return s.suppliers.GetByID(ctx, id)
}

func (s *Service) ListSuppliers(ctx context.Context) ([]*domain.Supplier, error) {
	return s.suppliers.List(ctx)
}

func (s *Service) UpdateSupplier(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	if supplier == nil {
		return nil, errors.New("supplier is nil")
	}
	existing, err := s.suppliers.GetByID(ctx, supplier.ID)
	if err != nil {
		return nil, err
	}
	if err := existing.Rename(supplier.Name); err != nil {
		return nil, mapError(err)
	}
	existing.ContactInfo = supplier.ContactInfo
	return s.suppliers.Save(ctx, existing)
}

func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	return s.suppliers.MarkDeleted(ctx, id)
}

func mapError(err error) error {
	if errors.Is(err, domain.ErrEmptyName) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
