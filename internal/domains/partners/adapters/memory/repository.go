package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/ordermesh/inventory-api/internal/domains/partners/domain"
	"github.com/ordermesh/inventory-api/internal/domains/partners/ports"
)

var (
	_ ports.CustomerRepository = (*CustomerRepository)(nil)
	_ ports.SupplierRepository = (*SupplierRepository)(nil)
)

// CustomerRepository is an in-memory customer persistence adapter.
type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[int64]*domain.Customer
	nextID    int64
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{customers: map[int64]*domain.Customer{}}
}

func (r *CustomerRepository) Save(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	clone := *customer
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	if clone.State == "" {
		clone.State = domain.StateActive
	}
	r.customers[clone.ID] = &clone
	saved := clone
	return &saved, nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customer, ok := r.customers[id]
	if !ok || customer.Deleted() {
		return nil, ports.ErrCustomerNotFound
	}
	clone := *customer
	return &clone, nil
}

func (r *CustomerRepository) List(_ context.Context) ([]*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		if customer.Deleted() {
			continue
		}
		clone := *customer
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *CustomerRepository) MarkDeleted(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	customer, ok := r.customers[id]
	if !ok || customer.Deleted() {
		return ports.ErrCustomerNotFound
	}
	customer.State = domain.StateDeleted
	return nil
}

// SupplierRepository is an in-memory supplier persistence adapter.
type SupplierRepository struct {
	mu        sync.RWMutex
	suppliers map[int64]*domain.Supplier
	nextID    int64
}

func NewSupplierRepository() *SupplierRepository {
	return &SupplierRepository{suppliers: map[int64]*domain.Supplier{}}
}

func (r *SupplierRepository) Save(_ context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	if supplier == nil {
		return nil, errors.New("supplier is nil")
	}
	clone := *supplier
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	if clone.State == "" {
		clone.State = domain.StateActive
	}
	r.suppliers[clone.ID] = &clone
	saved := clone
	return &saved, nil
}

func (r *SupplierRepository) GetByID(_ context.Context, id int64) (*domain.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	supplier, ok := r.suppliers[id]
	if !ok || supplier.Deleted() {
		return nil, ports.ErrSupplierNotFound
	}
	clone := *supplier
	return &clone, nil
}

func (r *SupplierRepository) List(_ context.Context) ([]*domain.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Supplier, 0, len(r.suppliers))
	for _, supplier := range r.suppliers {
		if supplier.Deleted() {
			continue
		}
		clone := *supplier
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *SupplierRepository) MarkDeleted(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	supplier, ok := r.suppliers[id]
	if !ok || supplier.Deleted() {
		return ports.ErrSupplierNotFound
	}
	supplier.State = domain.StateDeleted
	return nil
}
