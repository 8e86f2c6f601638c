package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/ordermesh/inventory-api/internal/domains/catalog/domain"
	"github.com/ordermesh/inventory-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{products: map[int64]*domain.Product{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
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
	r.products[clone.ID] = &clone
	saved := clone
	return &saved, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok || product.Deleted() {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		if product.Deleted() {
			continue
		}
		clone := *product
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) Search(_ context.Context, query string) ([]*domain.Product, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Product
	for _, product := range r.products {
		if product.Deleted() {
			continue
		}
		if needle == "" ||
			strings.Contains(strings.ToLower(product.Name), needle) ||
			strings.Contains(product.Slug, needle) {
			clone := *product
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// AdjustStock applies the signed delta under the repository lock, so the
// availability check and the write are one atomic step.
func (r *Repository) AdjustStock(_ context.Context, id int64, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok || product.Deleted() {
		return ports.ErrNotFound
	}
	if product.QuantityInStock+delta < 0 {
		return ports.ErrInsufficientStock
	}
	product.QuantityInStock += delta
	return nil
}

func (r *Repository) MarkDeleted(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok || product.Deleted() {
		return ports.ErrNotFound
	}
	product.State = domain.StateDeleted
	return nil
}
