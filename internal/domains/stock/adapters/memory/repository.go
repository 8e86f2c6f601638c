package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/ordermesh/inventory-api/internal/domains/stock/domain"
	"github.com/ordermesh/inventory-api/internal/domains/stock/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory stock entry persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	entries map[int64]*domain.StockEntry
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{entries: map[int64]*domain.StockEntry{}}
}

func (r *Repository) Save(_ context.Context, entry *domain.StockEntry) (*domain.StockEntry, error) {
	if entry == nil {
		return nil, errors.New("stock entry is nil")
	}
	clone := *entry
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
	r.entries[clone.ID] = &clone
	saved := clone
	return &saved, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.StockEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[id]
	if !ok || entry.Deleted() {
		return nil, ports.ErrEntryNotFound
	}
	clone := *entry
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.StockEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked(func(*domain.StockEntry) bool { return true }), nil
}

func (r *Repository) ListByProduct(_ context.Context, productID int64) ([]*domain.StockEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked(func(entry *domain.StockEntry) bool { return entry.ProductID == productID }), nil
}

func (r *Repository) MarkDeleted(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok || entry.Deleted() {
		return ports.ErrEntryNotFound
	}
	entry.State = domain.StateDeleted
	return nil
}

func (r *Repository) listLocked(match func(*domain.StockEntry) bool) []*domain.StockEntry {
	list := make([]*domain.StockEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		if entry.Deleted() || !match(entry) {
			continue
		}
		clone := *entry
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
