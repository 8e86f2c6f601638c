package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ordermesh/inventory-api/internal/domains/orders/domain"
	"github.com/ordermesh/inventory-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory orders persistence adapter. Orders and items
// are stored separately so item-level mutations do not rewrite the whole
// aggregate.
type Repository struct {
	mu        sync.RWMutex
	orders    map[int64]*domain.Order
	items     map[int64]*domain.OrderItem
	nextOrder int64
	nextItem  int64
}

func NewRepository() *Repository {
	return &Repository{
		orders: map[int64]*domain.Order{},
		items:  map[int64]*domain.OrderItem{},
	}
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *order
	if stored.ID == 0 {
		r.nextOrder++
		stored.ID = r.nextOrder
	} else if stored.ID > r.nextOrder {
		r.nextOrder = stored.ID
	}
	if stored.State == "" {
		stored.State = domain.StateActive
	}
	stored.Items = nil
	for _, item := range order.Items {
		line := *item
		if line.ID == 0 {
			r.nextItem++
			line.ID = r.nextItem
		} else if line.ID > r.nextItem {
			r.nextItem = line.ID
		}
		line.OrderID = stored.ID
		if line.State == "" {
			line.State = domain.StateActive
		}
		r.items[line.ID] = &line
		stored.Items = append(stored.Items, &line)
	}
	r.orders[stored.ID] = &stored
	return r.cloneOrderLocked(stored.ID)
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cloneOrderLocked(id)
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked(func(*domain.Order) bool { return true }), nil
}

func (r *Repository) ListByCustomer(_ context.Context, customerID int64) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked(func(order *domain.Order) bool { return order.CustomerID == customerID }), nil
}

func (r *Repository) UpdateTotal(_ context.Context, orderID int64, total decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok || order.Deleted() {
		return ports.ErrOrderNotFound
	}
	order.TotalAmount = total
	return nil
}

func (r *Repository) MarkDeleted(_ context.Context, orderID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok || order.Deleted() {
		return ports.ErrOrderNotFound
	}
	order.State = domain.StateDeleted
	return nil
}

func (r *Repository) GetItem(_ context.Context, itemID int64) (*domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[itemID]
	if !ok || item.Deleted() {
		return nil, ports.ErrItemNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *Repository) AddItem(_ context.Context, orderID int64, item *domain.OrderItem) (*domain.OrderItem, error) {
	if item == nil {
		return nil, errors.New("order item is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok || order.Deleted() {
		return nil, ports.ErrOrderNotFound
	}
	line := *item
	r.nextItem++
	line.ID = r.nextItem
	line.OrderID = orderID
	if line.State == "" {
		line.State = domain.StateActive
	}
	r.items[line.ID] = &line
	order.Items = append(order.Items, &line)
	saved := line
	return &saved, nil
}

func (r *Repository) SaveItem(_ context.Context, item *domain.OrderItem) (*domain.OrderItem, error) {
	if item == nil {
		return nil, errors.New("order item is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[item.ID]
	if !ok || existing.Deleted() {
		return nil, ports.ErrItemNotFound
	}
	clone := *item
	*existing = clone
	saved := clone
	return &saved, nil
}

func (r *Repository) MarkItemDeleted(_ context.Context, itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok || item.Deleted() {
		return ports.ErrItemNotFound
	}
	item.State = domain.StateDeleted
	return nil
}

// cloneOrderLocked copies a live order with its live items, rebuilding the
// item slice from the shared item table. Caller holds at least a read lock.
func (r *Repository) cloneOrderLocked(id int64) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok || order.Deleted() {
		return nil, ports.ErrOrderNotFound
	}
	clone := *order
	clone.Items = nil
	for _, item := range order.Items {
		current, ok := r.items[item.ID]
		if !ok || current.Deleted() {
			continue
		}
		line := *current
		clone.Items = append(clone.Items, &line)
	}
	return &clone, nil
}

func (r *Repository) listLocked(match func(*domain.Order) bool) []*domain.Order {
	list := make([]*domain.Order, 0, len(r.orders))
	for id, order := range r.orders {
		if order.Deleted() || !match(order) {
			continue
		}
		clone, err := r.cloneOrderLocked(id)
		if err != nil {
			continue
		}
		list = append(list, clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
