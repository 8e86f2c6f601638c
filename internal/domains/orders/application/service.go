package application

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	ordertypes "github.com/ordermesh/inventory-api/internal/domains/orders/application/types"
	"github.com/ordermesh/inventory-api/internal/domains/orders/domain"
	"github.com/ordermesh/inventory-api/internal/domains/orders/ports"
	"github.com/ordermesh/inventory-api/internal/shared/txn"
)

// Service is the inventory ledger: every order and order-item mutation goes
// through here so product stock and order totals stay consistent. All stock
// movement happens inside one unit of work per call; reservations already
// applied are released again before an error is returned, which keeps the
// memory adapters correct and is a harmless no-op under a rolled-back
// database transaction.
type Service struct {
	repo      ports.Repository
	products  ports.ProductGateway
	customers ports.CustomerGateway
	tx        txn.Transactor
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository, products ports.ProductGateway, customers ports.CustomerGateway, tx txn.Transactor) *Service {
	if tx == nil {
		tx = txn.NewSerial()
	}
	return &Service{repo: repo, products: products, customers: customers, tx: tx}
}

type reservation struct {
	productID int64
	quantity  int
}

// PlaceOrder creates an order, capturing each product's current price and
// decrementing its stock. The whole request succeeds or nothing changes: the
// first unavailable product aborts the order and releases every reservation
// already taken for it.
func (s *Service) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*domain.Order, error) {
	if input.CustomerID <= 0 {
		return nil, mapError(domain.ErrInvalidCustomer)
	}
	if len(input.Items) == 0 {
		return nil, mapError(domain.ErrNoItems)
	}
	for _, line := range input.Items {
		if line.ProductID <= 0 {
			return nil, mapError(domain.ErrInvalidProduct)
		}
		if line.Quantity <= 0 {
			return nil, mapError(domain.ErrInvalidQuantity)
		}
	}
	if err := s.customers.Exists(ctx, input.CustomerID); err != nil {
		return nil, mapError(err)
	}

	var created *domain.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var applied []reservation
		release := func() { s.releaseAll(ctx, applied) }

		items := make([]*domain.OrderItem, 0, len(input.Items))
		for _, line := range input.Items {
			snapshot, err := s.products.GetByID(ctx, line.ProductID)
			if err != nil {
				release()
				return err
			}
			if err := s.products.ReserveStock(ctx, line.ProductID, line.Quantity); err != nil {
				release()
				if errors.Is(err, ports.ErrInsufficientStock) {
					return &InsufficientStockError{
						ProductID:   snapshot.ID,
						ProductName: snapshot.Name,
						Available:   snapshot.QuantityInStock,
						Requested:   line.Quantity,
					}
				}
				return err
			}
			applied = append(applied, reservation{productID: line.ProductID, quantity: line.Quantity})
			items = append(items, &domain.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     snapshot.Price,
				State:     domain.StateActive,
			})
		}

		var orderDate time.Time
		if input.OrderDate != nil {
			orderDate = *input.OrderDate
		}
		order, err := domain.NewOrder(input.CustomerID, orderDate, items)
		if err != nil {
			release()
			return err
		}
		created, err = s.repo.Create(ctx, order)
		if err != nil {
			release()
			return err
		}
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// GetOrder loads a single live order with its live items.
func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// ListOrders returns all live orders.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}

// ListOrdersByCustomer returns the live orders owned by one customer.
func (s *Service) ListOrdersByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	if err := s.customers.Exists(ctx, customerID); err != nil {
		return nil, mapError(err)
	}
	orders, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}

// AddItem puts a product on an existing order, decrementing its stock. When
// the product is already on the order the quantities merge onto that line and
// its originally captured price stays; a new line captures the product's
// current price. The owning order's total is recomputed either way.
func (s *Service) AddItem(ctx context.Context, input ordertypes.AddItemInput) (*domain.Order, error) {
	if input.ProductID <= 0 {
		return nil, mapError(domain.ErrInvalidProduct)
	}
	if input.Quantity <= 0 {
		return nil, mapError(domain.ErrInvalidQuantity)
	}
	var updated *domain.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.repo.GetByID(ctx, input.OrderID)
		if err != nil {
			return err
		}
		snapshot, err := s.products.GetByID(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if err := s.products.ReserveStock(ctx, input.ProductID, input.Quantity); err != nil {
			if errors.Is(err, ports.ErrInsufficientStock) {
				return &InsufficientStockError{
					ProductID:   snapshot.ID,
					ProductName: snapshot.Name,
					Available:   snapshot.QuantityInStock,
					Requested:   input.Quantity,
				}
			}
			return err
		}
		release := func() { _ = s.products.ReleaseStock(ctx, input.ProductID, input.Quantity) }

		var existing *domain.OrderItem
		for _, item := range order.LiveItems() {
			if item.ProductID == input.ProductID {
				existing = item
				break
			}
		}
		if existing != nil {
			existing.Quantity += input.Quantity
			if _, err := s.repo.SaveItem(ctx, existing); err != nil {
				release()
				return err
			}
		} else {
			line := &domain.OrderItem{
				ProductID: input.ProductID,
				Quantity:  input.Quantity,
				Price:     snapshot.Price,
				State:     domain.StateActive,
			}
			if _, err := s.repo.AddItem(ctx, order.ID, line); err != nil {
				release()
				return err
			}
		}
		updated, err = s.refreshTotal(ctx, order.ID)
		if err != nil {
			release()
		}
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// UpdateItem changes one line's product or quantity and reconciles stock.
// Same product: only the signed quantity delta moves. Different product: the
// old product is credited its full old quantity and the new one must cover
// the full new quantity, with the price re-captured from the new product.
func (s *Service) UpdateItem(ctx context.Context, input ordertypes.UpdateItemInput) (*domain.Order, error) {
	if input.Quantity <= 0 {
		return nil, mapError(domain.ErrInvalidQuantity)
	}
	var updated *domain.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		item, err := s.repo.GetItem(ctx, input.ItemID)
		if err != nil {
			return err
		}
		targetProduct := item.ProductID
		if input.ProductID != 0 {
			targetProduct = input.ProductID
		}

		if targetProduct == item.ProductID {
			delta := input.Quantity - item.Quantity
			switch {
			case delta > 0:
				snapshot, err := s.products.GetByID(ctx, item.ProductID)
				if err != nil {
					return err
				}
				if err := s.products.ReserveStock(ctx, item.ProductID, delta); err != nil {
					if errors.Is(err, ports.ErrInsufficientStock) {
						return &InsufficientStockError{
							ProductID:   snapshot.ID,
							ProductName: snapshot.Name,
							Available:   snapshot.QuantityInStock,
							Requested:   delta,
						}
					}
					return err
				}
			case delta < 0:
				if err := s.products.ReleaseStock(ctx, item.ProductID, -delta); err != nil {
					return err
				}
			}
		} else {
			snapshot, err := s.products.GetByID(ctx, targetProduct)
			if err != nil {
				return err
			}
			if err := s.products.ReleaseStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			if err := s.products.ReserveStock(ctx, targetProduct, input.Quantity); err != nil {
				_ = s.products.ReserveStock(ctx, item.ProductID, item.Quantity)
				if errors.Is(err, ports.ErrInsufficientStock) {
					return &InsufficientStockError{
						ProductID:   snapshot.ID,
						ProductName: snapshot.Name,
						Available:   snapshot.QuantityInStock,
						Requested:   input.Quantity,
					}
				}
				return err
			}
			item.ProductID = targetProduct
			item.Price = snapshot.Price
		}

		item.Quantity = input.Quantity
		if _, err := s.repo.SaveItem(ctx, item); err != nil {
			return err
		}
		updated, err = s.refreshTotal(ctx, item.OrderID)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// RemoveItem soft-deletes one line, credits its stock back, and recomputes
// the owning order's total.
func (s *Service) RemoveItem(ctx context.Context, itemID int64) (*domain.Order, error) {
	var updated *domain.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		item, err := s.repo.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if err := s.products.ReleaseStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
		if err := s.repo.MarkItemDeleted(ctx, itemID); err != nil {
			_ = s.products.ReserveStock(ctx, item.ProductID, item.Quantity)
			return err
		}
		updated, err = s.refreshTotal(ctx, item.OrderID)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// DeleteOrder soft-deletes an order and restores stock for every live item
// it owned.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		var released []reservation
		undo := func() {
			for i := len(released) - 1; i >= 0; i-- {
				_ = s.products.ReserveStock(ctx, released[i].productID, released[i].quantity)
			}
		}
		for _, item := range order.LiveItems() {
			if err := s.products.ReleaseStock(ctx, item.ProductID, item.Quantity); err != nil {
				undo()
				return err
			}
			released = append(released, reservation{productID: item.ProductID, quantity: item.Quantity})
			if err := s.repo.MarkItemDeleted(ctx, item.ID); err != nil {
				undo()
				return err
			}
		}
		if err := s.repo.MarkDeleted(ctx, id); err != nil {
			undo()
			return err
		}
		return nil
	})
	return mapError(err)
}

// Stats aggregates revenue over all live orders.
func (s *Service) Stats(ctx context.Context) (*ordertypes.OrderStats, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	stats := &ordertypes.OrderStats{
		OrderCount:        int64(len(orders)),
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		OrdersPerCustomer: map[int64]int64{},
	}
	for _, order := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(order.TotalAmount)
		stats.OrdersPerCustomer[order.CustomerID]++
	}
	if stats.OrderCount > 0 {
		stats.AverageOrderValue = stats.TotalRevenue.
			Div(decimal.NewFromInt(stats.OrderCount)).
			Round(2)
	}
	return stats, nil
}

func (s *Service) refreshTotal(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.RecalculateTotal()
	if err := s.repo.UpdateTotal(ctx, orderID, order.TotalAmount); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) releaseAll(ctx context.Context, applied []reservation) {
	for i := len(applied) - 1; i >= 0; i-- {
		_ = s.products.ReleaseStock(ctx, applied[i].productID, applied[i].quantity)
	}
}

var _ ports.Service = (*Service)(nil)
