package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ordermesh/inventory-api/internal/domains/orders/domain"
	"github.com/ordermesh/inventory-api/internal/domains/orders/ports"
	platformpostgres "github.com/ordermesh/inventory-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and order items in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID          int64             `gorm:"primaryKey;column:id"`
	CustomerID  int64             `gorm:"column:customer_id;index"`
	OrderDate   time.Time         `gorm:"column:order_date"`
	TotalAmount decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2)"`
	State       string            `gorm:"column:state;type:varchar(16);index"`
	Items       []orderItemRecord `gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time         `gorm:"column:created_at"`
	UpdatedAt   time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OrderID   int64           `gorm:"column:order_id;index"`
	ProductID int64           `gorm:"column:product_id;index"`
	Quantity  int             `gorm:"column:quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	State     string          `gorm:"column:state;type:varchar(16);index"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Create inserts the order together with its items.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := orderRecord{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		OrderDate:   order.OrderDate,
		TotalAmount: order.TotalAmount,
		State:       stateOrActive(order.State),
	}
	for _, item := range order.Items {
		record.Items = append(record.Items, orderItemRecord{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			State:     stateOrActive(item.State),
		})
	}
	if err := r.dbFrom(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a live order with its live items.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	err := r.dbFrom(ctx).
		Preload("Items", "state = ?", string(domain.StateActive)).
		First(&record, "id = ? AND state = ?", id, string(domain.StateActive)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrOrderNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all live orders with their live items.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.list(ctx, "state = ?", string(domain.StateActive))
}

// ListByCustomer returns the live orders owned by one customer.
func (r *Repository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	return r.list(ctx, "customer_id = ? AND state = ?", customerID, string(domain.StateActive))
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	err := r.dbFrom(ctx).
		Preload("Items", "state = ?", string(domain.StateActive)).
		Where(query, args...).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// UpdateTotal writes a recomputed total amount.
func (r *Repository) UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.dbFrom(ctx).Model(&orderRecord{}).
		Where("id = ? AND state = ?", orderID, string(domain.StateActive)).
		Updates(map[string]any{
			"total_amount": total,
			"updated_at":   gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrOrderNotFound
	}
	return nil
}

// MarkDeleted soft-deletes an order. Item rows keep their own state; the
// ledger soft-deletes them individually as it restores stock.
func (r *Repository) MarkDeleted(ctx context.Context, orderID int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.dbFrom(ctx).Model(&orderRecord{}).
		Where("id = ? AND state = ?", orderID, string(domain.StateActive)).
		Updates(map[string]any{
			"state":      string(domain.StateDeleted),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrOrderNotFound
	}
	return nil
}

// GetItem fetches a live order item.
func (r *Repository) GetItem(ctx context.Context, itemID int64) (*domain.OrderItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderItemRecord
	err := r.dbFrom(ctx).First(&record, "id = ? AND state = ?", itemID, string(domain.StateActive)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrItemNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// AddItem inserts a new item row for a live order.
func (r *Repository) AddItem(ctx context.Context, orderID int64, item *domain.OrderItem) (*domain.OrderItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("order item is nil")
	}
	var count int64
	err := r.dbFrom(ctx).Model(&orderRecord{}).
		Where("id = ? AND state = ?", orderID, string(domain.StateActive)).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ports.ErrOrderNotFound
	}
	record := orderItemRecord{
		OrderID:   orderID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Price:     item.Price,
		State:     stateOrActive(item.State),
	}
	if err := r.dbFrom(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// SaveItem updates an existing live item's product, quantity, and price.
func (r *Repository) SaveItem(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("order item is nil")
	}
	result := r.dbFrom(ctx).Model(&orderItemRecord{}).
		Where("id = ? AND state = ?", item.ID, string(domain.StateActive)).
		Updates(map[string]any{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
			"price":      item.Price,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrItemNotFound
	}
	return r.GetItem(ctx, item.ID)
}

// MarkItemDeleted soft-deletes an order item.
func (r *Repository) MarkItemDeleted(ctx context.Context, itemID int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.dbFrom(ctx).Model(&orderItemRecord{}).
		Where("id = ? AND state = ?", itemID, string(domain.StateActive)).
		Updates(map[string]any{
			"state":      string(domain.StateDeleted),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrItemNotFound
	}
	return nil
}

func (r *Repository) dbFrom(ctx context.Context) *gorm.DB {
	return platformpostgres.DBFromContext(ctx, r.db).WithContext(ctx)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func stateOrActive(state domain.State) string {
	if state == "" {
		return string(domain.StateActive)
	}
	return string(state)
}

func (rec orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:          rec.ID,
		CustomerID:  rec.CustomerID,
		OrderDate:   rec.OrderDate,
		TotalAmount: rec.TotalAmount,
		State:       domain.State(rec.State),
	}
	for i := range rec.Items {
		order.Items = append(order.Items, rec.Items[i].toDomain())
	}
	return order
}

func (rec orderItemRecord) toDomain() *domain.OrderItem {
	return &domain.OrderItem{
		ID:        rec.ID,
		OrderID:   rec.OrderID,
		ProductID: rec.ProductID,
		Quantity:  rec.Quantity,
		Price:     rec.Price,
		State:     domain.State(rec.State),
	}
}
