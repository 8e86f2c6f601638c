package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ordermesh/inventory-api/internal/domains/stock/domain"
	"github.com/ordermesh/inventory-api/internal/domains/stock/ports"
	platformpostgres "github.com/ordermesh/inventory-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists stock entries in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type stockEntryRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	ProductID  int64     `gorm:"column:product_id;index"`
	SupplierID int64     `gorm:"column:supplier_id;index"`
	Quantity   int       `gorm:"column:quantity"`
	EntryDate  time.Time `gorm:"column:entry_date"`
	State      string    `gorm:"column:state;type:varchar(16);index"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (stockEntryRecord) TableName() string { return "stock_entries" }

// Save inserts or updates a stock entry.
func (r *Repository) Save(ctx context.Context, entry *domain.StockEntry) (*domain.StockEntry, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errors.New("stock entry is nil")
	}
	state := string(entry.State)
	if state == "" {
		state = string(domain.StateActive)
	}
	record := stockEntryRecord{
		ID:         entry.ID,
		ProductID:  entry.ProductID,
		SupplierID: entry.SupplierID,
		Quantity:   entry.Quantity,
		EntryDate:  entry.EntryDate,
		State:      state,
	}
	if err := r.dbFrom(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"product_id":  record.ProductID,
				"supplier_id": record.SupplierID,
				"quantity":    record.Quantity,
				"entry_date":  record.EntryDate,
				"state":       record.State,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a live stock entry.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.StockEntry, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record stockEntryRecord
	if err := r.dbFrom(ctx).First(&record, "id = ? AND state = ?", id, string(domain.StateActive)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrEntryNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all live stock entries.
func (r *Repository) List(ctx context.Context) ([]*domain.StockEntry, error) {
	return r.list(ctx, "state = ?", string(domain.StateActive))
}

// ListByProduct returns the live entries crediting one product.
func (r *Repository) ListByProduct(ctx context.Context, productID int64) ([]*domain.StockEntry, error) {
	return r.list(ctx, "product_id = ? AND state = ?", productID, string(domain.StateActive))
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]*domain.StockEntry, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []stockEntryRecord
	if err := r.dbFrom(ctx).
		Where(query, args...).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	entries := make([]*domain.StockEntry, 0, len(records))
	for i := range records {
		entries = append(entries, records[i].toDomain())
	}
	return entries, nil
}

// MarkDeleted soft-deletes a stock entry.
func (r *Repository) MarkDeleted(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.dbFrom(ctx).Model(&stockEntryRecord{}).
		Where("id = ? AND state = ?", id, string(domain.StateActive)).
		Updates(map[string]any{
			"state":      string(domain.StateDeleted),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrEntryNotFound
	}
	return nil
}

func (r *Repository) dbFrom(ctx context.Context) *gorm.DB {
	return platformpostgres.DBFromContext(ctx, r.db).WithContext(ctx)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres stock entry repository not configured")
	}
	return nil
}

func (rec stockEntryRecord) toDomain() *domain.StockEntry {
	return &domain.StockEntry{
		ID:         rec.ID,
		ProductID:  rec.ProductID,
		SupplierID: rec.SupplierID,
		Quantity:   rec.Quantity,
		EntryDate:  rec.EntryDate,
		State:      domain.State(rec.State),
	}
}
