package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ordermesh/inventory-api/internal/domains/catalog/domain"
	"github.com/ordermesh/inventory-api/internal/domains/catalog/ports"
	platformpostgres "github.com/ordermesh/inventory-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type productRecord struct {
	ID              int64           `gorm:"primaryKey;column:id"`
	Name            string          `gorm:"column:name"`
	Slug            string          `gorm:"column:slug;size:150;uniqueIndex"`
	Description     string          `gorm:"column:description"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	QuantityInStock int             `gorm:"column:quantity_in_stock"`
	State           string          `gorm:"column:state;type:varchar(16);index"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Save inserts or updates a product.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if err := r.dbFrom(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":              record.Name,
				"slug":              record.Slug,
				"description":       record.Description,
				"price":             record.Price,
				"quantity_in_stock": record.QuantityInStock,
				"state":             record.State,
				"updated_at":        gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a live product by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.dbFrom(ctx).First(&record, "id = ? AND state = ?", id, string(domain.StateActive)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all live products.
func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.dbFrom(ctx).
		Where("state = ?", string(domain.StateActive)).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// Search matches live products by name or slug substring.
func (r *Repository) Search(ctx context.Context, query string) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	pattern := "%" + query + "%"
	if err := r.dbFrom(ctx).
		Where("state = ? AND (name ILIKE ? OR slug ILIKE ?)", string(domain.StateActive), pattern, pattern).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// AdjustStock applies the signed delta as one conditional UPDATE, so a
// decrement that would cross zero affects no row and reports
// ErrInsufficientStock instead.
func (r *Repository) AdjustStock(ctx context.Context, id int64, delta int) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.dbFrom(ctx).Model(&productRecord{}).
		Where("id = ? AND state = ? AND quantity_in_stock + ? >= 0", id, string(domain.StateActive), delta).
		Updates(map[string]any{
			"quantity_in_stock": gorm.Expr("quantity_in_stock + ?", delta),
			"updated_at":        gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.dbFrom(ctx).Model(&productRecord{}).
			Where("id = ? AND state = ?", id, string(domain.StateActive)).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ports.ErrNotFound
		}
		return ports.ErrInsufficientStock
	}
	return nil
}

// MarkDeleted soft-deletes a product.
func (r *Repository) MarkDeleted(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.dbFrom(ctx).Model(&productRecord{}).
		Where("id = ? AND state = ?", id, string(domain.StateActive)).
		Updates(map[string]any{
			"state":      string(domain.StateDeleted),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) dbFrom(ctx context.Context) *gorm.DB {
	return platformpostgres.DBFromContext(ctx, r.db).WithContext(ctx)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	state := string(product.State)
	if state == "" {
		state = string(domain.StateActive)
	}
	return productRecord{
		ID:              product.ID,
		Name:            product.Name,
		Slug:            product.Slug,
		Description:     product.Description,
		Price:           product.Price,
		QuantityInStock: product.QuantityInStock,
		State:           state,
	}
}

func (rec productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:              rec.ID,
		Name:            rec.Name,
		Slug:            rec.Slug,
		Description:     rec.Description,
		Price:           rec.Price,
		QuantityInStock: rec.QuantityInStock,
		State:           domain.State(rec.State),
	}
}

func toDomainList(records []productRecord) []*domain.Product {
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products
}
