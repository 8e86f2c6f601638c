package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ordermesh/inventory-api/internal/domains/partners/domain"
	"github.com/ordermesh/inventory-api/internal/domains/partners/ports"
	platformpostgres "github.com/ordermesh/inventory-api/internal/platform/postgres"
)

var (
	_ ports.CustomerRepository = (*CustomerRepository)(nil)
	_ ports.SupplierRepository = (*SupplierRepository)(nil)
)

type customerRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name"`
	Slug        string    `gorm:"column:slug;size:150;index"`
	ContactInfo string    `gorm:"column:contact_info"`
	State       string    `gorm:"column:state;type:varchar(16);index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

type supplierRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name"`
	ContactInfo string    `gorm:"column:contact_info"`
	State       string    `gorm:"column:state;type:varchar(16);index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (supplierRecord) TableName() string { return "suppliers" }

// CustomerRepository persists customers in PostgreSQL using GORM.
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres customer repository not configured")
	}
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	state := string(customer.State)
	if state == "" {
		state = string(domain.StateActive)
	}
	record := customerRecord{
		ID:          customer.ID,
		Name:        customer.Name,
		Slug:        customer.Slug,
		ContactInfo: customer.ContactInfo,
		State:       state,
	}
	if err := r.dbFrom(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":         record.Name,
				"slug":         record.Slug,
				"contact_info": record.ContactInfo,
				"state":        record.State,
				"updated_at":   gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres customer repository not configured")
	}
	var record customerRecord
	if err := r.dbFrom(ctx).First(&record, "id = ? AND state = ?", id, string(domain.StateActive)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrCustomerNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres customer repository not configured")
	}
	var records []customerRecord
	if err := r.dbFrom(ctx).
		Where("state = ?", string(domain.StateActive)).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	customers := make([]*domain.Customer, 0, len(records))
	for i := range records {
		customers = append(customers, records[i].toDomain())
	}
	return customers, nil
}

func (r *CustomerRepository) MarkDeleted(ctx context.Context, id int64) error {
	if r == nil || r.db == nil {
		return errors.New("postgres customer repository not configured")
	}
	result := r.dbFrom(ctx).Model(&customerRecord{}).
		Where("id = ? AND state = ?", id, string(domain.StateActive)).
		Updates(map[string]any{
			"state":      string(domain.StateDeleted),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) dbFrom(ctx context.Context) *gorm.DB {
	return platformpostgres.DBFromContext(ctx, r.db).WithContext(ctx)
}

func (rec customerRecord) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:          rec.ID,
		Name:        rec.Name,
		Slug:        rec.Slug,
		ContactInfo: rec.ContactInfo,
		State:       domain.State(rec.State),
	}
}

// SupplierRepository persists suppliers in PostgreSQL using GORM.
type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) Save(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres supplier repository not configured")
	}
	if supplier == nil {
		return nil, errors.New("supplier is nil")
	}
	state := string(supplier.State)
	if state == "" {
		state = string(domain.StateActive)
	}
	record := supplierRecord{
		ID:          supplier.ID,
		Name:        supplier.Name,
		ContactInfo: supplier.ContactInfo,
		State:       state,
	}
	if err := r.dbFrom(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":         record.Name,
				"contact_info": record.ContactInfo,
				"state":        record.State,
				"updated_at":   gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

func (r *SupplierRepository) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres supplier repository not configured")
	}
	var record supplierRecord
	if err := r.dbFrom(ctx).First(&record, "id = ? AND state = ?", id, string(domain.StateActive)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrSupplierNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *SupplierRepository) List(ctx context.Context) ([]*domain.Supplier, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres supplier repository not configured")
	}
	var records []supplierRecord
	if err := r.dbFrom(ctx).
		Where("state = ?", string(domain.StateActive)).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	suppliers := make([]*domain.Supplier, 0, len(records))
	for i := range records {
		suppliers = append(suppliers, records[i].toDomain())
	}
	return suppliers, nil
}

func (r *SupplierRepository) MarkDeleted(ctx context.Context, id int64) error {
	if r == nil || r.db == nil {
		return errors.New("postgres supplier repository not configured")
	}
	result := r.dbFrom(ctx).Model(&supplierRecord{}).
		Where("id = ? AND state = ?", id, string(domain.StateActive)).
		Updates(map[string]any{
			"state":      string(domain.StateDeleted),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrSupplierNotFound
	}
	return nil
}

func (r *SupplierRepository) dbFrom(ctx context.Context) *gorm.DB {
	return platformpostgres.DBFromContext(ctx, r.db).WithContext(ctx)
}

func (rec supplierRecord) toDomain() *domain.Supplier {
	return &domain.Supplier{
		ID:          rec.ID,
		Name:        rec.Name,
		ContactInfo: rec.ContactInfo,
		State:       domain.State(rec.State),
	}
}
