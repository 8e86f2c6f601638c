package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&customerRecord{},
		&supplierRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&stockEntryRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter.
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

// Customer schema mirrors the partners Postgres adapter.
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

// Supplier schema mirrors the partners Postgres adapter.
type supplierRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name"`
	ContactInfo string    `gorm:"column:contact_info"`
	State       string    `gorm:"column:state;type:varchar(16);index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (supplierRecord) TableName() string { return "suppliers" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	CustomerID  int64           `gorm:"column:customer_id;index"`
	OrderDate   time.Time       `gorm:"column:order_date"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2)"`
	State       string          `gorm:"column:state;type:varchar(16);index"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Order item schema mirrors the orders Postgres adapter.
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

// Stock entry schema mirrors the stock Postgres adapter.
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
