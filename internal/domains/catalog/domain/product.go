package domain

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// State tags whether an aggregate is live or soft-deleted. Deleted
// aggregates are invisible to every read and every ledger aggregation.
type State string

const (
	StateActive  State = "active"
	StateDeleted State = "deleted"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrNegativePrice = errors.New("product price must not be negative")
	ErrNegativeStock = errors.New("product stock must not be negative")
)

// Product is the catalog aggregate. QuantityInStock is the single source of
// truth the inventory ledger reads and adjusts; it never goes below zero.
type Product struct {
	ID              int64
	Name            string
	Slug            string
	Description     string
	Price           decimal.Decimal
	QuantityInStock int
	State           State
}

// NewProduct validates invariants and builds a new Product aggregate.
func NewProduct(id int64, name string, price decimal.Decimal, quantityInStock int) (*Product, error) {
	p := &Product{ID: id, QuantityInStock: quantityInStock, State: StateActive}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.Reprice(price); err != nil {
		return nil, err
	}
	if quantityInStock < 0 {
		return nil, ErrNegativeStock
	}
	return p, nil
}

// Rename mutates the product name and refreshes the slug.
func (p *Product) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	p.Slug = Slugify(name)
	return nil
}

// Reprice sets a new unit price, normalized to two decimal places.
func (p *Product) Reprice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	p.Price = price.Round(2)
	return nil
}

// AdjustStock applies a signed stock delta, refusing to cross zero.
func (p *Product) AdjustStock(delta int) error {
	next := p.QuantityInStock + delta
	if next < 0 {
		return ErrNegativeStock
	}
	p.QuantityInStock = next
	return nil
}

// Deleted reports whether the aggregate has been soft-deleted.
func (p *Product) Deleted() bool {
	return p.State == StateDeleted
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify produces a URL-safe identifier from a display name.
func Slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
