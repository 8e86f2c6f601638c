package domain

import (
	"errors"
	"strings"
)

// State tags whether a partner is live or soft-deleted.
type State string

const (
	StateActive  State = "active"
	StateDeleted State = "deleted"
)

var ErrEmptyName = errors.New("partner name is required")

// Customer places orders.
type Customer struct {
	ID          int64
	Name        string
	Slug        string
	ContactInfo string
	State       State
}

// Supplier delivers stock entries.
type Supplier struct {
	ID          int64
	Name        string
	ContactInfo string
	State       State
}

// NewCustomer validates and constructs a customer.
func NewCustomer(id int64, name, contactInfo string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &Customer{
		ID:          id,
		Name:        name,
		Slug:        slugify(name),
		ContactInfo: contactInfo,
		State:       StateActive,
	}, nil
}

// NewSupplier validates and constructs a supplier.
func NewSupplier(id int64, name, contactInfo string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &Supplier{ID: id, Name: name, ContactInfo: contactInfo, State: StateActive}, nil
}

func (c *Customer) Deleted() bool { return c.State == StateDeleted }
func (s *Supplier) Deleted() bool { return s.State == StateDeleted }

// Rename updates the customer name and refreshes the slug.
func (c *Customer) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	c.Name = name
	c.Slug = slugify(name)
	return nil
}

// Rename updates the supplier name.
func (s *Supplier) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	s.Name = name
	return nil
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
