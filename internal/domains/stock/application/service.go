package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/ordermesh/inventory-api/internal/domains/stock/domain"
	"github.com/ordermesh/inventory-api/internal/domains/stock/ports"
	"github.com/ordermesh/inventory-api/internal/shared/txn"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid stock entry input")

// Service keeps product stock consistent with stock-entry credit events.
// Creating an entry credits its quantity, updating one applies the signed
// difference (migrating the credit when the product reference changed), and
// deleting one reverses the original credit. Each call is one unit of work.
type Service struct {
	repo      ports.Repository
	products  ports.ProductGateway
	suppliers ports.SupplierGateway
	tx        txn.Transactor
}

// NewService wires the stock service with its dependencies.
func NewService(repo ports.Repository, products ports.ProductGateway, suppliers ports.SupplierGateway, tx txn.Transactor) *Service {
	if tx == nil {
		tx = txn.NewSerial()
	}
	return &Service{repo: repo, products: products, suppliers: suppliers, tx: tx}
}

// CreateEntry records a receipt and credits the product's stock.
func (s *Service) CreateEntry(ctx context.Context, entry *domain.StockEntry) (*domain.StockEntry, error) {
	if entry == nil {
		return nil, fmt.Errorf("%w: entry is nil", ErrInvalidInput)
	}
	validated, err := domain.NewStockEntry(entry.ProductID, entry.SupplierID, entry.Quantity, entry.EntryDate)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.suppliers.Exists(ctx, validated.SupplierID); err != nil {
		return nil, mapError(err)
	}
	if err := s.products.Exists(ctx, validated.ProductID); err != nil {
		return nil, mapError(err)
	}
	var created *domain.StockEntry
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.products.CreditStock(ctx, validated.ProductID, validated.Quantity); err != nil {
			return err
		}
		var err error
		created, err = s.repo.Save(ctx, validated)
		if err != nil {
			_ = s.products.DebitStock(ctx, validated.ProductID, validated.Quantity)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// GetEntry loads a single live entry.
func (s *Service) GetEntry(ctx context.Context, id int64) (*domain.StockEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return entry, nil
}

// ListEntries returns all live entries.
func (s *Service) ListEntries(ctx context.Context) ([]*domain.StockEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return entries, nil
}

// ListEntriesByProduct returns the live entries crediting one product.
func (s *Service) ListEntriesByProduct(ctx context.Context, productID int64) ([]*domain.StockEntry, error) {
	entries, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, mapError(err)
	}
	return entries, nil
}

// UpdateEntry reconciles the stored credit with the entry's new quantity and
// product. Same product: only the signed quantity difference moves.
// Different product: the old product gives the old credit back and the new
// product receives the new one.
func (s *Service) UpdateEntry(ctx context.Context, entry *domain.StockEntry) (*domain.StockEntry, error) {
	if entry == nil {
		return nil, fmt.Errorf("%w: entry is nil", ErrInvalidInput)
	}
	if entry.Quantity <= 0 {
		return nil, mapError(domain.ErrInvalidQuantity)
	}
	var updated *domain.StockEntry
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, entry.ID)
		if err != nil {
			return err
		}
		targetProduct := existing.ProductID
		if entry.ProductID != 0 {
			targetProduct = entry.ProductID
		}
		targetSupplier := existing.SupplierID
		if entry.SupplierID != 0 {
			targetSupplier = entry.SupplierID
		}
		if targetSupplier != existing.SupplierID {
			if err := s.suppliers.Exists(ctx, targetSupplier); err != nil {
				return err
			}
		}

		if targetProduct == existing.ProductID {
			delta := entry.Quantity - existing.Quantity
			switch {
			case delta > 0:
				if err := s.products.CreditStock(ctx, existing.ProductID, delta); err != nil {
					return err
				}
			case delta < 0:
				if err := s.products.DebitStock(ctx, existing.ProductID, -delta); err != nil {
					return err
				}
			}
		} else {
			if err := s.products.Exists(ctx, targetProduct); err != nil {
				return err
			}
			if err := s.products.DebitStock(ctx, existing.ProductID, existing.Quantity); err != nil {
				return err
			}
			if err := s.products.CreditStock(ctx, targetProduct, entry.Quantity); err != nil {
				_ = s.products.CreditStock(ctx, existing.ProductID, existing.Quantity)
				return err
			}
		}

		existing.ProductID = targetProduct
		existing.SupplierID = targetSupplier
		existing.Quantity = entry.Quantity
		if !entry.EntryDate.IsZero() {
			existing.EntryDate = entry.EntryDate
		}
		updated, err = s.repo.Save(ctx, existing)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// DeleteEntry reverses the entry's credit and soft-deletes it. The reversal
// is conditional: stock already consumed by orders cannot be taken back, in
// which case the entry stays and the caller gets the insufficient-stock
// error.
func (s *Service) DeleteEntry(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.products.DebitStock(ctx, entry.ProductID, entry.Quantity); err != nil {
			return err
		}
		if err := s.repo.MarkDeleted(ctx, id); err != nil {
			_ = s.products.CreditStock(ctx, entry.ProductID, entry.Quantity)
			return err
		}
		return nil
	})
	return mapError(err)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidProduct) ||
		errors.Is(err, domain.ErrInvalidSupplier) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
