package application

import (
	"errors"
	"fmt"

	"github.com/ordermesh/inventory-api/internal/domains/catalog/domain"
	"github.com/ordermesh/inventory-api/internal/domains/catalog/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid product input")
	// ErrNotFound signals the referenced product does not exist.
	ErrNotFound = errors.New("product not found")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeStock) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
