package application

import (
	"context"
	"errors"

	"github.com/ordermesh/inventory-api/internal/domains/catalog/domain"
	"github.com/ordermesh/inventory-api/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Rename(product.Name); err != nil {
		return nil, mapError(err)
	}
	if err := product.Reprice(product.Price); err != nil {
		return nil, mapError(err)
	}
	if product.QuantityInStock < 0 {
		return nil, mapError(domain.ErrNegativeStock)
	}
	product.State = domain.StateActive
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	existing, err := s.repo.GetByID(ctx, product.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := existing.Rename(product.Name); err != nil {
		return nil, mapError(err)
	}
	if err := existing.Reprice(product.Price); err != nil {
		return nil, mapError(err)
	}
	existing.Description = product.Description
	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return products, nil
}

func (s *Service) SearchProducts(ctx context.Context, query string) ([]*domain.Product, error) {
	products, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	return products, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.MarkDeleted(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
