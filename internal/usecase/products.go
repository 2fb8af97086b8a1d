package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/google/uuid"
)

type CreateProductInput struct {
	ProductName string
	CreditCost  int64
	IsActive    *bool
}

type UpdateProductInput struct {
	ProductName *string
	CreditCost  *int64
	IsActive    *bool
}

// ProductCatalogUseCase covers the catalog CRUD. Inactive products are only
// visible to callers allowed to see them (admins).
type ProductCatalogUseCase struct {
	productRepository gateway.ProductRepository
}

func NewProductCatalog(productRepo gateway.ProductRepository) *ProductCatalogUseCase {
	return &ProductCatalogUseCase{productRepository: productRepo}
}

func (u *ProductCatalogUseCase) List(ctx context.Context, includeInactive bool) ([]domain.Product, error) {
	return u.productRepository.List(ctx, !includeInactive)
}

func (u *ProductCatalogUseCase) Get(ctx context.Context, id uuid.UUID, includeInactive bool) (*domain.Product, error) {
	product, err := u.productRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive && !includeInactive {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (u *ProductCatalogUseCase) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if input.CreditCost < 0 {
		return nil, domain.ErrInvalidAmount
	}
	now := time.Now().UTC()
	product := &domain.Product{
		ProductName: input.ProductName,
		CreditCost:  input.CreditCost,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := u.productRepository.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (u *ProductCatalogUseCase) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*domain.Product, error) {
	product, err := u.productRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.ProductName != nil {
		product.ProductName = *input.ProductName
	}
	if input.CreditCost != nil {
		if *input.CreditCost < 0 {
			return nil, domain.ErrInvalidAmount
		}
		product.CreditCost = *input.CreditCost
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.UpdatedAt = time.Now().UTC()

	if err := u.productRepository.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (u *ProductCatalogUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.productRepository.Delete(ctx, id)
}
