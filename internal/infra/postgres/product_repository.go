package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/postgres/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	queries *db.Queries
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{
		queries: db.New(pool),
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	row, err := r.queries.CreateProduct(ctx, db.CreateProductParams{
		ProductName: product.ProductName,
		CreditCost:  product.CreditCost,
		IsActive:    product.IsActive,
		CreatedAt:   timestamptz(product.CreatedAt),
		UpdatedAt:   timestamptz(product.UpdatedAt),
	})
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	*product = toDomainProduct(row)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	row, err := r.queries.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	p := toDomainProduct(row)
	return &p, nil
}

func (r *ProductRepository) GetActiveForUpdate(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	row, err := r.queries.GetActiveProductForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to lock product: %w", err)
	}
	p := toDomainProduct(row)
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context, activeOnly bool) ([]domain.Product, error) {
	rows, err := r.queries.ListProducts(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, toDomainProduct(row))
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	n, err := r.queries.UpdateProduct(ctx, db.UpdateProductParams{
		ID:          product.ID,
		ProductName: product.ProductName,
		CreditCost:  product.CreditCost,
		IsActive:    product.IsActive,
		UpdatedAt:   timestamptz(product.UpdatedAt),
	})
	return affected(n, err, domain.ErrProductNotFound, "update product")
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.queries.DeleteProduct(ctx, id)
	return affected(n, err, domain.ErrProductNotFound, "delete product")
}

func (r *ProductRepository) WithTx(tx gateway.TransactionObject) gateway.ProductRepository {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &ProductRepository{
		queries: r.queries.WithTx(pgTx),
	}
}

func toDomainProduct(p db.Product) domain.Product {
	return domain.Product{
		ID:          p.ID,
		ProductName: p.ProductName,
		CreditCost:  p.CreditCost,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
	}
}
