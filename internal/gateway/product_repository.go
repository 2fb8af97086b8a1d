package gateway

import (
	"context"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	// GetActiveForUpdate locks an active product row. Missing or inactive
	// products return domain.ErrProductNotFound.
	GetActiveForUpdate(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	WithTx(tx TransactionObject) ProductRepository
}
