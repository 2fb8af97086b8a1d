package gateway

import (
	"context"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/google/uuid"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TransactionDetail, error)
	// List returns newest first. A nil userID lists every user.
	List(ctx context.Context, userID *uuid.UUID, page domain.Page) ([]domain.TransactionDetail, int64, error)

	// WithTx follows the same pattern as the wallet to join the atomic unit.
	WithTx(tx TransactionObject) TransactionRepository
}
