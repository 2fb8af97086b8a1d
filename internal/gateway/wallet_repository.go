package gateway

import (
	"context"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/google/uuid"
)

// WalletRepository is the persistence contract for wallets.
// Use cases only see this, never the concrete database.
type WalletRepository interface {
	Create(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)

	// GetByUserIDForUpdate returns the wallet and locks its row (pessimistic lock).
	GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)

	// Debit and Credit are atomic in the database and return the new balance.
	// Debit fails with domain.ErrInsufficientCredits instead of going negative.
	Debit(ctx context.Context, id uuid.UUID, amount int64) (int64, error)
	Credit(ctx context.Context, id uuid.UUID, amount int64) (int64, error)

	SetSubscriptionEnd(ctx context.Context, id uuid.UUID, end *time.Time) error

	// WithTx returns a copy of the repository bound to a transaction opened
	// by the TransactionManager.
	WithTx(tx TransactionObject) WalletRepository
}
