package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/postgres/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WalletRepository implements gateway.WalletRepository with pgx/v5
type WalletRepository struct {
	queries *db.Queries
}

func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{
		queries: db.New(pool),
	}
}

// Create opens an empty wallet for the user.
func (r *WalletRepository) Create(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	modelWallet, err := r.queries.CreateWallet(ctx, userID)
	if err != nil {
		if mapped := mapError(err, domain.ErrWalletNotFound); mapped == domain.ErrConflict {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	return toDomainWallet(modelWallet), nil
}

func (r *WalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	modelWallet, err := r.queries.GetWalletByUser(ctx, userID)
	if err != nil {
		// pgx returns pgx.ErrNoRows, not sql.ErrNoRows
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return toDomainWallet(modelWallet), nil
}

// 🔐 SELECT ... FOR UPDATE
func (r *WalletRepository) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	modelWallet, err := r.queries.GetWalletByUserForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return toDomainWallet(modelWallet), nil
}

// 💸 Atomic debit, the balance check happens in the database
func (r *WalletRepository) Debit(ctx context.Context, id uuid.UUID, amount int64) (int64, error) {
	balance, err := r.queries.DebitWallet(ctx, db.DebitWalletParams{
		Amount: amount,
		ID:     id,
	})
	if err != nil {
		// No row means the "balance >= amount" clause did not match
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrInsufficientCredits
		}
		return 0, fmt.Errorf("failed to debit wallet: %w", err)
	}
	return balance, nil
}

// 💰 Atomic credit
func (r *WalletRepository) Credit(ctx context.Context, id uuid.UUID, amount int64) (int64, error) {
	balance, err := r.queries.CreditWallet(ctx, db.CreditWalletParams{
		Amount: amount,
		ID:     id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrWalletNotFound
		}
		if isOutOfRange(err) {
			return 0, domain.ErrInvalidAmount
		}
		return 0, fmt.Errorf("failed to credit wallet: %w", err)
	}
	return balance, nil
}

func (r *WalletRepository) SetSubscriptionEnd(ctx context.Context, id uuid.UUID, end *time.Time) error {
	n, err := r.queries.SetWalletSubscriptionEnd(ctx, db.SetWalletSubscriptionEndParams{
		ID:                  id,
		SubscriptionEndDate: nullableTimestamptz(end),
	})
	return affected(n, err, domain.ErrWalletNotFound, "update wallet subscription")
}

// WithTx returns a copy of the repository bound to a transaction
func (r *WalletRepository) WithTx(tx gateway.TransactionObject) gateway.WalletRepository {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &WalletRepository{
		queries: r.queries.WithTx(pgTx),
	}
}

// Mapper: pgtype -> Go types
func toDomainWallet(w db.Wallet) *domain.Wallet {
	return &domain.Wallet{
		ID:                  w.ID,
		UserID:              w.UserID,
		Balance:             w.Balance,
		SubscriptionEndDate: timePtr(w.SubscriptionEndDate),
		CreatedAt:           w.CreatedAt.Time,
		UpdatedAt:           w.UpdatedAt.Time,
	}
}
