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

type TransactionRepository struct {
	queries *db.Queries
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		queries: db.New(pool),
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	params := db.CreateTransactionParams{
		UserID:      tx.UserID,
		DispenserID: tx.DispenserID,
		ProductID:   tx.ProductID,
		RowNumber:   int32(tx.RowNumber),
		CreditsUsed: tx.CreditsUsed,
		Status:      string(tx.Status),
		CreatedAt:   timestamptz(tx.Timestamp),
	}

	row, err := r.queries.CreateTransaction(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	// Copy the generated ID and timestamp back into the domain object
	tx.ID = row.ID
	tx.Timestamp = row.CreatedAt.Time

	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TransactionDetail, error) {
	row, err := r.queries.GetTransactionDetail(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	detail := toDomainDetail(row.Transaction, row.User, row.Dispenser, row.Product)
	return &detail, nil
}

func (r *TransactionRepository) List(ctx context.Context, userID *uuid.UUID, page domain.Page) ([]domain.TransactionDetail, int64, error) {
	limit, offset := limitOffset(page)
	rows, err := r.queries.ListTransactionDetails(ctx, db.ListTransactionDetailsParams{
		UserID:    nullUUID(userID),
		RowLimit:  limit,
		RowOffset: offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	total, err := r.queries.CountTransactions(ctx, nullUUID(userID))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	details := make([]domain.TransactionDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, toDomainDetail(row.Transaction, row.User, row.Dispenser, row.Product))
	}
	return details, total, nil
}

func (r *TransactionRepository) WithTx(tx gateway.TransactionObject) gateway.TransactionRepository {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &TransactionRepository{
		queries: r.queries.WithTx(pgTx),
	}
}

func toDomainDetail(t db.Transaction, u db.User, d db.Dispenser, p db.Product) domain.TransactionDetail {
	return domain.TransactionDetail{
		Transaction: domain.Transaction{
			ID:          t.ID,
			UserID:      t.UserID,
			DispenserID: t.DispenserID,
			ProductID:   t.ProductID,
			RowNumber:   int(t.RowNumber),
			CreditsUsed: t.CreditsUsed,
			Status:      domain.TransactionStatus(t.Status),
			Timestamp:   t.CreatedAt.Time,
		},
		User:      *toDomainUser(u),
		Dispenser: toDomainDispenser(d),
		Product:   toDomainProduct(p),
	}
}
