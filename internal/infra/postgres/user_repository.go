package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/postgres/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	queries *db.Queries
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		queries: db.New(pool),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	row, err := r.queries.CreateUser(ctx, db.CreateUserParams{
		PhoneNumber:           user.PhoneNumber,
		Email:                 textToPgType(user.Email),
		PasswordHash:          user.PasswordHash,
		UserType:              string(user.UserType),
		AccountType:           string(user.AccountType),
		SubscriptionType:      string(user.SubscriptionType),
		SubscriptionStartDate: nullableTimestamptz(user.SubscriptionStartDate),
		SubscriptionEndDate:   nullableTimestamptz(user.SubscriptionEndDate),
		AccountVerified:       user.AccountVerified,
		IsActive:              user.IsActive,
		CreatedAt:             timestamptz(user.CreatedAt),
		UpdatedAt:             timestamptz(user.UpdatedAt),
	})
	if err != nil {
		if mapped := mapError(err, domain.ErrUserNotFound); mapped == domain.ErrConflict {
			return mapped
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	*user = *toDomainUser(row)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.get(r.queries.GetUser(ctx, id))
}

func (r *UserRepository) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.User, error) {
	return r.get(r.queries.GetUserByPhoneNumber(ctx, phoneNumber))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(r.queries.GetUserByEmail(ctx, textToPgType(&email)))
}

func (r *UserRepository) get(row db.User, err error) (*domain.User, error) {
	if err != nil {
		if mapped := mapError(err, domain.ErrUserNotFound); mapped == domain.ErrUserNotFound {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toDomainUser(row), nil
}

func (r *UserRepository) List(ctx context.Context, page domain.Page) ([]domain.User, int64, error) {
	limit, offset := limitOffset(page)
	rows, err := r.queries.ListUsers(ctx, db.ListUsersParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	total, err := r.queries.CountUsers(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, *toDomainUser(row))
	}
	return users, total, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	n, err := r.queries.UpdateUser(ctx, db.UpdateUserParams{
		ID:                    user.ID,
		PhoneNumber:           user.PhoneNumber,
		Email:                 textToPgType(user.Email),
		UserType:              string(user.UserType),
		AccountType:           string(user.AccountType),
		SubscriptionType:      string(user.SubscriptionType),
		SubscriptionStartDate: nullableTimestamptz(user.SubscriptionStartDate),
		SubscriptionEndDate:   nullableTimestamptz(user.SubscriptionEndDate),
		AccountVerified:       user.AccountVerified,
		IsActive:              user.IsActive,
		UpdatedAt:             timestamptz(user.UpdatedAt),
	})
	return affected(n, err, domain.ErrUserNotFound, "update user")
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	n, err := r.queries.UpdateUserPassword(ctx, db.UpdateUserPasswordParams{ID: id, PasswordHash: passwordHash})
	return affected(n, err, domain.ErrUserNotFound, "update password")
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	n, err := r.queries.TouchLastLogin(ctx, db.TouchLastLoginParams{ID: id, LastLogin: timestamptz(at)})
	return affected(n, err, domain.ErrUserNotFound, "update last login")
}

// Delete relies on ON DELETE CASCADE for the wallet and transactions.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.queries.DeleteUser(ctx, id)
	return affected(n, err, domain.ErrUserNotFound, "delete user")
}

func (r *UserRepository) WithTx(tx gateway.TransactionObject) gateway.UserRepository {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &UserRepository{
		queries: r.queries.WithTx(pgTx),
	}
}

// affected checks the result of an :execrows query.
func affected(n int64, err error, notFound error, op string) error {
	if err != nil {
		if mapped := mapError(err, notFound); mapped == domain.ErrConflict {
			return mapped
		}
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func toDomainUser(u db.User) *domain.User {
	return &domain.User{
		ID:                    u.ID,
		PhoneNumber:           u.PhoneNumber,
		Email:                 textPtr(u.Email),
		PasswordHash:          u.PasswordHash,
		UserType:              domain.UserType(u.UserType),
		AccountType:           domain.AccountType(u.AccountType),
		SubscriptionType:      domain.SubscriptionType(u.SubscriptionType),
		SubscriptionStartDate: timePtr(u.SubscriptionStartDate),
		SubscriptionEndDate:   timePtr(u.SubscriptionEndDate),
		AccountVerified:       u.AccountVerified,
		IsActive:              u.IsActive,
		LastLogin:             timePtr(u.LastLogin),
		CreatedAt:             u.CreatedAt.Time,
		UpdatedAt:             u.UpdatedAt.Time,
	}
}
