package gateway

import (
	"context"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	// Create inserts the user and fills ID, CreatedAt and UpdatedAt.
	// Duplicate phone number or email returns domain.ErrConflict.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, page domain.Page) ([]domain.User, int64, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error

	WithTx(tx TransactionObject) UserRepository
}
