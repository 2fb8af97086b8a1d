package usecase

import (
	"context"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/google/uuid"
)

// ListTransactionsUseCase is the read side of purchases. Admins see every
// transaction, everyone else only their own.
type ListTransactionsUseCase struct {
	transactionRepository gateway.TransactionRepository
	userRepository        gateway.UserRepository
}

func NewListTransactions(transactionRepo gateway.TransactionRepository, userRepo gateway.UserRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepository: transactionRepo,
		userRepository:        userRepo,
	}
}

func (u *ListTransactionsUseCase) List(ctx context.Context, actor *domain.User, page domain.Page) ([]domain.TransactionDetail, int64, error) {
	if actor.IsAdmin() {
		return u.transactionRepository.List(ctx, nil, page)
	}
	return u.transactionRepository.List(ctx, &actor.ID, page)
}

func (u *ListTransactionsUseCase) Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.TransactionDetail, error) {
	t, err := u.transactionRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && t.UserID != actor.ID {
		return nil, domain.ErrTransactionNotFound
	}
	return t, nil
}

// ForUser lists the transactions of one user. Only admins may pick the user;
// the target is ignored for everyone else.
func (u *ListTransactionsUseCase) ForUser(ctx context.Context, actor *domain.User, target *uuid.UUID, page domain.Page) ([]domain.TransactionDetail, int64, error) {
	userID := actor.ID
	if target != nil && actor.IsAdmin() {
		user, err := u.userRepository.GetByID(ctx, *target)
		if err != nil {
			return nil, 0, err
		}
		userID = user.ID
	}
	return u.transactionRepository.List(ctx, &userID, page)
}
