package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/google/uuid"
)

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	PhoneNumber      *string
	Email            *string
	UserType         *domain.UserType
	AccountType      *domain.AccountType
	SubscriptionType *domain.SubscriptionType
	IsActive         *bool
}

type ManageUsersUseCase struct {
	userRepository gateway.UserRepository
}

func NewManageUsers(userRepo gateway.UserRepository) *ManageUsersUseCase {
	return &ManageUsersUseCase{userRepository: userRepo}
}

func (u *ManageUsersUseCase) List(ctx context.Context, actor *domain.User, page domain.Page) ([]domain.User, int64, error) {
	if !actor.IsAdmin() {
		return []domain.User{*actor}, 1, nil
	}
	return u.userRepository.List(ctx, page)
}

// Get hides other users from non-admins as if they did not exist.
func (u *ManageUsersUseCase) Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, domain.ErrUserNotFound
	}
	return u.userRepository.GetByID(ctx, id)
}

func (u *ManageUsersUseCase) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := u.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && (input.UserType != nil || input.IsActive != nil || input.SubscriptionType != nil) {
		return nil, domain.ErrForbidden
	}

	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.Email != nil {
		if *input.Email == "" {
			user.Email = nil
		} else {
			user.Email = input.Email
		}
	}
	if input.UserType != nil {
		user.UserType = *input.UserType
	}
	if input.AccountType != nil {
		user.AccountType = *input.AccountType
	}
	if input.SubscriptionType != nil {
		user.SubscriptionType = *input.SubscriptionType
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	user.UpdatedAt = time.Now().UTC()

	if err := u.userRepository.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (u *ManageUsersUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.userRepository.Delete(ctx, id)
}
