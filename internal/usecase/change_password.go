package usecase

import (
	"context"
	"fmt"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
)

type ChangePasswordInput struct {
	User            *domain.User
	CurrentPassword string
	NewPassword     string
	Meta            RequestMeta
}

type ChangePasswordUseCase struct {
	userRepository gateway.UserRepository
	logRepository  gateway.LogRepository
	hasher         gateway.PasswordHasher
}

func NewChangePassword(userRepo gateway.UserRepository, logRepo gateway.LogRepository, hasher gateway.PasswordHasher) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		userRepository: userRepo,
		logRepository:  logRepo,
		hasher:         hasher,
	}
}

func (u *ChangePasswordUseCase) Execute(ctx context.Context, input ChangePasswordInput) error {
	user := input.User

	if err := u.hasher.Compare(user.PasswordHash, input.CurrentPassword); err != nil {
		entry := newLogEntry(domain.LevelWarn, domain.ActionPasswordChangeFailed,
			"Password change failed - incorrect current password", input.Meta)
		entry.UserID = userRef(user.ID)
		recordLog(ctx, u.logRepository, entry)
		return domain.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := u.userRepository.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	user.PasswordHash = hash

	entry := newLogEntry(domain.LevelInfo, domain.ActionPasswordChanged,
		fmt.Sprintf("Password changed successfully for %s", user.PhoneNumber), input.Meta)
	entry.UserID = userRef(user.ID)
	recordLog(ctx, u.logRepository, entry)
	return nil
}
