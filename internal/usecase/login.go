package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/rs/zerolog/log"
)

type LoginInput struct {
	PhoneNumber string
	Email       string
	Password    string
	Meta        RequestMeta
}

type LoginUseCase struct {
	userRepository   gateway.UserRepository
	walletRepository gateway.WalletRepository
	logRepository    gateway.LogRepository
	hasher           gateway.PasswordHasher
	tokens           gateway.TokenIssuer
}

func NewLogin(
	userRepo gateway.UserRepository,
	walletRepo gateway.WalletRepository,
	logRepo gateway.LogRepository,
	hasher gateway.PasswordHasher,
	tokens gateway.TokenIssuer,
) *LoginUseCase {
	return &LoginUseCase{
		userRepository:   userRepo,
		walletRepository: walletRepo,
		logRepository:    logRepo,
		hasher:           hasher,
		tokens:           tokens,
	}
}

// Execute authenticates by phone number, falling back to email.
func (u *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*AuthOutput, error) {
	var (
		user *domain.User
		err  error
	)
	if input.PhoneNumber != "" {
		user, err = u.userRepository.GetByPhoneNumber(ctx, input.PhoneNumber)
	} else {
		user, err = u.userRepository.GetByEmail(ctx, input.Email)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			entry := newLogEntry(domain.LevelWarn, domain.ActionLoginFailed, "Login failed - user not found", input.Meta)
			entry.RequestBody = map[string]any{"phone_number": input.PhoneNumber, "email": input.Email}
			recordLog(ctx, u.logRepository, entry)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := u.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		entry := newLogEntry(domain.LevelWarn, domain.ActionLoginFailed,
			fmt.Sprintf("Login failed - invalid password for %s", user.PhoneNumber), input.Meta)
		entry.UserID = userRef(user.ID)
		recordLog(ctx, u.logRepository, entry)
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		entry := newLogEntry(domain.LevelWarn, domain.ActionLoginFailed,
			fmt.Sprintf("Login failed - account deactivated for %s", user.PhoneNumber), input.Meta)
		entry.UserID = userRef(user.ID)
		recordLog(ctx, u.logRepository, entry)
		return nil, domain.ErrAccountDeactivated
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	now := time.Now().UTC()
	if err := u.userRepository.TouchLastLogin(ctx, user.ID, now); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to update last login")
	} else {
		user.LastLogin = &now
	}

	entry := newLogEntry(domain.LevelInfo, domain.ActionLoginSuccess,
		fmt.Sprintf("User %s logged in successfully", user.PhoneNumber), input.Meta)
	entry.UserID = userRef(user.ID)
	entry.Metadata = map[string]any{"user_type": string(user.UserType)}
	recordLog(ctx, u.logRepository, entry)

	wallet, err := u.walletRepository.GetByUserID(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrWalletNotFound) {
			return nil, fmt.Errorf("failed to load wallet: %w", err)
		}
		wallet = nil
	}

	return &AuthOutput{Token: token, User: user, Wallet: wallet}, nil
}
