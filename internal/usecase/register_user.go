package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
)

type RegisterUserInput struct {
	PhoneNumber      string
	Email            *string
	Password         string
	AccountType      domain.AccountType
	SubscriptionType domain.SubscriptionType
	Meta             RequestMeta
}

// AuthOutput is returned by registration and login.
type AuthOutput struct {
	Token  string
	User   *domain.User
	Wallet *domain.Wallet
}

// RegisterUserUseCase is the public sign-up. It always creates customers.
type RegisterUserUseCase struct {
	userRepository     gateway.UserRepository
	walletRepository   gateway.WalletRepository
	logRepository      gateway.LogRepository
	transactionManager gateway.TransactionManager
	hasher             gateway.PasswordHasher
	tokens             gateway.TokenIssuer
}

func NewRegisterUser(
	userRepo gateway.UserRepository,
	walletRepo gateway.WalletRepository,
	logRepo gateway.LogRepository,
	txManager gateway.TransactionManager,
	hasher gateway.PasswordHasher,
	tokens gateway.TokenIssuer,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepository:     userRepo,
		walletRepository:   walletRepo,
		logRepository:      logRepo,
		transactionManager: txManager,
		hasher:             hasher,
		tokens:             tokens,
	}
}

func (u *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*AuthOutput, error) {
	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		PhoneNumber:      input.PhoneNumber,
		Email:            input.Email,
		PasswordHash:     hash,
		UserType:         domain.UserTypeCustomer,
		AccountType:      orDefault(input.AccountType, domain.AccountTypeIndividual),
		SubscriptionType: orDefault(input.SubscriptionType, domain.SubscriptionNone),
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	user.AccountVerified = user.AccountType == domain.AccountTypeCorporate
	user.ApplySubscription(now)

	var wallet *domain.Wallet
	err = u.transactionManager.Run(ctx, func(txCtx context.Context) error {
		tx := txCtx.Value(gateway.TransactionKey)

		if err := u.userRepository.WithTx(tx).Create(txCtx, user); err != nil {
			return err
		}
		var err error
		wallet, err = u.walletRepository.WithTx(tx).Create(txCtx, user.ID)
		if err != nil {
			return err
		}

		entry := newLogEntry(domain.LevelInfo, domain.ActionRegistrationSuccess,
			fmt.Sprintf("Customer %s registered successfully", user.PhoneNumber), input.Meta)
		entry.UserID = userRef(user.ID)
		entry.Metadata = map[string]any{"account_type": string(user.AccountType)}
		return u.logRepository.WithTx(tx).Create(txCtx, entry)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			u.RecordFailure(ctx, input.PhoneNumber, map[string]any{"phone_number": input.PhoneNumber}, err.Error(), input.Meta)
			return nil, err
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthOutput{Token: token, User: user, Wallet: wallet}, nil
}

// RecordFailure audits a registration rejected by validation.
func (u *RegisterUserUseCase) RecordFailure(ctx context.Context, phoneNumber string, body map[string]any, reason string, meta RequestMeta) {
	entry := newLogEntry(domain.LevelWarn, domain.ActionRegistrationFailed,
		fmt.Sprintf("Registration failed for %s", phoneNumber), meta)
	entry.RequestBody = body
	entry.ErrorMessage = reason
	recordLog(ctx, u.logRepository, entry)
}

func orDefault[T ~string](v, def T) T {
	if v == "" {
		return def
	}
	return v
}
