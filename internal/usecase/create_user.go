package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
)

type CreateUserInput struct {
	Admin            *domain.User
	PhoneNumber      string
	Email            *string
	Password         string
	UserType         domain.UserType
	AccountType      domain.AccountType
	SubscriptionType domain.SubscriptionType
	Meta             RequestMeta
}

// CreateUserUseCase lets an admin create users of any type.
type CreateUserUseCase struct {
	userRepository     gateway.UserRepository
	walletRepository   gateway.WalletRepository
	logRepository      gateway.LogRepository
	transactionManager gateway.TransactionManager
	hasher             gateway.PasswordHasher
}

func NewCreateUser(
	userRepo gateway.UserRepository,
	walletRepo gateway.WalletRepository,
	logRepo gateway.LogRepository,
	txManager gateway.TransactionManager,
	hasher gateway.PasswordHasher,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepository:     userRepo,
		walletRepository:   walletRepo,
		logRepository:      logRepo,
		transactionManager: txManager,
		hasher:             hasher,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		PhoneNumber:      input.PhoneNumber,
		Email:            input.Email,
		PasswordHash:     hash,
		UserType:         orDefault(input.UserType, domain.UserTypeCustomer),
		AccountType:      orDefault(input.AccountType, domain.AccountTypeIndividual),
		SubscriptionType: orDefault(input.SubscriptionType, domain.SubscriptionNone),
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	user.ApplySubscription(now)
	// Staff accounts are trusted on creation.
	if !user.IsCustomer() {
		user.AccountVerified = true
	}

	err = uc.transactionManager.Run(ctx, func(txCtx context.Context) error {
		tx := txCtx.Value(gateway.TransactionKey)

		if err := uc.userRepository.WithTx(tx).Create(txCtx, user); err != nil {
			return err
		}
		if user.IsCustomer() {
			if _, err := uc.walletRepository.WithTx(tx).Create(txCtx, user.ID); err != nil {
				return err
			}
		}

		entry := newLogEntry(domain.LevelInfo, domain.ActionAdminUserCreation,
			fmt.Sprintf("Admin created %s user %s", user.UserType, user.PhoneNumber), input.Meta)
		entry.UserID = userRef(user.ID)
		entry.AdminID = userRef(input.Admin.ID)
		return uc.logRepository.WithTx(tx).Create(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
