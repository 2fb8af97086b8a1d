package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/google/uuid"
)

const (
	DefaultSubscriptionDays = 30
	MaxSubscriptionDays     = 365
)

var ErrInvalidDuration = errors.New("duration_days must be between 1 and 365")

type UpdateSubscriptionInput struct {
	Admin            *domain.User
	UserID           uuid.UUID
	SubscriptionType domain.SubscriptionType
	DurationDays     int
	Meta             RequestMeta
}

type UpdateSubscriptionUseCase struct {
	userRepository     gateway.UserRepository
	walletRepository   gateway.WalletRepository
	logRepository      gateway.LogRepository
	transactionManager gateway.TransactionManager
}

func NewUpdateSubscription(
	userRepo gateway.UserRepository,
	walletRepo gateway.WalletRepository,
	logRepo gateway.LogRepository,
	txManager gateway.TransactionManager,
) *UpdateSubscriptionUseCase {
	return &UpdateSubscriptionUseCase{
		userRepository:     userRepo,
		walletRepository:   walletRepo,
		logRepository:      logRepo,
		transactionManager: txManager,
	}
}

// Execute starts a new subscription window today. The end date is mirrored
// on the wallet so dispensers can read it with the balance.
func (u *UpdateSubscriptionUseCase) Execute(ctx context.Context, input UpdateSubscriptionInput) (*domain.User, error) {
	days := input.DurationDays
	if days == 0 {
		days = DefaultSubscriptionDays
	}
	if days < 1 || days > MaxSubscriptionDays {
		return nil, ErrInvalidDuration
	}

	var user *domain.User
	err := u.transactionManager.Run(ctx, func(txCtx context.Context) error {
		tx := txCtx.Value(gateway.TransactionKey)
		userRepoTx := u.userRepository.WithTx(tx)

		var err error
		user, err = userRepoTx.GetByID(txCtx, input.UserID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		end := now.AddDate(0, 0, days)
		user.SubscriptionType = input.SubscriptionType
		user.SubscriptionStartDate = &now
		user.SubscriptionEndDate = &end
		if input.SubscriptionType == domain.SubscriptionCorporate {
			user.AccountVerified = true
		}
		user.UpdatedAt = now
		if err := userRepoTx.Update(txCtx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		walletRepoTx := u.walletRepository.WithTx(tx)
		wallet, err := walletRepoTx.GetByUserIDForUpdate(txCtx, user.ID)
		switch {
		case errors.Is(err, domain.ErrWalletNotFound):
		case err != nil:
			return err
		default:
			if err := walletRepoTx.SetSubscriptionEnd(txCtx, wallet.ID, &end); err != nil {
				return fmt.Errorf("failed to update wallet subscription: %w", err)
			}
		}

		entry := newLogEntry(domain.LevelInfo, domain.ActionSubscriptionUpdated,
			fmt.Sprintf("Subscription of %s set to %s for %d days", user.PhoneNumber, input.SubscriptionType, days), input.Meta)
		entry.UserID = userRef(user.ID)
		entry.AdminID = userRef(input.Admin.ID)
		entry.Metadata = map[string]any{
			"subscription_type": string(input.SubscriptionType),
			"duration_days":     days,
		}
		return u.logRepository.WithTx(tx).Create(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
