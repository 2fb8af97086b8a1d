package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/google/uuid"
)

type AddCreditsInput struct {
	Admin   *domain.User
	UserID  uuid.UUID
	Credits int64
	Meta    RequestMeta
}

type AddCreditsOutput struct {
	Credits    int64
	NewBalance int64
}

type AddCreditsUseCase struct {
	userRepository     gateway.UserRepository
	walletRepository   gateway.WalletRepository
	logRepository      gateway.LogRepository
	transactionManager gateway.TransactionManager
}

func NewAddCredits(
	userRepo gateway.UserRepository,
	walletRepo gateway.WalletRepository,
	logRepo gateway.LogRepository,
	txManager gateway.TransactionManager,
) *AddCreditsUseCase {
	return &AddCreditsUseCase{
		userRepository:     userRepo,
		walletRepository:   walletRepo,
		logRepository:      logRepo,
		transactionManager: txManager,
	}
}

// Execute tops up the wallet of a user, creating the wallet when the user
// never had one (staff accounts).
func (u *AddCreditsUseCase) Execute(ctx context.Context, input AddCreditsInput) (*AddCreditsOutput, error) {
	if input.Credits <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	var newBalance int64
	err := u.transactionManager.Run(ctx, func(txCtx context.Context) error {
		tx := txCtx.Value(gateway.TransactionKey)
		walletRepoTx := u.walletRepository.WithTx(tx)

		user, err := u.userRepository.WithTx(tx).GetByID(txCtx, input.UserID)
		if err != nil {
			return err
		}

		wallet, err := walletRepoTx.GetByUserIDForUpdate(txCtx, user.ID)
		if errors.Is(err, domain.ErrWalletNotFound) {
			wallet, err = walletRepoTx.Create(txCtx, user.ID)
		}
		if err != nil {
			return err
		}
		if !wallet.CanCredit(input.Credits) {
			return domain.ErrInvalidAmount
		}

		newBalance, err = walletRepoTx.Credit(txCtx, wallet.ID, input.Credits)
		if err != nil {
			return fmt.Errorf("failed to credit wallet %s: %w", wallet.ID, err)
		}

		entry := newLogEntry(domain.LevelInfo, domain.ActionCreditsAdded,
			fmt.Sprintf("Admin added %d credits to user %s", input.Credits, user.PhoneNumber), input.Meta)
		entry.UserID = userRef(user.ID)
		entry.AdminID = userRef(input.Admin.ID)
		entry.Metadata = map[string]any{
			"credits_added": input.Credits,
			"new_balance":   newBalance,
		}
		return u.logRepository.WithTx(tx).Create(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	return &AddCreditsOutput{Credits: input.Credits, NewBalance: newBalance}, nil
}
