package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/google/uuid"
)

type GetWalletUseCase struct {
	walletRepository gateway.WalletRepository
}

func NewGetWallet(walletRepo gateway.WalletRepository) *GetWalletUseCase {
	return &GetWalletUseCase{
		walletRepository: walletRepo,
	}
}

func (u *GetWalletUseCase) Execute(ctx context.Context, actor *domain.User, userID uuid.UUID) (*domain.Wallet, error) {
	if !actor.IsAdmin() && actor.ID != userID {
		return nil, domain.ErrWalletNotFound
	}

	wallet, err := u.walletRepository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	return wallet, nil
}
