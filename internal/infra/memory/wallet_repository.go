package memory

import (
	"context"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/google/uuid"
)

type WalletRepository struct {
	store *Store
}

func NewWalletRepository(store *Store) *WalletRepository {
	return &WalletRepository{store: store}
}

func (r *WalletRepository) Create(_ context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	var wallet domain.Wallet
	err := r.store.write(func(d *state) error {
		for _, w := range d.wallets {
			if w.UserID == userID {
				return domain.ErrConflict
			}
		}
		now := time.Now().UTC()
		wallet = domain.Wallet{ID: uuid.New(), UserID: userID, CreatedAt: now, UpdatedAt: now}
		d.wallets[wallet.ID] = wallet
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *WalletRepository) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	var found *domain.Wallet
	r.store.read(func(d *state) {
		for _, w := range d.wallets {
			if w.UserID == userID {
				found = &w
				return
			}
		}
	})
	if found == nil {
		return nil, domain.ErrWalletNotFound
	}
	return found, nil
}

// GetByUserIDForUpdate needs no extra locking: units of work are serialized.
func (r *WalletRepository) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	return r.GetByUserID(ctx, userID)
}

func (r *WalletRepository) Debit(_ context.Context, id uuid.UUID, amount int64) (int64, error) {
	return r.apply(id, func(w *domain.Wallet) error { return w.Debit(amount) })
}

func (r *WalletRepository) Credit(_ context.Context, id uuid.UUID, amount int64) (int64, error) {
	return r.apply(id, func(w *domain.Wallet) error { return w.Credit(amount) })
}

func (r *WalletRepository) apply(id uuid.UUID, change func(w *domain.Wallet) error) (int64, error) {
	var balance int64
	err := r.store.write(func(d *state) error {
		w, ok := d.wallets[id]
		if !ok {
			return domain.ErrWalletNotFound
		}
		if err := change(&w); err != nil {
			return err
		}
		w.UpdatedAt = time.Now().UTC()
		d.wallets[id] = w
		balance = w.Balance
		return nil
	})
	return balance, err
}

func (r *WalletRepository) SetSubscriptionEnd(_ context.Context, id uuid.UUID, end *time.Time) error {
	return r.store.write(func(d *state) error {
		w, ok := d.wallets[id]
		if !ok {
			return domain.ErrWalletNotFound
		}
		w.SubscriptionEndDate = end
		w.UpdatedAt = time.Now().UTC()
		d.wallets[id] = w
		return nil
	})
}

func (r *WalletRepository) WithTx(gateway.TransactionObject) gateway.WalletRepository {
	return r
}
