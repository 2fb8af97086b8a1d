package memory

import (
	"context"
	"slices"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/google/uuid"
)

type TransactionRepository struct {
	store *Store
}

func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

func (r *TransactionRepository) Create(_ context.Context, t *domain.Transaction) error {
	return r.store.write(func(d *state) error {
		t.ID = uuid.New()
		if t.Timestamp.IsZero() {
			t.Timestamp = time.Now().UTC()
		}
		d.transactions = append(d.transactions, *t)
		return nil
	})
}

func (r *TransactionRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.TransactionDetail, error) {
	var found *domain.TransactionDetail
	r.store.read(func(d *state) {
		for _, t := range d.transactions {
			if t.ID == id {
				detail := d.detail(t)
				found = &detail
				return
			}
		}
	})
	if found == nil {
		return nil, domain.ErrTransactionNotFound
	}
	return found, nil
}

func (r *TransactionRepository) List(_ context.Context, userID *uuid.UUID, page domain.Page) ([]domain.TransactionDetail, int64, error) {
	var details []domain.TransactionDetail
	r.store.read(func(d *state) {
		for _, t := range d.transactions {
			if userID != nil && t.UserID != *userID {
				continue
			}
			details = append(details, d.detail(t))
		}
	})
	slices.SortStableFunc(details, func(a, b domain.TransactionDetail) int { return b.Timestamp.Compare(a.Timestamp) })
	return window(details, page), int64(len(details)), nil
}

func (r *TransactionRepository) WithTx(gateway.TransactionObject) gateway.TransactionRepository {
	return r
}

func (d *state) detail(t domain.Transaction) domain.TransactionDetail {
	dispenser := d.dispensers[t.DispenserID]
	dispenser.Rows = nil
	return domain.TransactionDetail{
		Transaction: t,
		User:        d.users[t.UserID],
		Dispenser:   dispenser,
		Product:     d.products[t.ProductID],
	}
}
