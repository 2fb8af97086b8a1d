package memory

import (
	"context"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
)

// Uow implements gateway.TransactionManager. Units of work run one at a
// time and a failing one restores the state captured when it started.
type Uow struct {
	store *Store
}

func NewUow(store *Store) *Uow {
	return &Uow{store: store}
}

func (u *Uow) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	u.store.txMu.Lock()
	defer u.store.txMu.Unlock()

	u.store.mu.RLock()
	snapshot := u.store.data.clone()
	u.store.mu.RUnlock()

	ctxWithTx := context.WithValue(ctx, gateway.TransactionKey, u.store)

	if err := fn(ctxWithTx); err != nil {
		u.store.mu.Lock()
		u.store.data = snapshot
		u.store.mu.Unlock()
		return err
	}
	return nil
}
