package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/mongodb"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/rabbitmq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	saved []mongodb.PurchaseAudit
	err   error
}

func (f *fakeStore) Save(_ context.Context, audit mongodb.PurchaseAudit) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, audit)
	return nil
}

func TestAuditHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the event", func(t *testing.T) {
		store := &fakeStore{}
		body := []byte(`{"transaction_id":"t-1","user_id":"u-1","dispenser_id":"d-1","product_id":"p-1","row_number":2,"credits_used":3,"new_balance":7,"status":"success"}`)

		require.NoError(t, NewAuditHandler(store).Handle(ctx, body))
		require.Len(t, store.saved, 1)
		assert.Equal(t, mongodb.PurchaseAudit{
			TransactionID: "t-1",
			UserID:        "u-1",
			DispenserID:   "d-1",
			ProductID:     "p-1",
			RowNumber:     2,
			CreditsUsed:   3,
			NewBalance:    7,
			Status:        "success",
		}, store.saved[0])
	})

	t.Run("malformed json", func(t *testing.T) {
		err := NewAuditHandler(&fakeStore{}).Handle(ctx, []byte(`{not json`))
		assert.ErrorIs(t, err, rabbitmq.ErrMalformed)
	})

	t.Run("missing transaction id", func(t *testing.T) {
		err := NewAuditHandler(&fakeStore{}).Handle(ctx, []byte(`{"user_id":"u-1"}`))
		assert.ErrorIs(t, err, rabbitmq.ErrMalformed)
	})

	t.Run("store failure is retryable", func(t *testing.T) {
		err := NewAuditHandler(&fakeStore{err: errors.New("mongo down")}).Handle(ctx, []byte(`{"transaction_id":"t-1"}`))
		require.Error(t, err)
		assert.NotErrorIs(t, err, rabbitmq.ErrMalformed)
	})
}
