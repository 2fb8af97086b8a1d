package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/usecase"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseProduct_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user, wallet := f.customer(t, "+15550001", 10)
	p := f.product(t, "Napkin", 3, true)
	d := f.stockedDispenser(t, p, 2)

	out, err := f.purchase().Execute(ctx, usecase.PurchaseProductInput{
		UserID:      user.ID,
		DispenserID: d.ID,
		ProductID:   p.ID,
		RowNumber:   1,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), out.CreditsUsed)
	assert.Equal(t, int64(7), out.NewBalance)
	assert.Equal(t, "Napkin", out.ProductName)
	assert.Equal(t, domain.TransactionSuccess, out.Status)

	w, err := f.wallets.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, wallet.ID, w.ID)
	assert.Equal(t, int64(7), w.Balance)

	row, err := f.dispensers.GetRowForUpdate(ctx, d.ID, 1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, row.CurrentInventory)

	detail, err := f.transactions.GetByID(ctx, out.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, detail.User.ID)
	assert.Equal(t, "Napkin", detail.Product.ProductName)

	require.Len(t, f.logsWithAction(t, domain.ActionTransactionSuccess), 1)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, usecase.EventsExchange, f.publisher.events[0].Exchange)
	assert.Equal(t, usecase.TransactionCreatedRouting, f.publisher.events[0].RoutingKey)
	assert.Equal(t, 1, f.metrics.outcomes["success"])
}

func TestPurchaseProduct_ValidationFailuresMutateNothing(t *testing.T) {
	tests := []struct {
		name      string
		balance   int64
		inventory int
		wantErr   error
		outcome   string
		metaKey   string
	}{
		{name: "out of stock", balance: 10, inventory: 0, wantErr: domain.ErrOutOfStock, outcome: "out_of_stock", metaKey: "row_number"},
		{name: "insufficient credits", balance: 2, inventory: 5, wantErr: domain.ErrInsufficientCredits, outcome: "insufficient_credits", metaKey: "required_credits"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture()
			user, _ := f.customer(t, "+15550002", tt.balance)
			p := f.product(t, "Towel", 3, true)
			d := f.stockedDispenser(t, p, tt.inventory)

			_, err := f.purchase().Execute(ctx, usecase.PurchaseProductInput{
				UserID: user.ID, DispenserID: d.ID, ProductID: p.ID, RowNumber: 1,
			})
			require.ErrorIs(t, err, tt.wantErr)

			w, err := f.wallets.GetByUserID(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.balance, w.Balance)

			row, err := f.dispensers.GetRowForUpdate(ctx, d.ID, 1, p.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.inventory, row.CurrentInventory)

			txs, total, err := f.transactions.List(ctx, nil, domain.Page{})
			require.NoError(t, err)
			assert.Zero(t, total)
			assert.Empty(t, txs)

			failed := f.logsWithAction(t, domain.ActionTransactionFailed)
			require.Len(t, failed, 1)
			assert.Equal(t, domain.LevelWarn, failed[0].Level)
			assert.Contains(t, failed[0].Metadata, tt.metaKey)
			assert.Empty(t, f.logsWithAction(t, domain.ActionTransactionSuccess))
			assert.Empty(t, f.publisher.events)
			assert.Equal(t, 1, f.metrics.outcomes[tt.outcome])
		})
	}
}

func TestPurchaseProduct_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user, _ := f.customer(t, "+15550003", 10)
	p := f.product(t, "Tissue", 1, true)
	inactive := f.product(t, "Old", 1, false)
	d := f.stockedDispenser(t, p, 3)

	tests := []struct {
		name    string
		input   usecase.PurchaseProductInput
		wantErr error
	}{
		{"unknown product", usecase.PurchaseProductInput{UserID: user.ID, DispenserID: d.ID, ProductID: uuid.New(), RowNumber: 1}, domain.ErrProductNotFound},
		{"inactive product", usecase.PurchaseProductInput{UserID: user.ID, DispenserID: d.ID, ProductID: inactive.ID, RowNumber: 1}, domain.ErrProductNotFound},
		{"unknown dispenser", usecase.PurchaseProductInput{UserID: user.ID, DispenserID: uuid.New(), ProductID: p.ID, RowNumber: 1}, domain.ErrDispenserNotFound},
		{"product not in row", usecase.PurchaseProductInput{UserID: user.ID, DispenserID: d.ID, ProductID: p.ID, RowNumber: 2}, domain.ErrRowNotFound},
		{"no wallet", usecase.PurchaseProductInput{UserID: uuid.New(), DispenserID: d.ID, ProductID: p.ID, RowNumber: 1}, domain.ErrWalletNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.purchase().Execute(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NotErrorIs(t, err, domain.ErrTransactionFailed)
		})
	}

	_, err := f.purchase().Execute(ctx, usecase.PurchaseProductInput{UserID: user.ID, DispenserID: d.ID, ProductID: p.ID, RowNumber: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidRowNumber)
}

// Concurrent buyers of the last units never oversell and every decrement
// matches a success transaction.
func TestPurchaseProduct_ConcurrentBuyersNeverOversell(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, "Napkin", 1, true)
	d := f.stockedDispenser(t, p, 5)

	const buyers = 12
	users := make([]*domain.User, buyers)
	for i := range users {
		users[i], _ = f.customer(t, uuid.NewString(), 1)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for _, u := range users {
		wg.Add(1)
		go func(u *domain.User) {
			defer wg.Done()
			_, err := f.purchase().Execute(ctx, usecase.PurchaseProductInput{
				UserID: u.ID, DispenserID: d.ID, ProductID: p.ID, RowNumber: 1,
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(u)
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	row, err := f.dispensers.GetRowForUpdate(ctx, d.ID, 1, p.ID)
	require.NoError(t, err)
	assert.Zero(t, row.CurrentInventory)

	_, total, err := f.transactions.List(ctx, nil, domain.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}
