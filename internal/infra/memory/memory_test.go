package memory

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUowRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	users := NewUserRepository(store)
	uow := NewUow(store)

	boom := errors.New("boom")
	err := uow.Run(ctx, func(ctx context.Context) error {
		require.NoError(t, users.Create(ctx, &domain.User{PhoneNumber: "+100"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = users.GetByPhoneNumber(ctx, "+100")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, uow.Run(ctx, func(ctx context.Context) error {
		return users.Create(ctx, &domain.User{PhoneNumber: "+100"})
	}))
	_, err = users.GetByPhoneNumber(ctx, "+100")
	assert.NoError(t, err)
}

func TestUserRepository_Conflicts(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(NewStore())
	email := "a@example.com"

	require.NoError(t, users.Create(ctx, &domain.User{PhoneNumber: "+1", Email: &email}))
	assert.ErrorIs(t, users.Create(ctx, &domain.User{PhoneNumber: "+1"}), domain.ErrConflict)
	assert.ErrorIs(t, users.Create(ctx, &domain.User{PhoneNumber: "+2", Email: &email}), domain.ErrConflict)
	assert.NoError(t, users.Create(ctx, &domain.User{PhoneNumber: "+3"}))
}

func TestWalletRepository_DebitNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	wallets := NewWalletRepository(store)

	w, err := wallets.Create(ctx, uuid.New())
	require.NoError(t, err)

	balance, err := wallets.Credit(ctx, w.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), balance)

	_, err = wallets.Debit(ctx, w.ID, 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientCredits)

	balance, err = wallets.Debit(ctx, w.ID, 5)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestDispenserRepository_RowsAndCascade(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	dispensers := NewDispenserRepository(store)
	products := NewProductRepository(store)

	d := &domain.Dispenser{BLEBeaconID: "b-1", LocationName: "Lobby"}
	require.NoError(t, dispensers.Create(ctx, d))
	assert.ErrorIs(t, dispensers.Create(ctx, &domain.Dispenser{BLEBeaconID: "b-1"}), domain.ErrConflict)

	p := &domain.Product{ProductName: "Napkin", CreditCost: 2, IsActive: true}
	require.NoError(t, products.Create(ctx, p))

	created, err := dispensers.UpsertRow(ctx, &domain.DispenserProduct{DispenserID: d.ID, RowNumber: 2, Product: p, CurrentInventory: 1, MaxCapacity: 5})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = dispensers.UpsertRow(ctx, &domain.DispenserProduct{DispenserID: d.ID, RowNumber: 2, Product: p, CurrentInventory: 3, MaxCapacity: 5})
	require.NoError(t, err)
	assert.False(t, created)

	dp, err := dispensers.GetRowForUpdate(ctx, d.ID, 2, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, dp.CurrentInventory)
	require.NotNil(t, dp.Product)
	assert.Equal(t, "Napkin", dp.Product.ProductName)

	_, err = dispensers.GetRowForUpdate(ctx, d.ID, 1, p.ID)
	assert.ErrorIs(t, err, domain.ErrRowNotFound)

	require.NoError(t, products.Delete(ctx, p.ID))
	got, err := dispensers.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Nil(t, got.Rows[0].Product)

	require.NoError(t, dispensers.Delete(ctx, d.ID))
	assert.Empty(t, store.data.rows)
}

func TestDispenserRepository_DecrementInventory(t *testing.T) {
	ctx := context.Background()
	dispensers := NewDispenserRepository(NewStore())

	d := &domain.Dispenser{BLEBeaconID: "b-2", LocationName: "Gym"}
	require.NoError(t, dispensers.Create(ctx, d))
	dp := &domain.DispenserProduct{DispenserID: d.ID, RowNumber: 1, CurrentInventory: 1}
	require.NoError(t, dispensers.CreateRow(ctx, dp))

	left, err := dispensers.DecrementInventory(ctx, dp.ID)
	require.NoError(t, err)
	assert.Zero(t, left)

	_, err = dispensers.DecrementInventory(ctx, dp.ID)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
}

func TestLogRepository_FilterAndStats(t *testing.T) {
	ctx := context.Background()
	logs := NewLogRepository(NewStore())
	now := time.Now().UTC()

	entries := []domain.LogEntry{
		{Level: domain.LevelInfo, Action: domain.ActionLoginSuccess, Timestamp: now.Add(-48 * time.Hour)},
		{Level: domain.LevelInfo, Action: domain.ActionLoginSuccess, Timestamp: now.Add(-time.Hour)},
		{Level: domain.LevelWarn, Action: domain.ActionLoginFailed, Timestamp: now.Add(-time.Minute)},
		{Level: domain.LevelError, Action: domain.ActionTransactionError, Timestamp: now},
	}
	for i := range entries {
		require.NoError(t, logs.Create(ctx, &entries[i]))
	}

	got, total, err := logs.List(ctx, domain.LogFilter{Level: domain.LevelInfo}, domain.Page{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, got, 1)
	assert.Equal(t, entries[1].ID, got[0].ID)

	stats, err := logs.Stats(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalLogs)
	assert.Equal(t, int64(3), stats.Last24h)
	assert.Equal(t, int64(1), stats.ErrorsLast24h)
	require.NotEmpty(t, stats.TopActions)
	assert.Equal(t, domain.ActionCount{Action: domain.ActionLoginSuccess, Count: 2}, stats.TopActions[0])
	assert.Equal(t, domain.LevelError, stats.Levels[0].Level)
}

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{3, 4}, window(items, domain.Page{Limit: 2, Offset: 2}))
	assert.Equal(t, []int{5}, window(items, domain.Page{Limit: 2, Offset: 4}))
	assert.Equal(t, items, window(items, domain.Page{}))
	assert.Empty(t, window(items, domain.Page{Limit: 2, Offset: 9}))
	assert.Equal(t, []int{1, 2}, window(items, domain.Page{Limit: 2, Offset: -5}))
	assert.Equal(t, []int{2, 3, 4, 5}, window(items, domain.Page{Limit: math.MaxInt, Offset: 1}))
}

func TestWalletRepository_CreditCannotOverflow(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	wallets := NewWalletRepository(store)

	w, err := wallets.Create(ctx, uuid.New())
	require.NoError(t, err)
	_, err = wallets.Credit(ctx, w.ID, math.MaxInt64-5)
	require.NoError(t, err)

	_, err = wallets.Credit(ctx, w.ID, math.MaxInt64-5)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	got, err := wallets.GetByUserID(ctx, w.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64-5), got.Balance)
}
