package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/memory"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/usecase"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestProductCatalog(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewProductCatalog(f.products)

	_, err := uc.Create(ctx, usecase.CreateProductInput{ProductName: "Bad", CreditCost: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	napkin, err := uc.Create(ctx, usecase.CreateProductInput{ProductName: "Napkin", CreditCost: 1})
	require.NoError(t, err)
	assert.True(t, napkin.IsActive)

	hidden, err := uc.Create(ctx, usecase.CreateProductInput{ProductName: "Hidden", CreditCost: 2, IsActive: ptr(false)})
	require.NoError(t, err)

	public, err := uc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, public, 1)

	all, err := uc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = uc.Get(ctx, hidden.ID, false)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	_, err = uc.Get(ctx, hidden.ID, true)
	assert.NoError(t, err)

	updated, err := uc.Update(ctx, napkin.ID, usecase.UpdateProductInput{CreditCost: ptr(int64(4))})
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.CreditCost)
	assert.Equal(t, "Napkin", updated.ProductName)

	require.NoError(t, uc.Delete(ctx, napkin.ID))
	_, err = uc.Get(ctx, napkin.ID, true)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDispenserUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewDispenserUseCase(f.dispensers, f.uow)

	airport, err := uc.Create(ctx, usecase.CreateDispenserInput{
		BLEBeaconID:    "beacon-airport",
		LocationName:   "Airport",
		GPSCoordinates: domain.GPSCoordinates{Lat: 40.6413, Lng: -73.7781},
	})
	require.NoError(t, err)
	require.Len(t, airport.Rows, domain.RowsPerDispenser)
	for i, row := range airport.Rows {
		assert.Equal(t, i+1, row.RowNumber)
		assert.Nil(t, row.Product)
		assert.Zero(t, row.CurrentInventory)
	}

	_, err = uc.Create(ctx, usecase.CreateDispenserInput{BLEBeaconID: "beacon-airport", LocationName: "Dup"})
	require.ErrorIs(t, err, domain.ErrConflict)
	all, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "failed create must not leave a dispenser behind")

	_, err = uc.Create(ctx, usecase.CreateDispenserInput{
		BLEBeaconID:    "beacon-midtown",
		LocationName:   "Midtown",
		GPSCoordinates: domain.GPSCoordinates{Lat: 40.7549, Lng: -73.9840},
	})
	require.NoError(t, err)

	near, err := uc.Nearby(ctx, &domain.GPSCoordinates{Lat: 40.7580, Lng: -73.9855})
	require.NoError(t, err)
	require.Len(t, near, 2)
	assert.Equal(t, "Midtown", near[0].LocationName)
	require.NotNil(t, near[0].DistanceKm)
	assert.Less(t, *near[0].DistanceKm, 1.0)

	unsorted, err := uc.Nearby(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "Airport", unsorted[0].LocationName)
	assert.Nil(t, unsorted[0].DistanceKm)

	renamed, err := uc.Update(ctx, airport.ID, usecase.UpdateDispenserInput{LocationName: ptr("JFK")})
	require.NoError(t, err)
	assert.Equal(t, "JFK", renamed.LocationName)
	assert.Equal(t, "beacon-airport", renamed.BLEBeaconID)

	require.NoError(t, uc.Delete(ctx, airport.ID))
	_, err = uc.Get(ctx, airport.ID)
	assert.ErrorIs(t, err, domain.ErrDispenserNotFound)
}

func TestStockDispenserRow(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewStockDispenserRow(f.dispensers, f.products, f.logs, f.uow)
	tech := f.user(t, "+9000", domain.UserTypeMaintenance)
	napkin := f.product(t, "Napkin", 1, true)
	retired := f.product(t, "Retired", 1, false)
	d, err := usecase.NewDispenserUseCase(f.dispensers, f.uow).Create(ctx, usecase.CreateDispenserInput{BLEBeaconID: "b", LocationName: "Hall"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   usecase.StockDispenserRowInput
		wantErr error
	}{
		{"unknown dispenser", usecase.StockDispenserRowInput{Actor: tech, DispenserID: uuid.New(), RowNumber: 1}, domain.ErrDispenserNotFound},
		{"row out of range", usecase.StockDispenserRowInput{Actor: tech, DispenserID: d.ID, RowNumber: 0}, domain.ErrInvalidRowNumber},
		{"inactive product", usecase.StockDispenserRowInput{Actor: tech, DispenserID: d.ID, RowNumber: 1, ProductID: &retired.ID}, domain.ErrProductInactive},
		{"unknown product", usecase.StockDispenserRowInput{Actor: tech, DispenserID: d.ID, RowNumber: 1, ProductID: ptr(uuid.New())}, domain.ErrProductInactive},
		{"overfilled", usecase.StockDispenserRowInput{Actor: tech, DispenserID: d.ID, RowNumber: 1, MaxCapacity: 2, CurrentInventory: ptr(3)}, domain.ErrInvalidInventory},
		{"capacity beyond storage range", usecase.StockDispenserRowInput{Actor: tech, DispenserID: d.ID, RowNumber: 1, MaxCapacity: domain.MaxRowCapacity + 1}, domain.ErrInvalidCapacity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	out, err := uc.Execute(ctx, usecase.StockDispenserRowInput{Actor: tech, DispenserID: d.ID, RowNumber: 3, ProductID: &napkin.ID, MaxCapacity: 20})
	require.NoError(t, err)
	assert.False(t, out.Created, "rows exist from dispenser creation")
	assert.Equal(t, 20, out.Row.CurrentInventory)

	got, err := f.dispensers.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rows[2].Product)
	assert.Equal(t, napkin.ID, got.Rows[2].Product.ID)

	entries := f.logsWithAction(t, domain.ActionDispenserProductUpdate)
	require.Len(t, entries, 1)
	assert.Equal(t, napkin.ID.String(), entries[0].Metadata["product_id"])
}

func TestStockDispenserRow_CreatesMissingRow(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewStockDispenserRow(f.dispensers, f.products, f.logs, f.uow)
	tech := f.user(t, "+9100", domain.UserTypeMaintenance)

	bare := &domain.Dispenser{BLEBeaconID: "bare", LocationName: "Bare"}
	require.NoError(t, f.dispensers.Create(ctx, bare))

	out, err := uc.Execute(ctx, usecase.StockDispenserRowInput{Actor: tech, DispenserID: bare.ID, RowNumber: 4, MaxCapacity: 5, CurrentInventory: ptr(1)})
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, 1, out.Row.CurrentInventory)
}

type unreachableProducts struct {
	*memory.ProductRepository
}

var errProductsDown = errors.New("connection reset")

func (unreachableProducts) GetByID(context.Context, uuid.UUID) (*domain.Product, error) {
	return nil, errProductsDown
}

func TestStockDispenserRow_RepositoryFailurePassesThrough(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewStockDispenserRow(f.dispensers, unreachableProducts{f.products}, f.logs, f.uow)
	tech := f.user(t, "+9200", domain.UserTypeMaintenance)
	d, err := usecase.NewDispenserUseCase(f.dispensers, f.uow).Create(ctx, usecase.CreateDispenserInput{BLEBeaconID: "down", LocationName: "Hall"})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, usecase.StockDispenserRowInput{Actor: tech, DispenserID: d.ID, RowNumber: 1, ProductID: ptr(uuid.New()), MaxCapacity: 5})
	assert.ErrorIs(t, err, errProductsDown)
	assert.NotErrorIs(t, err, domain.ErrProductInactive)
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	admin := f.user(t, "+9500", domain.UserTypeAdmin)
	alice, _ := f.customer(t, "+9501", 10)
	bob, _ := f.customer(t, "+9502", 10)
	p := f.product(t, "Napkin", 1, true)
	d := f.stockedDispenser(t, p, 10)

	var aliceTx uuid.UUID
	for _, u := range []*domain.User{alice, bob, bob} {
		out, err := f.purchase().Execute(ctx, usecase.PurchaseProductInput{UserID: u.ID, DispenserID: d.ID, ProductID: p.ID, RowNumber: 1})
		require.NoError(t, err)
		if u == alice {
			aliceTx = out.TransactionID
		}
	}

	uc := usecase.NewListTransactions(f.transactions, f.users)

	_, total, err := uc.List(ctx, admin, domain.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	mine, total, err := uc.List(ctx, bob, domain.Page{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, mine, 1)

	_, err = uc.Get(ctx, bob, aliceTx)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	detail, err := uc.Get(ctx, alice, aliceTx)
	require.NoError(t, err)
	assert.Equal(t, "Napkin", detail.Product.ProductName)

	_, total, err = uc.ForUser(ctx, admin, &alice.ID, domain.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = uc.ForUser(ctx, alice, &bob.ID, domain.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "non-admins always get their own")

	missing := uuid.New()
	_, _, err = uc.ForUser(ctx, admin, &missing, domain.Page{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuditLogStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewAuditLog(f.logs)

	for _, e := range []domain.LogEntry{
		{Level: domain.LevelInfo, Action: domain.ActionLoginSuccess},
		{Level: domain.LevelError, Action: domain.ActionTransactionError},
	} {
		require.NoError(t, f.logs.Create(ctx, &e))
	}

	stats, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalLogs)
	assert.Equal(t, int64(2), stats.Last24h)
	assert.Equal(t, int64(1), stats.ErrorsLast24h)

	entries, total, err := uc.List(ctx, domain.LogFilter{Level: domain.LevelError}, domain.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	got, err := uc.Get(ctx, entries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionTransactionError, got.Action)
}
