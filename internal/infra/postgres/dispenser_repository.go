package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/postgres/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DispenserRepository struct {
	queries *db.Queries
}

func NewDispenserRepository(pool *pgxpool.Pool) *DispenserRepository {
	return &DispenserRepository{
		queries: db.New(pool),
	}
}

func (r *DispenserRepository) Create(ctx context.Context, dispenser *domain.Dispenser) error {
	row, err := r.queries.CreateDispenser(ctx, db.CreateDispenserParams{
		BleBeaconID:  dispenser.BLEBeaconID,
		LocationName: dispenser.LocationName,
		GpsLat:       dispenser.GPSCoordinates.Lat,
		GpsLng:       dispenser.GPSCoordinates.Lng,
		InstallDate:  timestamptz(dispenser.InstallDate),
		CreatedAt:    timestamptz(dispenser.CreatedAt),
		UpdatedAt:    timestamptz(dispenser.UpdatedAt),
	})
	if err != nil {
		if mapped := mapError(err, domain.ErrDispenserNotFound); mapped == domain.ErrConflict {
			return mapped
		}
		return fmt.Errorf("failed to create dispenser: %w", err)
	}
	*dispenser = toDomainDispenser(row)
	return nil
}

func (r *DispenserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dispenser, error) {
	row, err := r.queries.GetDispenser(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDispenserNotFound
		}
		return nil, fmt.Errorf("failed to get dispenser: %w", err)
	}
	dispensers := []domain.Dispenser{toDomainDispenser(row)}
	if err := r.attachRows(ctx, dispensers); err != nil {
		return nil, err
	}
	return &dispensers[0], nil
}

func (r *DispenserRepository) List(ctx context.Context) ([]domain.Dispenser, error) {
	rows, err := r.queries.ListDispensers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list dispensers: %w", err)
	}
	dispensers := make([]domain.Dispenser, 0, len(rows))
	for _, row := range rows {
		dispensers = append(dispensers, toDomainDispenser(row))
	}
	if err := r.attachRows(ctx, dispensers); err != nil {
		return nil, err
	}
	return dispensers, nil
}

// attachRows loads the rows of every dispenser with a single query.
func (r *DispenserRepository) attachRows(ctx context.Context, dispensers []domain.Dispenser) error {
	if len(dispensers) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(dispensers))
	index := make(map[uuid.UUID]int, len(dispensers))
	for i, d := range dispensers {
		ids[i] = d.ID
		index[d.ID] = i
		dispensers[i].Rows = []domain.DispenserProduct{}
	}

	rows, err := r.queries.ListDispenserRows(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load dispenser rows: %w", err)
	}
	for _, row := range rows {
		i := index[row.DispenserID]
		dispensers[i].Rows = append(dispensers[i].Rows, toDomainRowWithProduct(row))
	}
	return nil
}

func (r *DispenserRepository) Update(ctx context.Context, dispenser *domain.Dispenser) error {
	n, err := r.queries.UpdateDispenser(ctx, db.UpdateDispenserParams{
		ID:           dispenser.ID,
		BleBeaconID:  dispenser.BLEBeaconID,
		LocationName: dispenser.LocationName,
		GpsLat:       dispenser.GPSCoordinates.Lat,
		GpsLng:       dispenser.GPSCoordinates.Lng,
		UpdatedAt:    timestamptz(dispenser.UpdatedAt),
	})
	return affected(n, err, domain.ErrDispenserNotFound, "update dispenser")
}

func (r *DispenserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.queries.DeleteDispenser(ctx, id)
	return affected(n, err, domain.ErrDispenserNotFound, "delete dispenser")
}

func (r *DispenserRepository) CreateRow(ctx context.Context, dp *domain.DispenserProduct) error {
	row, err := r.queries.CreateDispenserRow(ctx, db.CreateDispenserRowParams{
		DispenserID:      dp.DispenserID,
		RowNumber:        int32(dp.RowNumber),
		ProductID:        rowProductID(dp),
		CurrentInventory: int32(dp.CurrentInventory),
		MaxCapacity:      int32(dp.MaxCapacity),
		CreatedAt:        timestamptz(dp.CreatedAt),
		UpdatedAt:        timestamptz(dp.UpdatedAt),
	})
	if err != nil {
		if mapped := mapError(err, domain.ErrDispenserNotFound); mapped == domain.ErrConflict {
			return mapped
		}
		return fmt.Errorf("failed to create dispenser row: %w", err)
	}
	dp.ID = row.ID
	dp.CreatedAt = row.CreatedAt.Time
	dp.UpdatedAt = row.UpdatedAt.Time
	return nil
}

func (r *DispenserRepository) UpsertRow(ctx context.Context, dp *domain.DispenserProduct) (bool, error) {
	row, err := r.queries.UpsertDispenserRow(ctx, db.UpsertDispenserRowParams{
		DispenserID:      dp.DispenserID,
		RowNumber:        int32(dp.RowNumber),
		ProductID:        rowProductID(dp),
		CurrentInventory: int32(dp.CurrentInventory),
		MaxCapacity:      int32(dp.MaxCapacity),
	})
	if err != nil {
		return false, fmt.Errorf("failed to upsert dispenser row: %w", err)
	}
	dp.ID = row.ID
	dp.CreatedAt = row.CreatedAt.Time
	dp.UpdatedAt = row.UpdatedAt.Time
	return row.Inserted, nil
}

// 🔐 Locks the row that must hold productID at rowNumber.
func (r *DispenserRepository) GetRowForUpdate(ctx context.Context, dispenserID uuid.UUID, rowNumber int, productID uuid.UUID) (*domain.DispenserProduct, error) {
	row, err := r.queries.GetDispenserRowForUpdate(ctx, db.GetDispenserRowForUpdateParams{
		DispenserID: dispenserID,
		RowNumber:   int32(rowNumber),
		ProductID:   uuid.NullUUID{UUID: productID, Valid: true},
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRowNotFound
		}
		return nil, fmt.Errorf("failed to lock dispenser row: %w", err)
	}
	return &domain.DispenserProduct{
		ID:               row.ID,
		DispenserID:      row.DispenserID,
		RowNumber:        int(row.RowNumber),
		Product:          &domain.Product{ID: productID},
		CurrentInventory: int(row.CurrentInventory),
		MaxCapacity:      int(row.MaxCapacity),
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}, nil
}

func (r *DispenserRepository) DecrementInventory(ctx context.Context, rowID uuid.UUID) (int, error) {
	remaining, err := r.queries.DecrementRowInventory(ctx, rowID)
	if err != nil {
		// No row means "current_inventory > 0" did not match
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrOutOfStock
		}
		return 0, fmt.Errorf("failed to decrement inventory: %w", err)
	}
	return int(remaining), nil
}

func (r *DispenserRepository) WithTx(tx gateway.TransactionObject) gateway.DispenserRepository {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &DispenserRepository{
		queries: r.queries.WithTx(pgTx),
	}
}

func rowProductID(dp *domain.DispenserProduct) uuid.NullUUID {
	if dp.Product == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: dp.Product.ID, Valid: true}
}

func toDomainDispenser(d db.Dispenser) domain.Dispenser {
	return domain.Dispenser{
		ID:             d.ID,
		BLEBeaconID:    d.BleBeaconID,
		LocationName:   d.LocationName,
		GPSCoordinates: domain.GPSCoordinates{Lat: d.GpsLat, Lng: d.GpsLng},
		InstallDate:    d.InstallDate.Time,
		CreatedAt:      d.CreatedAt.Time,
		UpdatedAt:      d.UpdatedAt.Time,
	}
}

func toDomainRowWithProduct(row db.ListDispenserRowsRow) domain.DispenserProduct {
	dp := domain.DispenserProduct{
		ID:               row.ID,
		DispenserID:      row.DispenserID,
		RowNumber:        int(row.RowNumber),
		CurrentInventory: int(row.CurrentInventory),
		MaxCapacity:      int(row.MaxCapacity),
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}
	if row.ProductID.Valid {
		dp.Product = &domain.Product{
			ID:          row.ProductID.UUID,
			ProductName: row.ProductName.String,
			CreditCost:  row.CreditCost.Int64,
			IsActive:    row.ProductIsActive.Bool,
			CreatedAt:   row.ProductCreatedAt.Time,
			UpdatedAt:   row.ProductUpdatedAt.Time,
		}
	}
	return dp
}
