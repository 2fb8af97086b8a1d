package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/google/uuid"
)

type CreateDispenserInput struct {
	BLEBeaconID    string
	LocationName   string
	GPSCoordinates domain.GPSCoordinates
}

type UpdateDispenserInput struct {
	BLEBeaconID    *string
	LocationName   *string
	GPSCoordinates *domain.GPSCoordinates
}

// NearbyDispenser is a dispenser with its distance to the caller, when known.
type NearbyDispenser struct {
	domain.Dispenser
	DistanceKm *float64
}

type DispenserUseCase struct {
	dispenserRepository gateway.DispenserRepository
	transactionManager  gateway.TransactionManager
}

func NewDispenserUseCase(dispenserRepo gateway.DispenserRepository, txManager gateway.TransactionManager) *DispenserUseCase {
	return &DispenserUseCase{
		dispenserRepository: dispenserRepo,
		transactionManager:  txManager,
	}
}

func (u *DispenserUseCase) List(ctx context.Context) ([]domain.Dispenser, error) {
	return u.dispenserRepository.List(ctx)
}

func (u *DispenserUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Dispenser, error) {
	return u.dispenserRepository.GetByID(ctx, id)
}

// Create inserts the dispenser and its four empty rows in one transaction.
func (u *DispenserUseCase) Create(ctx context.Context, input CreateDispenserInput) (*domain.Dispenser, error) {
	now := time.Now().UTC()
	dispenser := &domain.Dispenser{
		BLEBeaconID:    input.BLEBeaconID,
		LocationName:   input.LocationName,
		GPSCoordinates: input.GPSCoordinates,
		InstallDate:    now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := u.transactionManager.Run(ctx, func(txCtx context.Context) error {
		repo := u.dispenserRepository.WithTx(txCtx.Value(gateway.TransactionKey))

		if err := repo.Create(txCtx, dispenser); err != nil {
			return err
		}
		dispenser.Rows = make([]domain.DispenserProduct, 0, domain.RowsPerDispenser)
		for n := 1; n <= domain.RowsPerDispenser; n++ {
			row := domain.DispenserProduct{
				DispenserID: dispenser.ID,
				RowNumber:   n,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := repo.CreateRow(txCtx, &row); err != nil {
				return fmt.Errorf("failed to create row %d: %w", n, err)
			}
			dispenser.Rows = append(dispenser.Rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dispenser, nil
}

func (u *DispenserUseCase) Update(ctx context.Context, id uuid.UUID, input UpdateDispenserInput) (*domain.Dispenser, error) {
	dispenser, err := u.dispenserRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.BLEBeaconID != nil {
		dispenser.BLEBeaconID = *input.BLEBeaconID
	}
	if input.LocationName != nil {
		dispenser.LocationName = *input.LocationName
	}
	if input.GPSCoordinates != nil {
		dispenser.GPSCoordinates = *input.GPSCoordinates
	}
	dispenser.UpdatedAt = time.Now().UTC()

	if err := u.dispenserRepository.Update(ctx, dispenser); err != nil {
		return nil, fmt.Errorf("failed to update dispenser: %w", err)
	}
	return dispenser, nil
}

func (u *DispenserUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.dispenserRepository.Delete(ctx, id)
}

// Nearby returns every dispenser. With an origin they are sorted by distance.
func (u *DispenserUseCase) Nearby(ctx context.Context, origin *domain.GPSCoordinates) ([]NearbyDispenser, error) {
	dispensers, err := u.dispenserRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]NearbyDispenser, len(dispensers))
	for i, d := range dispensers {
		result[i] = NearbyDispenser{Dispenser: d}
		if origin != nil {
			km := origin.DistanceKm(d.GPSCoordinates)
			result[i].DistanceKm = &km
		}
	}
	if origin != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return *result[i].DistanceKm < *result[j].DistanceKm
		})
	}
	return result, nil
}
