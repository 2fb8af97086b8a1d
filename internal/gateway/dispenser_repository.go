package gateway

import (
	"context"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/google/uuid"
)

type DispenserRepository interface {
	// Create inserts the dispenser only; rows are created with CreateRow.
	Create(ctx context.Context, dispenser *domain.Dispenser) error
	// GetByID and List load the rows and their products.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Dispenser, error)
	List(ctx context.Context) ([]domain.Dispenser, error)
	Update(ctx context.Context, dispenser *domain.Dispenser) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateRow(ctx context.Context, row *domain.DispenserProduct) error
	// UpsertRow writes product, capacity and inventory of (DispenserID, RowNumber).
	// It reports whether the row did not exist before.
	UpsertRow(ctx context.Context, row *domain.DispenserProduct) (bool, error)
	// GetRowForUpdate locks the row holding productID at rowNumber.
	GetRowForUpdate(ctx context.Context, dispenserID uuid.UUID, rowNumber int, productID uuid.UUID) (*domain.DispenserProduct, error)
	// DecrementInventory removes one unit and returns the remaining inventory.
	// An empty row returns domain.ErrOutOfStock.
	DecrementInventory(ctx context.Context, rowID uuid.UUID) (int, error)

	WithTx(tx TransactionObject) DispenserRepository
}
