package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/google/uuid"
)

type StockDispenserRowInput struct {
	Actor            *domain.User
	DispenserID      uuid.UUID
	RowNumber        int
	ProductID        *uuid.UUID
	MaxCapacity      int
	CurrentInventory *int
	Meta             RequestMeta
}

type StockDispenserRowOutput struct {
	Row     domain.DispenserProduct
	Created bool
}

// StockDispenserRowUseCase assigns a product to a row and restocks it.
// A nil product empties the row.
type StockDispenserRowUseCase struct {
	dispenserRepository gateway.DispenserRepository
	productRepository   gateway.ProductRepository
	logRepository       gateway.LogRepository
	transactionManager  gateway.TransactionManager
}

func NewStockDispenserRow(
	dispenserRepo gateway.DispenserRepository,
	productRepo gateway.ProductRepository,
	logRepo gateway.LogRepository,
	txManager gateway.TransactionManager,
) *StockDispenserRowUseCase {
	return &StockDispenserRowUseCase{
		dispenserRepository: dispenserRepo,
		productRepository:   productRepo,
		logRepository:       logRepo,
		transactionManager:  txManager,
	}
}

func (u *StockDispenserRowUseCase) Execute(ctx context.Context, input StockDispenserRowInput) (*StockDispenserRowOutput, error) {
	dispenser, err := u.dispenserRepository.GetByID(ctx, input.DispenserID)
	if err != nil {
		return nil, err
	}
	if !domain.ValidRowNumber(input.RowNumber) {
		return nil, domain.ErrInvalidRowNumber
	}

	var product *domain.Product
	if input.ProductID != nil {
		product, err = u.productRepository.GetByID(ctx, *input.ProductID)
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductInactive
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load product %s: %w", *input.ProductID, err)
		}
		if !product.IsActive {
			return nil, domain.ErrProductInactive
		}
	}

	inventory := input.MaxCapacity
	if input.CurrentInventory != nil {
		inventory = *input.CurrentInventory
	}
	if input.MaxCapacity < 0 || input.MaxCapacity > domain.MaxRowCapacity {
		return nil, domain.ErrInvalidCapacity
	}
	if inventory < 0 || inventory > input.MaxCapacity {
		return nil, domain.ErrInvalidInventory
	}

	now := time.Now().UTC()
	row := domain.DispenserProduct{
		DispenserID:      dispenser.ID,
		RowNumber:        input.RowNumber,
		Product:          product,
		CurrentInventory: inventory,
		MaxCapacity:      input.MaxCapacity,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var created bool
	err = u.transactionManager.Run(ctx, func(txCtx context.Context) error {
		tx := txCtx.Value(gateway.TransactionKey)

		var err error
		created, err = u.dispenserRepository.WithTx(tx).UpsertRow(txCtx, &row)
		if err != nil {
			return err
		}

		actionType := "updated"
		if created {
			actionType = "added"
		}
		metadata := map[string]any{
			"dispenser_id":      dispenser.ID.String(),
			"row_number":        input.RowNumber,
			"product_id":        nil,
			"max_capacity":      input.MaxCapacity,
			"current_inventory": inventory,
		}
		if product != nil {
			metadata["product_id"] = product.ID.String()
		}

		entry := newLogEntry(domain.LevelInfo, domain.ActionDispenserProductUpdate,
			fmt.Sprintf("Product %s to dispenser %s row %d", actionType, dispenser.LocationName, input.RowNumber), input.Meta)
		entry.UserID = userRef(input.Actor.ID)
		entry.Metadata = metadata
		return u.logRepository.WithTx(tx).Create(txCtx, entry)
	})
	if err != nil {
		entry := newLogEntry(domain.LevelError, domain.ActionDispenserProductError,
			"Failed to update dispenser product: "+err.Error(), input.Meta)
		entry.UserID = userRef(input.Actor.ID)
		entry.ErrorMessage = err.Error()
		recordLog(ctx, u.logRepository, entry)
		return nil, err
	}

	return &StockDispenserRowOutput{Row: row, Created: created}, nil
}
