package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	EventsExchange            = "dispenser_events"
	TransactionCreatedRouting = "transaction.created"
)

// PurchaseProductInput holds what a customer sends to buy one unit.
type PurchaseProductInput struct {
	UserID      uuid.UUID
	DispenserID uuid.UUID
	ProductID   uuid.UUID
	RowNumber   int
	RequestBody map[string]any
	Meta        RequestMeta
}

type PurchaseProductOutput struct {
	TransactionID uuid.UUID
	CreditsUsed   int64
	NewBalance    int64
	ProductName   string
	Status        domain.TransactionStatus
}

// TransactionCreatedEvent is published after a purchase commits.
type TransactionCreatedEvent struct {
	TransactionID string `json:"transaction_id"`
	UserID        string `json:"user_id"`
	DispenserID   string `json:"dispenser_id"`
	ProductID     string `json:"product_id"`
	RowNumber     int    `json:"row_number"`
	CreditsUsed   int64  `json:"credits_used"`
	NewBalance    int64  `json:"new_balance"`
	Status        string `json:"status"`
}

// MessageID keys the event by its transaction, so redeliveries share an id.
func (e TransactionCreatedEvent) MessageID() string { return e.TransactionID }

type PurchaseProductUseCase struct {
	productRepository     gateway.ProductRepository
	dispenserRepository   gateway.DispenserRepository
	walletRepository      gateway.WalletRepository
	transactionRepository gateway.TransactionRepository
	logRepository         gateway.LogRepository
	transactionManager    gateway.TransactionManager
	eventPublisher        gateway.EventPublisher
	metrics               gateway.PurchaseMetrics
}

func NewPurchaseProduct(
	productRepo gateway.ProductRepository,
	dispenserRepo gateway.DispenserRepository,
	walletRepo gateway.WalletRepository,
	transactionRepo gateway.TransactionRepository,
	logRepo gateway.LogRepository,
	txManager gateway.TransactionManager,
	publisher gateway.EventPublisher,
	metrics gateway.PurchaseMetrics,
) *PurchaseProductUseCase {
	return &PurchaseProductUseCase{
		productRepository:     productRepo,
		dispenserRepository:   dispenserRepo,
		walletRepository:      walletRepo,
		transactionRepository: transactionRepo,
		logRepository:         logRepo,
		transactionManager:    txManager,
		eventPublisher:        publisher,
		metrics:               metrics,
	}
}

// Execute dispenses one unit: inventory -1, wallet -cost, a transaction
// record and an audit entry, all or nothing.
func (u *PurchaseProductUseCase) Execute(ctx context.Context, input PurchaseProductInput) (*PurchaseProductOutput, error) {
	if !domain.ValidRowNumber(input.RowNumber) {
		return nil, domain.ErrInvalidRowNumber
	}

	var (
		created    *domain.Transaction
		product    *domain.Product
		newBalance int64
		failure    map[string]any
	)

	err := u.transactionManager.Run(ctx, func(txCtx context.Context) error {
		transactionObject := txCtx.Value(gateway.TransactionKey)
		if transactionObject == nil {
			return fmt.Errorf("critical error: transaction not found in context")
		}

		productRepoTx := u.productRepository.WithTx(transactionObject)
		dispenserRepoTx := u.dispenserRepository.WithTx(transactionObject)
		walletRepoTx := u.walletRepository.WithTx(transactionObject)
		transactionRepoTx := u.transactionRepository.WithTx(transactionObject)
		logRepoTx := u.logRepository.WithTx(transactionObject)

		// Locks are always taken in the same order: product, dispenser row, wallet.
		var err error
		product, err = productRepoTx.GetActiveForUpdate(txCtx, input.ProductID)
		if err != nil {
			return fmt.Errorf("failed to lock product %s: %w", input.ProductID, err)
		}

		dispenser, err := dispenserRepoTx.GetByID(txCtx, input.DispenserID)
		if err != nil {
			return fmt.Errorf("failed to load dispenser %s: %w", input.DispenserID, err)
		}

		row, err := dispenserRepoTx.GetRowForUpdate(txCtx, dispenser.ID, input.RowNumber, product.ID)
		if err != nil {
			return fmt.Errorf("failed to lock row %d of dispenser %s: %w", input.RowNumber, dispenser.ID, err)
		}

		wallet, err := walletRepoTx.GetByUserIDForUpdate(txCtx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to lock wallet of user %s: %w", input.UserID, err)
		}

		if !row.InStock() {
			failure = map[string]any{
				"dispenser_id": dispenser.ID.String(),
				"product_id":   product.ID.String(),
				"row_number":   input.RowNumber,
			}
			return domain.ErrOutOfStock
		}
		if !wallet.HasSufficientFunds(product.CreditCost) {
			failure = map[string]any{
				"required_credits":  product.CreditCost,
				"available_credits": wallet.Balance,
			}
			return domain.ErrInsufficientCredits
		}

		if _, err := dispenserRepoTx.DecrementInventory(txCtx, row.ID); err != nil {
			return fmt.Errorf("failed to decrement inventory of row %s: %w", row.ID, err)
		}

		newBalance, err = walletRepoTx.Debit(txCtx, wallet.ID, product.CreditCost)
		if err != nil {
			return fmt.Errorf("failed to debit wallet %s: %w", wallet.ID, err)
		}

		created = &domain.Transaction{
			UserID:      input.UserID,
			DispenserID: dispenser.ID,
			ProductID:   product.ID,
			RowNumber:   input.RowNumber,
			CreditsUsed: product.CreditCost,
			Status:      domain.TransactionSuccess,
		}
		if err := transactionRepoTx.Create(txCtx, created); err != nil {
			return fmt.Errorf("failed to save transaction record: %w", err)
		}

		entry := newLogEntry(domain.LevelInfo, domain.ActionTransactionSuccess,
			fmt.Sprintf("Transaction successful - %s purchased", product.ProductName), input.Meta)
		entry.UserID = userRef(input.UserID)
		entry.Metadata = map[string]any{
			"transaction_id": created.ID.String(),
			"credits_used":   product.CreditCost,
			"new_balance":    newBalance,
		}
		if err := logRepoTx.Create(txCtx, entry); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, u.fail(ctx, input, err, failure)
	}

	u.observe("success")
	u.publish(ctx, created, newBalance)

	return &PurchaseProductOutput{
		TransactionID: created.ID,
		CreditsUsed:   created.CreditsUsed,
		NewBalance:    newBalance,
		ProductName:   product.ProductName,
		Status:        created.Status,
	}, nil
}

// RecordInvalidRequest audits a purchase rejected before reaching Execute.
func (u *PurchaseProductUseCase) RecordInvalidRequest(ctx context.Context, userID uuid.UUID, body map[string]any, reason string, meta RequestMeta) {
	entry := newLogEntry(domain.LevelWarn, domain.ActionTransactionFailed, "Transaction failed - invalid data", meta)
	entry.UserID = userRef(userID)
	entry.RequestBody = body
	entry.ErrorMessage = reason
	recordLog(ctx, u.logRepository, entry)
}

// fail runs after the rollback: the audit row has to survive it, so it is
// written outside the unit of work.
func (u *PurchaseProductUseCase) fail(ctx context.Context, input PurchaseProductInput, err error, failure map[string]any) error {
	var entry *domain.LogEntry

	switch {
	case errors.Is(err, domain.ErrOutOfStock):
		u.observe("out_of_stock")
		entry = newLogEntry(domain.LevelWarn, domain.ActionTransactionFailed, "Transaction failed - product out of stock", input.Meta)
		entry.Metadata = failure
	case errors.Is(err, domain.ErrInsufficientCredits):
		u.observe("insufficient_credits")
		entry = newLogEntry(domain.LevelWarn, domain.ActionTransactionFailed, "Transaction failed - insufficient credits", input.Meta)
		entry.Metadata = failure
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrDispenserNotFound),
		errors.Is(err, domain.ErrRowNotFound),
		errors.Is(err, domain.ErrWalletNotFound):
		u.observe("not_found")
		entry = newLogEntry(domain.LevelWarn, domain.ActionTransactionFailed, "Transaction failed - "+err.Error(), input.Meta)
		entry.Metadata = map[string]any{
			"dispenser_id": input.DispenserID.String(),
			"product_id":   input.ProductID.String(),
			"row_number":   input.RowNumber,
		}
	default:
		u.observe("error")
		log.Error().Err(err).Str("user_id", input.UserID.String()).Msg("purchase failed")
		entry = newLogEntry(domain.LevelError, domain.ActionTransactionError, "Transaction processing error: "+err.Error(), input.Meta)
		entry.ErrorMessage = err.Error()
		entry.RequestBody = input.RequestBody
		err = fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err)
	}

	entry.UserID = userRef(input.UserID)
	recordLog(ctx, u.logRepository, entry)
	return err
}

func (u *PurchaseProductUseCase) observe(outcome string) {
	if u.metrics != nil {
		u.metrics.ObservePurchase(outcome)
	}
}

// publish is best effort: the purchase is already committed.
func (u *PurchaseProductUseCase) publish(ctx context.Context, t *domain.Transaction, newBalance int64) {
	if u.eventPublisher == nil {
		return
	}
	event := TransactionCreatedEvent{
		TransactionID: t.ID.String(),
		UserID:        t.UserID.String(),
		DispenserID:   t.DispenserID.String(),
		ProductID:     t.ProductID.String(),
		RowNumber:     t.RowNumber,
		CreditsUsed:   t.CreditsUsed,
		NewBalance:    newBalance,
		Status:        string(t.Status),
	}
	if err := u.eventPublisher.Publish(ctx, EventsExchange, TransactionCreatedRouting, event); err != nil {
		log.Error().Err(err).Str("transaction_id", event.TransactionID).Msg("failed to publish transaction event")
	}
}
