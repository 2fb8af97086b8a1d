// Package worker turns purchase events from the broker into audit documents.
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/mongodb"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/rabbitmq"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/usecase"
	"github.com/rs/zerolog/log"
)

type AuditStore interface {
	Save(ctx context.Context, audit mongodb.PurchaseAudit) error
}

type AuditHandler struct {
	store AuditStore
}

func NewAuditHandler(store AuditStore) *AuditHandler {
	return &AuditHandler{store: store}
}

// Handle satisfies rabbitmq.Handler.
func (h *AuditHandler) Handle(ctx context.Context, body []byte) error {
	var event usecase.TransactionCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: %w", rabbitmq.ErrMalformed, err)
	}
	if event.TransactionID == "" {
		return fmt.Errorf("%w: missing transaction_id", rabbitmq.ErrMalformed)
	}

	audit := mongodb.PurchaseAudit{
		TransactionID: event.TransactionID,
		UserID:        event.UserID,
		DispenserID:   event.DispenserID,
		ProductID:     event.ProductID,
		RowNumber:     event.RowNumber,
		CreditsUsed:   event.CreditsUsed,
		NewBalance:    event.NewBalance,
		Status:        event.Status,
	}
	if err := h.store.Save(ctx, audit); err != nil {
		return err
	}

	log.Info().
		Str("transaction_id", event.TransactionID).
		Int64("credits_used", event.CreditsUsed).
		Msg("purchase audited")
	return nil
}
