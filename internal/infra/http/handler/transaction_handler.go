package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/http/middleware"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/usecase"
	"github.com/google/uuid"
)

const maxPurchaseBody = 1 << 16

type TransactionHandler struct {
	purchaseUC *usecase.PurchaseProductUseCase
	listUC     *usecase.ListTransactionsUseCase
}

func NewTransactionHandler(purchaseUC *usecase.PurchaseProductUseCase, listUC *usecase.ListTransactionsUseCase) *TransactionHandler {
	return &TransactionHandler{purchaseUC: purchaseUC, listUC: listUC}
}

type PurchaseRequest struct {
	DispenserID uuid.UUID `json:"dispenser_id" validate:"required"`
	ProductID   uuid.UUID `json:"product_id" validate:"required"`
	RowNumber   int       `json:"row_number" validate:"required,min=1,max=4"`
}

type PurchaseResponse struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	CreditsUsed   int64     `json:"credits_used"`
	NewBalance    int64     `json:"new_balance"`
	ProductName   string    `json:"product_name"`
	Status        string    `json:"status"`
}

func (h *TransactionHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.UserFromContext(ctx)
	meta := requestMeta(r)

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxPurchaseBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Could not read request body")
		return
	}
	// The raw body goes into the audit trail whatever its shape.
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	var req PurchaseRequest
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if fields, err := decode(r, &req); err != nil {
		reason := err.Error()
		if fields != nil {
			encoded, _ := json.Marshal(fields)
			reason = string(encoded)
		}
		h.purchaseUC.RecordInvalidRequest(ctx, user.ID, body, reason, meta)
		respondInvalid(w, fields, err)
		return
	}

	output, err := h.purchaseUC.Execute(ctx, usecase.PurchaseProductInput{
		UserID:      user.ID,
		DispenserID: req.DispenserID,
		ProductID:   req.ProductID,
		RowNumber:   req.RowNumber,
		RequestBody: body,
		Meta:        meta,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, PurchaseResponse{
		TransactionID: output.TransactionID,
		CreditsUsed:   output.CreditsUsed,
		NewBalance:    output.NewBalance,
		ProductName:   output.ProductName,
		Status:        string(output.Status),
	})
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)
	transactions, total, err := h.listUC.List(r.Context(), middleware.UserFromContext(r.Context()), page.toPage())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newPage(transactions, total, page, toTransactionResponse))
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	transaction, err := h.listUC.Get(r.Context(), middleware.UserFromContext(r.Context()), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toTransactionResponse(*transaction))
}

// UserTransactions lists the transactions of ?user_id for admins and of the
// caller for everyone else.
func (h *TransactionHandler) UserTransactions(w http.ResponseWriter, r *http.Request) {
	var target *uuid.UUID
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid user_id")
			return
		}
		target = &id
	}

	page := parsePage(r)
	transactions, total, err := h.listUC.ForUser(r.Context(), middleware.UserFromContext(r.Context()), target, page.toPage())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newPage(transactions, total, page, toTransactionResponse))
}
