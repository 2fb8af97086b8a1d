package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Wallet holds the credit balance of a customer.
// The balance never goes negative.
type Wallet struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Balance             int64
	SubscriptionEndDate *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasSufficientFunds checks the balance before touching the database.
func (w *Wallet) HasSufficientFunds(amount int64) bool {
	return w.Balance >= amount
}

func (w *Wallet) Debit(amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if !w.HasSufficientFunds(amount) {
		return ErrInsufficientCredits
	}
	w.Balance -= amount
	return nil
}

// CanCredit reports whether amount fits on top of the current balance.
func (w *Wallet) CanCredit(amount int64) bool {
	return amount > 0 && amount <= math.MaxInt64-w.Balance
}

func (w *Wallet) Credit(amount int64) error {
	if !w.CanCredit(amount) {
		return ErrInvalidAmount
	}
	w.Balance += amount
	return nil
}
