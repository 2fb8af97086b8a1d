package domain

import (
	"time"

	"github.com/google/uuid"
)

type TransactionStatus string

const (
	TransactionSuccess TransactionStatus = "success"
	TransactionFailed  TransactionStatus = "failed"
)

// Transaction is the immutable record of a purchase.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	DispenserID uuid.UUID
	ProductID   uuid.UUID
	RowNumber   int
	CreditsUsed int64
	Status      TransactionStatus
	Timestamp   time.Time
}

// TransactionDetail is a transaction with its related rows loaded.
type TransactionDetail struct {
	Transaction
	User      User
	Dispenser Dispenser
	Product   Product
}
