package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID
	ProductName string
	CreditCost  int64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
