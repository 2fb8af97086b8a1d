package domain

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrDispenserNotFound   = errors.New("dispenser not found")
	ErrRowNotFound         = errors.New("dispenser row not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrLogNotFound         = errors.New("log entry not found")

	ErrOutOfStock          = errors.New("product out of stock")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInvalidRowNumber    = errors.New("row number must be between 1 and 4")
	ErrInvalidInventory    = errors.New("current inventory must be between 0 and max capacity")
	ErrInvalidCapacity     = errors.New("max capacity is out of range")
	ErrProductInactive     = errors.New("product not found or inactive")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("permission denied")
	ErrConflict           = errors.New("resource already exists")

	ErrTransactionFailed = errors.New("transaction failed")
)
