package domain

import (
	"time"

	"github.com/google/uuid"
)

type LogLevel string

const (
	LevelInfo     LogLevel = "info"
	LevelWarn     LogLevel = "warn"
	LevelError    LogLevel = "error"
	LevelDebug    LogLevel = "debug"
	LevelSecurity LogLevel = "security"
)

func (l LogLevel) Valid() bool {
	switch l {
	case LevelInfo, LevelWarn, LevelError, LevelDebug, LevelSecurity:
		return true
	}
	return false
}

// Audit actions.
const (
	ActionRegistrationSuccess    = "REGISTRATION_SUCCESS"
	ActionRegistrationFailed     = "REGISTRATION_FAILED"
	ActionLoginSuccess           = "LOGIN_SUCCESS"
	ActionLoginFailed            = "LOGIN_FAILED"
	ActionPasswordChanged        = "PASSWORD_CHANGED"
	ActionPasswordChangeFailed   = "PASSWORD_CHANGE_FAILED"
	ActionAdminUserCreation      = "ADMIN_USER_CREATION"
	ActionCreditsAdded           = "CREDITS_ADDED"
	ActionSubscriptionUpdated    = "SUBSCRIPTION_UPDATED"
	ActionDispenserProductUpdate = "DISPENSER_PRODUCT_UPDATED"
	ActionDispenserProductError  = "DISPENSER_PRODUCT_UPDATE_ERROR"
	ActionTransactionSuccess     = "TRANSACTION_SUCCESS"
	ActionTransactionFailed      = "TRANSACTION_FAILED"
	ActionTransactionError       = "TRANSACTION_ERROR"
)

// LogEntry is a row of the business audit trail. It is written next to the
// change it describes and never updated.
type LogEntry struct {
	ID             uuid.UUID
	Level          LogLevel
	Action         string
	Description    string
	UserID         *uuid.UUID
	AdminID        *uuid.UUID
	IPAddress      string
	UserAgent      string
	RequestMethod  string
	RequestURL     string
	RequestBody    map[string]any
	ResponseStatus *int
	ResponseBody   map[string]any
	ErrorMessage   string
	ErrorStack     string
	Metadata       map[string]any
	Timestamp      time.Time
}

// LogFilter narrows a log listing. Zero values are ignored.
type LogFilter struct {
	Level     LogLevel
	Action    string
	UserID    *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

type LevelCount struct {
	Level LogLevel `json:"level"`
	Count int64    `json:"count"`
}

type ActionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}

type LogStats struct {
	Levels        []LevelCount
	TopActions    []ActionCount
	TotalLogs     int64
	Last24h       int64
	ErrorsLast24h int64
}

// Page is an offset/limit window over a listing.
type Page struct {
	Limit  int
	Offset int
}
