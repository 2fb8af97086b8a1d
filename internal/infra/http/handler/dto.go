package handler

import (
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/usecase"
	"github.com/google/uuid"
)

type userResponse struct {
	ID                    uuid.UUID  `json:"id"`
	PhoneNumber           string     `json:"phone_number"`
	Email                 *string    `json:"email"`
	UserType              string     `json:"user_type"`
	AccountType           string     `json:"account_type"`
	SubscriptionType      string     `json:"subscription_type"`
	SubscriptionStartDate *time.Time `json:"subscription_start_date"`
	SubscriptionEndDate   *time.Time `json:"subscription_end_date"`
	AccountVerified       bool       `json:"account_verified"`
	IsActive              bool       `json:"is_active"`
	LastLogin             *time.Time `json:"last_login"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:                    u.ID,
		PhoneNumber:           u.PhoneNumber,
		Email:                 u.Email,
		UserType:              string(u.UserType),
		AccountType:           string(u.AccountType),
		SubscriptionType:      string(u.SubscriptionType),
		SubscriptionStartDate: u.SubscriptionStartDate,
		SubscriptionEndDate:   u.SubscriptionEndDate,
		AccountVerified:       u.AccountVerified,
		IsActive:              u.IsActive,
		LastLogin:             u.LastLogin,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

type walletResponse struct {
	ID                  uuid.UUID  `json:"id"`
	UserID              uuid.UUID  `json:"user_id"`
	Balance             int64      `json:"balance"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func toWalletResponse(w *domain.Wallet) *walletResponse {
	if w == nil {
		return nil
	}
	return &walletResponse{
		ID:                  w.ID,
		UserID:              w.UserID,
		Balance:             w.Balance,
		SubscriptionEndDate: w.SubscriptionEndDate,
		CreatedAt:           w.CreatedAt,
		UpdatedAt:           w.UpdatedAt,
	}
}

type authResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    userResponse    `json:"user"`
	Wallet  *walletResponse `json:"wallet"`
}

func toAuthResponse(message string, out *usecase.AuthOutput) authResponse {
	return authResponse{
		Message: message,
		Token:   out.Token,
		User:    toUserResponse(*out.User),
		Wallet:  toWalletResponse(out.Wallet),
	}
}

type productResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductName string    `json:"product_name"`
	CreditCost  int64     `json:"credit_cost"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		ProductName: p.ProductName,
		CreditCost:  p.CreditCost,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type rowResponse struct {
	ID               uuid.UUID        `json:"id"`
	DispenserID      uuid.UUID        `json:"dispenser_id"`
	RowNumber        int              `json:"row_number"`
	Product          *productResponse `json:"product"`
	CurrentInventory int              `json:"current_inventory"`
	MaxCapacity      int              `json:"max_capacity"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func toRowResponse(r domain.DispenserProduct) rowResponse {
	resp := rowResponse{
		ID:               r.ID,
		DispenserID:      r.DispenserID,
		RowNumber:        r.RowNumber,
		CurrentInventory: r.CurrentInventory,
		MaxCapacity:      r.MaxCapacity,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if r.Product != nil {
		p := toProductResponse(*r.Product)
		resp.Product = &p
	}
	return resp
}

type dispenserResponse struct {
	ID             uuid.UUID             `json:"id"`
	BLEBeaconID    string                `json:"ble_beacon_id"`
	LocationName   string                `json:"location_name"`
	GPSCoordinates domain.GPSCoordinates `json:"gps_coordinates"`
	InstallDate    time.Time             `json:"install_date"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Products       []rowResponse         `json:"products"`
	DistanceKm     *float64              `json:"distance_km,omitempty"`
}

func toDispenserResponse(d domain.Dispenser) dispenserResponse {
	rows := make([]rowResponse, 0, len(d.Rows))
	for _, r := range d.Rows {
		rows = append(rows, toRowResponse(r))
	}
	return dispenserResponse{
		ID:             d.ID,
		BLEBeaconID:    d.BLEBeaconID,
		LocationName:   d.LocationName,
		GPSCoordinates: d.GPSCoordinates,
		InstallDate:    d.InstallDate,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		Products:       rows,
	}
}

type transactionResponse struct {
	ID          uuid.UUID         `json:"id"`
	User        userResponse      `json:"user"`
	Dispenser   dispenserResponse `json:"dispenser"`
	Product     productResponse   `json:"product"`
	RowNumber   int               `json:"row_number"`
	CreditsUsed int64             `json:"credits_used"`
	Status      string            `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
}

func toTransactionResponse(t domain.TransactionDetail) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		User:        toUserResponse(t.User),
		Dispenser:   toDispenserResponse(t.Dispenser),
		Product:     toProductResponse(t.Product),
		RowNumber:   t.RowNumber,
		CreditsUsed: t.CreditsUsed,
		Status:      string(t.Status),
		Timestamp:   t.Timestamp,
	}
}

type logResponse struct {
	ID             uuid.UUID      `json:"id"`
	Level          string         `json:"level"`
	Action         string         `json:"action"`
	Description    string         `json:"description"`
	UserID         *uuid.UUID     `json:"user_id"`
	AdminID        *uuid.UUID     `json:"admin_id"`
	IPAddress      string         `json:"ip_address"`
	UserAgent      string         `json:"user_agent"`
	RequestMethod  string         `json:"request_method"`
	RequestURL     string         `json:"request_url"`
	RequestBody    map[string]any `json:"request_body"`
	ResponseStatus *int           `json:"response_status"`
	ResponseBody   map[string]any `json:"response_body"`
	ErrorMessage   string         `json:"error_message"`
	ErrorStack     string         `json:"error_stack"`
	Metadata       map[string]any `json:"metadata"`
	Timestamp      time.Time      `json:"timestamp"`
}

func toLogResponse(e domain.LogEntry) logResponse {
	return logResponse{
		ID:             e.ID,
		Level:          string(e.Level),
		Action:         e.Action,
		Description:    e.Description,
		UserID:         e.UserID,
		AdminID:        e.AdminID,
		IPAddress:      e.IPAddress,
		UserAgent:      e.UserAgent,
		RequestMethod:  e.RequestMethod,
		RequestURL:     e.RequestURL,
		RequestBody:    e.RequestBody,
		ResponseStatus: e.ResponseStatus,
		ResponseBody:   e.ResponseBody,
		ErrorMessage:   e.ErrorMessage,
		ErrorStack:     e.ErrorStack,
		Metadata:       e.Metadata,
		Timestamp:      e.Timestamp,
	}
}
