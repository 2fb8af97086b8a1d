package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserTypeCustomer    UserType = "customer"
	UserTypeMaintenance UserType = "maintenance"
	UserTypeAdmin       UserType = "admin"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeCustomer, UserTypeMaintenance, UserTypeAdmin:
		return true
	}
	return false
}

type AccountType string

const (
	AccountTypeIndividual AccountType = "individual"
	AccountTypeCorporate  AccountType = "corporate"
)

type SubscriptionType string

const (
	SubscriptionNone      SubscriptionType = "none"
	SubscriptionBasic     SubscriptionType = "basic"
	SubscriptionCorporate SubscriptionType = "corporate"
)

// CorporateTrialDays is the default subscription length granted to corporate plans.
const CorporateTrialDays = 30

// User is an account of the dispenser network. Customers own a wallet,
// maintenance staff restock dispensers and admins manage everything.
type User struct {
	ID                    uuid.UUID
	PhoneNumber           string
	Email                 *string
	PasswordHash          string
	UserType              UserType
	AccountType           AccountType
	SubscriptionType      SubscriptionType
	SubscriptionStartDate *time.Time
	SubscriptionEndDate   *time.Time
	AccountVerified       bool
	IsActive              bool
	LastLogin             *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (u *User) IsAdmin() bool       { return u.UserType == UserTypeAdmin }
func (u *User) IsCustomer() bool    { return u.UserType == UserTypeCustomer }
func (u *User) IsMaintenance() bool { return u.UserType == UserTypeMaintenance }

// ApplySubscription sets the subscription window for a freshly created user.
// Basic plans start at creation; corporate plans are verified and run for
// CorporateTrialDays.
func (u *User) ApplySubscription(now time.Time) {
	switch u.SubscriptionType {
	case SubscriptionBasic:
		start := u.CreatedAt
		u.SubscriptionStartDate = &start
	case SubscriptionCorporate:
		start := u.CreatedAt
		end := now.AddDate(0, 0, CorporateTrialDays)
		u.AccountVerified = true
		u.SubscriptionStartDate = &start
		u.SubscriptionEndDate = &end
	}
}
