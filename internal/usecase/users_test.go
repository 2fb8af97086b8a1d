package usecase_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/usecase"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("individual customer gets a wallet", func(t *testing.T) {
		f := newFixture()
		uc := usecase.NewRegisterUser(f.users, f.wallets, f.logs, f.uow, plainHasher{}, staticTokens{})

		out, err := uc.Execute(ctx, usecase.RegisterUserInput{PhoneNumber: "+1000", Password: "secret"})
		require.NoError(t, err)

		assert.Equal(t, domain.UserTypeCustomer, out.User.UserType)
		assert.Equal(t, domain.AccountTypeIndividual, out.User.AccountType)
		assert.False(t, out.User.AccountVerified)
		assert.Equal(t, "token-"+out.User.ID.String(), out.Token)
		require.NotNil(t, out.Wallet)
		assert.Zero(t, out.Wallet.Balance)
		assert.Len(t, f.logsWithAction(t, domain.ActionRegistrationSuccess), 1)
	})

	t.Run("corporate plan is verified with a trial window", func(t *testing.T) {
		f := newFixture()
		uc := usecase.NewRegisterUser(f.users, f.wallets, f.logs, f.uow, plainHasher{}, staticTokens{})

		out, err := uc.Execute(ctx, usecase.RegisterUserInput{
			PhoneNumber:      "+1001",
			Password:         "secret",
			AccountType:      domain.AccountTypeCorporate,
			SubscriptionType: domain.SubscriptionCorporate,
		})
		require.NoError(t, err)
		assert.True(t, out.User.AccountVerified)
		require.NotNil(t, out.User.SubscriptionEndDate)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, domain.CorporateTrialDays), *out.User.SubscriptionEndDate, time.Minute)
	})

	t.Run("duplicate phone is rejected and audited", func(t *testing.T) {
		f := newFixture()
		uc := usecase.NewRegisterUser(f.users, f.wallets, f.logs, f.uow, plainHasher{}, staticTokens{})

		_, err := uc.Execute(ctx, usecase.RegisterUserInput{PhoneNumber: "+1002", Password: "secret"})
		require.NoError(t, err)
		_, err = uc.Execute(ctx, usecase.RegisterUserInput{PhoneNumber: "+1002", Password: "other"})
		require.ErrorIs(t, err, domain.ErrConflict)

		assert.Len(t, f.logsWithAction(t, domain.ActionRegistrationFailed), 1)
		_, total, err := f.users.List(ctx, domain.Page{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewLogin(f.users, f.wallets, f.logs, plainHasher{}, staticTokens{})

	user, _ := f.customer(t, "+2000", 4)
	inactive := f.user(t, "+2001", domain.UserTypeMaintenance)
	inactive.IsActive = false
	require.NoError(t, f.users.Update(ctx, inactive))

	tests := []struct {
		name    string
		input   usecase.LoginInput
		wantErr error
	}{
		{"unknown user", usecase.LoginInput{PhoneNumber: "+9999", Password: "secret"}, domain.ErrInvalidCredentials},
		{"wrong password", usecase.LoginInput{PhoneNumber: "+2000", Password: "nope"}, domain.ErrInvalidCredentials},
		{"deactivated", usecase.LoginInput{PhoneNumber: "+2001", Password: "secret"}, domain.ErrAccountDeactivated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Len(t, f.logsWithAction(t, domain.ActionLoginFailed), len(tests))

	out, err := uc.Execute(ctx, usecase.LoginInput{PhoneNumber: "+2000", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, out.User.ID)
	require.NotNil(t, out.Wallet)
	assert.Equal(t, int64(4), out.Wallet.Balance)
	assert.NotNil(t, out.User.LastLogin)
	assert.Len(t, f.logsWithAction(t, domain.ActionLoginSuccess), 1)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewChangePassword(f.users, f.logs, plainHasher{})
	user := f.user(t, "+3000", domain.UserTypeCustomer)

	err := uc.Execute(ctx, usecase.ChangePasswordInput{User: user, CurrentPassword: "bad", NewPassword: "new"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Len(t, f.logsWithAction(t, domain.ActionPasswordChangeFailed), 1)

	require.NoError(t, uc.Execute(ctx, usecase.ChangePasswordInput{User: user, CurrentPassword: "secret", NewPassword: "new"}))
	stored, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:new", stored.PasswordHash)
	assert.Len(t, f.logsWithAction(t, domain.ActionPasswordChanged), 1)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	admin := f.user(t, "+4000", domain.UserTypeAdmin)
	uc := usecase.NewCreateUser(f.users, f.wallets, f.logs, f.uow, plainHasher{})

	staff, err := uc.Execute(ctx, usecase.CreateUserInput{Admin: admin, PhoneNumber: "+4001", Password: "x", UserType: domain.UserTypeMaintenance})
	require.NoError(t, err)
	assert.True(t, staff.AccountVerified)
	_, err = f.wallets.GetByUserID(ctx, staff.ID)
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)

	customer, err := uc.Execute(ctx, usecase.CreateUserInput{Admin: admin, PhoneNumber: "+4002", Password: "x"})
	require.NoError(t, err)
	assert.False(t, customer.AccountVerified)
	_, err = f.wallets.GetByUserID(ctx, customer.ID)
	assert.NoError(t, err)

	entries := f.logsWithAction(t, domain.ActionAdminUserCreation)
	require.Len(t, entries, 2)
	require.NotNil(t, entries[0].AdminID)
	assert.Equal(t, admin.ID, *entries[0].AdminID)
}

func TestManageUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewManageUsers(f.users)
	admin := f.user(t, "+5000", domain.UserTypeAdmin)
	alice := f.user(t, "+5001", domain.UserTypeCustomer)
	bob := f.user(t, "+5002", domain.UserTypeCustomer)

	list, total, err := uc.List(ctx, alice, domain.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, alice.ID, list[0].ID)

	_, total, err = uc.List(ctx, admin, domain.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	_, err = uc.Get(ctx, alice, bob.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	promote := domain.UserTypeAdmin
	_, err = uc.Update(ctx, alice, alice.ID, usecase.UpdateUserInput{UserType: &promote})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	email := "alice@example.com"
	updated, err := uc.Update(ctx, alice, alice.ID, usecase.UpdateUserInput{Email: &email})
	require.NoError(t, err)
	require.NotNil(t, updated.Email)
	assert.Equal(t, email, *updated.Email)

	off := false
	updated, err = uc.Update(ctx, admin, bob.ID, usecase.UpdateUserInput{IsActive: &off})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	require.NoError(t, uc.Delete(ctx, bob.ID))
	assert.ErrorIs(t, uc.Delete(ctx, bob.ID), domain.ErrUserNotFound)
}

func TestAddCredits(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewAddCredits(f.users, f.wallets, f.logs, f.uow)
	admin := f.user(t, "+6000", domain.UserTypeAdmin)
	customer, _ := f.customer(t, "+6001", 5)
	staff := f.user(t, "+6002", domain.UserTypeMaintenance)

	_, err := uc.Execute(ctx, usecase.AddCreditsInput{Admin: admin, UserID: customer.ID, Credits: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = uc.Execute(ctx, usecase.AddCreditsInput{Admin: admin, UserID: uuid.New(), Credits: 1})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	out, err := uc.Execute(ctx, usecase.AddCreditsInput{Admin: admin, UserID: customer.ID, Credits: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(15), out.NewBalance)

	out, err = uc.Execute(ctx, usecase.AddCreditsInput{Admin: admin, UserID: staff.ID, Credits: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.NewBalance)

	entries := f.logsWithAction(t, domain.ActionCreditsAdded)
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].Metadata, "new_balance")
}

func TestAddCredits_RejectsBalanceOverflow(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewAddCredits(f.users, f.wallets, f.logs, f.uow)
	admin := f.user(t, "+6100", domain.UserTypeAdmin)
	customer, wallet := f.customer(t, "+6101", 0)

	_, err := uc.Execute(ctx, usecase.AddCreditsInput{Admin: admin, UserID: customer.ID, Credits: math.MaxInt64 - 5})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, usecase.AddCreditsInput{Admin: admin, UserID: customer.ID, Credits: math.MaxInt64 - 5})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	got, err := f.wallets.GetByUserID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, wallet.ID, got.ID)
	assert.Equal(t, int64(math.MaxInt64-5), got.Balance)
	assert.Len(t, f.logsWithAction(t, domain.ActionCreditsAdded), 1)
}

func TestUpdateSubscription(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewUpdateSubscription(f.users, f.wallets, f.logs, f.uow)
	admin := f.user(t, "+7000", domain.UserTypeAdmin)
	customer, _ := f.customer(t, "+7001", 0)

	_, err := uc.Execute(ctx, usecase.UpdateSubscriptionInput{Admin: admin, UserID: customer.ID, SubscriptionType: domain.SubscriptionBasic, DurationDays: 400})
	assert.ErrorIs(t, err, usecase.ErrInvalidDuration)

	user, err := uc.Execute(ctx, usecase.UpdateSubscriptionInput{Admin: admin, UserID: customer.ID, SubscriptionType: domain.SubscriptionCorporate})
	require.NoError(t, err)
	assert.True(t, user.AccountVerified)
	require.NotNil(t, user.SubscriptionEndDate)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, usecase.DefaultSubscriptionDays), *user.SubscriptionEndDate, time.Minute)

	wallet, err := f.wallets.GetByUserID(ctx, customer.ID)
	require.NoError(t, err)
	require.NotNil(t, wallet.SubscriptionEndDate)
	assert.True(t, wallet.SubscriptionEndDate.Equal(*user.SubscriptionEndDate))
	assert.Len(t, f.logsWithAction(t, domain.ActionSubscriptionUpdated), 1)
}

func TestGetWallet(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := usecase.NewGetWallet(f.wallets)
	admin := f.user(t, "+8000", domain.UserTypeAdmin)
	owner, _ := f.customer(t, "+8001", 2)
	other, _ := f.customer(t, "+8002", 0)

	w, err := uc.Execute(ctx, owner, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), w.Balance)

	_, err = uc.Execute(ctx, admin, owner.ID)
	assert.NoError(t, err)

	_, err = uc.Execute(ctx, other, owner.ID)
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}
