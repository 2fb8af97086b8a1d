package memory

import (
	"context"
	"slices"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/google/uuid"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	return r.store.write(func(d *state) error {
		if conflictingUser(d, user) {
			return domain.ErrConflict
		}
		user.ID = uuid.New()
		stamp(&user.CreatedAt, &user.UpdatedAt)
		d.users[user.ID] = *user
		return nil
	})
}

func conflictingUser(d *state, user *domain.User) bool {
	for _, u := range d.users {
		if u.ID == user.ID {
			continue
		}
		if u.PhoneNumber == user.PhoneNumber {
			return true
		}
		if u.Email != nil && user.Email != nil && *u.Email == *user.Email {
			return true
		}
	}
	return false
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	var (
		user domain.User
		ok   bool
	)
	r.store.read(func(d *state) { user, ok = d.users[id] })
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByPhoneNumber(_ context.Context, phoneNumber string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.PhoneNumber == phoneNumber })
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email != nil && *u.Email == email })
}

func (r *UserRepository) find(match func(domain.User) bool) (*domain.User, error) {
	var found *domain.User
	r.store.read(func(d *state) {
		for _, u := range d.users {
			if match(u) {
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, domain.ErrUserNotFound
	}
	return found, nil
}

func (r *UserRepository) List(_ context.Context, page domain.Page) ([]domain.User, int64, error) {
	var users []domain.User
	r.store.read(func(d *state) {
		users = make([]domain.User, 0, len(d.users))
		for _, u := range d.users {
			users = append(users, u)
		}
	})
	slices.SortFunc(users, func(a, b domain.User) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return window(users, page), int64(len(users)), nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	return r.store.write(func(d *state) error {
		if _, ok := d.users[user.ID]; !ok {
			return domain.ErrUserNotFound
		}
		if conflictingUser(d, user) {
			return domain.ErrConflict
		}
		user.UpdatedAt = time.Now().UTC()
		d.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepository) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	return r.store.write(func(d *state) error {
		u, ok := d.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		u.PasswordHash = passwordHash
		u.UpdatedAt = time.Now().UTC()
		d.users[id] = u
		return nil
	})
}

func (r *UserRepository) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	return r.store.write(func(d *state) error {
		u, ok := d.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		u.LastLogin = &at
		d.users[id] = u
		return nil
	})
}

// Delete cascades to the wallet and the transactions of the user and
// detaches its audit entries.
func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.store.write(func(d *state) error {
		if _, ok := d.users[id]; !ok {
			return domain.ErrUserNotFound
		}
		delete(d.users, id)
		for wid, w := range d.wallets {
			if w.UserID == id {
				delete(d.wallets, wid)
			}
		}
		d.transactions = slices.DeleteFunc(d.transactions, func(t domain.Transaction) bool { return t.UserID == id })
		for i := range d.logs {
			if d.logs[i].UserID != nil && *d.logs[i].UserID == id {
				d.logs[i].UserID = nil
			}
			if d.logs[i].AdminID != nil && *d.logs[i].AdminID == id {
				d.logs[i].AdminID = nil
			}
		}
		return nil
	})
}

func (r *UserRepository) WithTx(gateway.TransactionObject) gateway.UserRepository {
	return r
}

// stamp fills zero timestamps with the current time.
func stamp(created, updated *time.Time) {
	now := time.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() {
		*updated = *created
	}
}
