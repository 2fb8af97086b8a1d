package usecase_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/memory"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/usecase"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type staticTokens struct{}

func (staticTokens) Issue(userID uuid.UUID) (string, error) { return "token-" + userID.String(), nil }

func (staticTokens) Parse(token string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimPrefix(token, "token-"))
	if err != nil {
		return uuid.Nil, domain.ErrInvalidToken
	}
	return id, nil
}

type publishedEvent struct {
	Exchange   string
	RoutingKey string
	Body       interface{}
}

type MockPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	Err    error
}

func (m *MockPublisher) Publish(_ context.Context, exchange, routingKey string, body interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, publishedEvent{exchange, routingKey, body})
	return m.Err
}

type countingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (c *countingMetrics) ObservePurchase(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.outcomes == nil {
		c.outcomes = map[string]int{}
	}
	c.outcomes[outcome]++
}

// fixture wires the use cases over one in-memory store.
type fixture struct {
	store        *memory.Store
	users        *memory.UserRepository
	wallets      *memory.WalletRepository
	products     *memory.ProductRepository
	dispensers   *memory.DispenserRepository
	transactions *memory.TransactionRepository
	logs         *memory.LogRepository
	uow          *memory.Uow
	publisher    *MockPublisher
	metrics      *countingMetrics
}

func newFixture() *fixture {
	store := memory.NewStore()
	return &fixture{
		store:        store,
		users:        memory.NewUserRepository(store),
		wallets:      memory.NewWalletRepository(store),
		products:     memory.NewProductRepository(store),
		dispensers:   memory.NewDispenserRepository(store),
		transactions: memory.NewTransactionRepository(store),
		logs:         memory.NewLogRepository(store),
		uow:          memory.NewUow(store),
		publisher:    &MockPublisher{},
		metrics:      &countingMetrics{},
	}
}

func (f *fixture) purchase() *usecase.PurchaseProductUseCase {
	return usecase.NewPurchaseProduct(f.products, f.dispensers, f.wallets, f.transactions, f.logs, f.uow, f.publisher, f.metrics)
}

func (f *fixture) user(t *testing.T, phone string, userType domain.UserType) *domain.User {
	t.Helper()
	u := &domain.User{
		PhoneNumber:      phone,
		PasswordHash:     "hashed:secret",
		UserType:         userType,
		AccountType:      domain.AccountTypeIndividual,
		SubscriptionType: domain.SubscriptionNone,
		IsActive:         true,
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) customer(t *testing.T, phone string, balance int64) (*domain.User, *domain.Wallet) {
	t.Helper()
	ctx := context.Background()
	u := f.user(t, phone, domain.UserTypeCustomer)
	w, err := f.wallets.Create(ctx, u.ID)
	require.NoError(t, err)
	if balance > 0 {
		w.Balance, err = f.wallets.Credit(ctx, w.ID, balance)
		require.NoError(t, err)
	}
	return u, w
}

func (f *fixture) product(t *testing.T, name string, cost int64, active bool) *domain.Product {
	t.Helper()
	p := &domain.Product{ProductName: name, CreditCost: cost, IsActive: active}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

// stockedDispenser creates a dispenser with p in row 1 holding inventory units.
func (f *fixture) stockedDispenser(t *testing.T, p *domain.Product, inventory int) *domain.Dispenser {
	t.Helper()
	ctx := context.Background()
	d, err := usecase.NewDispenserUseCase(f.dispensers, f.uow).Create(ctx, usecase.CreateDispenserInput{
		BLEBeaconID:  uuid.NewString(),
		LocationName: "Station " + p.ProductName,
	})
	require.NoError(t, err)
	_, err = f.dispensers.UpsertRow(ctx, &domain.DispenserProduct{
		DispenserID:      d.ID,
		RowNumber:        1,
		Product:          p,
		CurrentInventory: inventory,
		MaxCapacity:      10,
	})
	require.NoError(t, err)
	return d
}

func (f *fixture) logsWithAction(t *testing.T, action string) []domain.LogEntry {
	t.Helper()
	entries, _, err := f.logs.List(context.Background(), domain.LogFilter{Action: action}, domain.Page{})
	require.NoError(t, err)
	return entries
}
