// Package app wires use cases and handlers over a set of repositories.
package app

import (
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/http/handler"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/http/router"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/memory"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/postgres"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/usecase"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories is one storage backend.
type Repositories struct {
	Users        gateway.UserRepository
	Wallets      gateway.WalletRepository
	Products     gateway.ProductRepository
	Dispensers   gateway.DispenserRepository
	Transactions gateway.TransactionRepository
	Logs         gateway.LogRepository
	TxManager    gateway.TransactionManager
}

func PostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:        postgres.NewUserRepository(pool),
		Wallets:      postgres.NewWalletRepository(pool),
		Products:     postgres.NewProductRepository(pool),
		Dispensers:   postgres.NewDispenserRepository(pool),
		Transactions: postgres.NewTransactionRepository(pool),
		Logs:         postgres.NewLogRepository(pool),
		TxManager:    postgres.NewUow(pool),
	}
}

func MemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Users:        memory.NewUserRepository(store),
		Wallets:      memory.NewWalletRepository(store),
		Products:     memory.NewProductRepository(store),
		Dispensers:   memory.NewDispenserRepository(store),
		Transactions: memory.NewTransactionRepository(store),
		Logs:         memory.NewLogRepository(store),
		TxManager:    memory.NewUow(store),
	}
}

// Services are the adapters the use cases need besides storage. Publisher and
// Metrics may be nil.
type Services struct {
	Hasher    gateway.PasswordHasher
	Tokens    gateway.TokenIssuer
	Publisher gateway.EventPublisher
	Metrics   gateway.PurchaseMetrics
}

func NewHandlers(repos Repositories, svc Services) router.Handlers {
	return router.Handlers{
		Auth: handler.NewAuthHandler(
			usecase.NewRegisterUser(repos.Users, repos.Wallets, repos.Logs, repos.TxManager, svc.Hasher, svc.Tokens),
			usecase.NewLogin(repos.Users, repos.Wallets, repos.Logs, svc.Hasher, svc.Tokens),
			usecase.NewChangePassword(repos.Users, repos.Logs, svc.Hasher),
		),
		Users: handler.NewUserHandler(
			usecase.NewManageUsers(repos.Users),
			usecase.NewCreateUser(repos.Users, repos.Wallets, repos.Logs, repos.TxManager, svc.Hasher),
			usecase.NewAddCredits(repos.Users, repos.Wallets, repos.Logs, repos.TxManager),
			usecase.NewUpdateSubscription(repos.Users, repos.Wallets, repos.Logs, repos.TxManager),
			usecase.NewGetWallet(repos.Wallets),
		),
		Products: handler.NewProductHandler(usecase.NewProductCatalog(repos.Products)),
		Dispensers: handler.NewDispenserHandler(
			usecase.NewDispenserUseCase(repos.Dispensers, repos.TxManager),
			usecase.NewStockDispenserRow(repos.Dispensers, repos.Products, repos.Logs, repos.TxManager),
		),
		Transactions: handler.NewTransactionHandler(
			usecase.NewPurchaseProduct(repos.Products, repos.Dispensers, repos.Wallets, repos.Transactions,
				repos.Logs, repos.TxManager, svc.Publisher, svc.Metrics),
			usecase.NewListTransactions(repos.Transactions, repos.Users),
		),
		Logs: handler.NewLogHandler(usecase.NewAuditLog(repos.Logs)),
	}
}
