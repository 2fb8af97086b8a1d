// Package router assembles the chi routes of the public API.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/http/handler"
	internalMiddleware "github.com/Faisal-Javaid/napkin-dispenser/internal/infra/http/middleware"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Products     *handler.ProductHandler
	Dispensers   *handler.DispenserHandler
	Transactions *handler.TransactionHandler
	Logs         *handler.LogHandler
}

type Deps struct {
	Handlers Handlers
	Tokens   gateway.TokenIssuer
	Users    gateway.UserRepository
	// Idempotency and Metrics are optional.
	Idempotency gateway.IdempotencyRepository
	Metrics     *metrics.Metrics
	Timeout     time.Duration
	// Health reports whether the backing stores answer.
	Health func(ctx context.Context) error
}

func New(deps Deps) http.Handler {
	h := deps.Handlers

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(internalMiddleware.RequestLogger)
	r.Use(middleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	if deps.Timeout > 0 {
		r.Use(middleware.Timeout(deps.Timeout))
	}

	authenticated := internalMiddleware.Authenticate(deps.Tokens, deps.Users)
	optionalAuth := internalMiddleware.OptionalAuthenticate(deps.Tokens, deps.Users)
	adminOnly := internalMiddleware.RequireUserType(domain.UserTypeAdmin)
	customerOnly := internalMiddleware.RequireUserType(domain.UserTypeCustomer)
	staffOnly := internalMiddleware.RequireUserType(domain.UserTypeAdmin, domain.UserTypeMaintenance)
	idempotent := func(next http.Handler) http.Handler { return next }
	if deps.Idempotency != nil {
		idempotent = internalMiddleware.Idempotency(deps.Idempotency)
	}

	r.Get("/health", health(deps.Health))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.With(authenticated).Post("/change_password", h.Auth.ChangePassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authenticated)
			r.With(adminOnly).Get("/", h.Users.List)
			r.With(adminOnly).Post("/create_user", h.Users.CreateUser)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Users.Get)
				r.Put("/", h.Users.Update)
				r.Patch("/", h.Users.Update)
				r.With(adminOnly).Delete("/", h.Users.Delete)
				r.With(adminOnly, idempotent).Post("/add_credits", h.Users.AddCredits)
				r.With(adminOnly).Post("/subscription", h.Users.UpdateSubscription)
				r.Get("/wallet", h.Users.Wallet)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.With(optionalAuth).Get("/", h.Products.List)
			r.Get("/active", h.Products.Active)
			r.With(optionalAuth).Get("/{id}", h.Products.Get)
			r.Group(func(r chi.Router) {
				r.Use(authenticated, adminOnly)
				r.Post("/", h.Products.Create)
				r.Put("/{id}", h.Products.Update)
				r.Patch("/{id}", h.Products.Update)
				r.Delete("/{id}", h.Products.Delete)
			})
		})

		r.Route("/dispensers", func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/", h.Dispensers.List)
			r.Get("/nearby", h.Dispensers.Nearby)
			r.Get("/{id}", h.Dispensers.Get)
			r.With(staffOnly).Post("/{id}/add_product", h.Dispensers.AddProduct)
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", h.Dispensers.Create)
				r.Put("/{id}", h.Dispensers.Update)
				r.Patch("/{id}", h.Dispensers.Update)
				r.Delete("/{id}", h.Dispensers.Delete)
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(authenticated)
			r.With(customerOnly, idempotent).Post("/purchase", h.Transactions.Purchase)
			r.Get("/", h.Transactions.List)
			r.Get("/user_transactions", h.Transactions.UserTransactions)
			r.Get("/{id}", h.Transactions.Get)
		})

		r.Route("/logs", func(r chi.Router) {
			r.Use(authenticated, adminOnly)
			r.Get("/", h.Logs.List)
			r.Get("/stats", h.Logs.Stats)
			r.Get("/{id}", h.Logs.Get)
		})
	})

	return r
}

func health(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				log.Error().Err(err).Msg("health check failed")
				http.Error(w, "UNAVAILABLE", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	}
}
