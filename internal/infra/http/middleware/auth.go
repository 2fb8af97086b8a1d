package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/rs/zerolog/log"
)

type contextKey string

const userKey contextKey = "user"

const (
	msgNotAuthenticated = "Authentication credentials were not provided"
	msgInvalidToken     = "Invalid or expired token"
	msgDeactivated      = "Account is deactivated"
	msgForbidden        = "You do not have permission to perform this action"
)

// UserFromContext returns the authenticated user, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userKey).(*domain.User)
	return user
}

// WithUser stores user in ctx the same way Authenticate does.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// Authenticate requires a valid "Authorization: Bearer" token of an active user.
func Authenticate(tokens gateway.TokenIssuer, users gateway.UserRepository) func(http.Handler) http.Handler {
	return authenticate(tokens, users, true)
}

// OptionalAuthenticate identifies the caller when a token is sent and lets
// anonymous requests through. A bad token is still rejected.
func OptionalAuthenticate(tokens gateway.TokenIssuer, users gateway.UserRepository) func(http.Handler) http.Handler {
	return authenticate(tokens, users, false)
}

func authenticate(tokens gateway.TokenIssuer, users gateway.UserRepository, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				if required {
					writeError(w, http.StatusUnauthorized, msgNotAuthenticated)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				writeError(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			userID, err := tokens.Parse(raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					writeError(w, http.StatusUnauthorized, msgInvalidToken)
					return
				}
				log.Error().Err(err).Msg("failed to load authenticated user")
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if !user.IsActive {
				writeError(w, http.StatusUnauthorized, msgDeactivated)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireUserType lets through authenticated users of the given types.
func RequireUserType(types ...domain.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				writeError(w, http.StatusUnauthorized, msgNotAuthenticated)
				return
			}
			if !slices.Contains(types, user.UserType) {
				writeError(w, http.StatusForbidden, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		log.Error().Err(err).Msg("failed to encode error response")
	}
}
