package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/rs/zerolog/log"
)

const (
	IdempotencyHeader    = "Idempotency-Key"
	IdempotencyHitHeader = "X-Idempotency-Hit"
	IdempotencyTTL       = 24 * time.Hour
	// inFlightTTL bounds how long a crashed request can hold its key.
	inFlightTTL = time.Minute
)

// responseRecorder copies everything the handler writes.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a request repeats its
// Idempotency-Key, and answers 409 while the first request is still running.
// Keys are scoped to the authenticated user, so it must run after
// Authenticate. Store failures let the request through.
func Idempotency(store gateway.IdempotencyRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			if user := UserFromContext(ctx); user != nil {
				key = user.ID.String() + ":" + key
			}
			key = r.Method + ":" + r.URL.Path + ":" + key

			cached, err := store.Get(ctx, key)
			if err != nil {
				log.Error().Err(err).Msg("failed to read idempotency key")
				next.ServeHTTP(w, r)
				return
			}

			if cached != nil {
				replay(w, key, cached)
				return
			}

			acquired, err := store.Lock(ctx, key, inFlightTTL)
			if err != nil {
				log.Error().Err(err).Msg("failed to lock idempotency key")
				next.ServeHTTP(w, r)
				return
			}
			if !acquired {
				writeError(w, http.StatusConflict, "A request with this Idempotency-Key is already being processed")
				return
			}
			defer func() {
				if err := store.Unlock(context.WithoutCancel(ctx), key); err != nil {
					log.Error().Err(err).Msg("failed to unlock idempotency key")
				}
			}()

			// A request holding the lock may have finished between Get and Lock.
			cached, err = store.Get(ctx, key)
			if err != nil {
				log.Error().Err(err).Msg("failed to read idempotency key")
			}
			if cached != nil {
				replay(w, key, cached)
				return
			}

			recorder := &responseRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				body:           &bytes.Buffer{},
			}

			next.ServeHTTP(recorder, r)

			// 5xx stays uncached so the client can retry.
			if recorder.statusCode < http.StatusInternalServerError {
				err := store.Save(context.WithoutCancel(ctx), key, gateway.CachedResponse{
					StatusCode: recorder.statusCode,
					Body:       recorder.body.Bytes(),
					Headers:    map[string][]string{"Content-Type": {recorder.Header().Get("Content-Type")}},
				}, IdempotencyTTL)
				if err != nil {
					log.Error().Err(err).Msg("failed to save idempotency key")
				}
			}
		})
	}
}

func replay(w http.ResponseWriter, key string, cached *gateway.CachedResponse) {
	log.Info().Str("key", key).Msg("idempotency cache hit")
	for name, values := range cached.Headers {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.Header().Set(IdempotencyHitHeader, "true")
	w.WriteHeader(cached.StatusCode)
	if _, err := w.Write(cached.Body); err != nil {
		log.Error().Err(err).Msg("failed to write cached response")
	}
}
