package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(m.requests.WithLabelValues("/api/products/{id}", "GET", "404")))
}

func TestObservePurchase(t *testing.T) {
	m := New()
	m.ObservePurchase("success")
	m.ObservePurchase("success")
	m.ObservePurchase("out_of_stock")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.purchases.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.purchases.WithLabelValues("out_of_stock")))
}

func TestHandler_Exposes(t *testing.T) {
	m := New()
	m.ObservePurchase("error")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `napkin_dispenser_purchases_total{outcome="error"} 1`)
}
