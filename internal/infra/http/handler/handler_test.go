package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		query string
		want  pageParams
		limit domain.Page
	}{
		{"", pageParams{Page: 1, PageSize: 20}, domain.Page{Limit: 20, Offset: 0}},
		{"?page=3&page_size=5", pageParams{Page: 3, PageSize: 5}, domain.Page{Limit: 5, Offset: 10}},
		{"?page=0&page_size=-2", pageParams{Page: 1, PageSize: 20}, domain.Page{Limit: 20, Offset: 0}},
		{"?page=x&page_size=1000", pageParams{Page: 1, PageSize: maxPageSize}, domain.Page{Limit: maxPageSize, Offset: 0}},
		{"?page=100000000000000000&page_size=100", pageParams{Page: 21474836, PageSize: 100}, domain.Page{Limit: 100, Offset: 2147483500}},
		{"?page=9223372036854775807", pageParams{Page: 107374182, PageSize: 20}, domain.Page{Limit: 20, Offset: 2147483620}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := parsePage(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.limit, got.toPage())
		})
	}
}

func TestParseLogFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/?level=error&action=TRANSACTION_ERROR&user_id=6f1c1f3e-8a4f-4a7b-9a57-3c0f1d9c2b11&start_date=2024-05-01T10:00:00Z&end_date=2024-05-02", nil)

	filter, err := parseLogFilter(req)
	require.NoError(t, err)
	assert.Equal(t, domain.LevelError, filter.Level)
	assert.Equal(t, "TRANSACTION_ERROR", filter.Action)
	require.NotNil(t, filter.UserID)
	assert.Equal(t, "6f1c1f3e-8a4f-4a7b-9a57-3c0f1d9c2b11", filter.UserID.String())
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), *filter.StartDate)
	assert.Equal(t, time.Date(2024, 5, 2, 23, 59, 59, 999999999, time.UTC), *filter.EndDate)

	for _, q := range []string{"?level=loud", "?user_id=42", "?start_date=yesterday", "?end_date=2024-13-01"} {
		_, err := parseLogFilter(httptest.NewRequest(http.MethodGet, "/"+q, nil))
		assert.Error(t, err, q)
	}
}

func TestDecode(t *testing.T) {
	t.Run("field errors use json names", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone_number":"","password":"short","account_type":"alien"}`))
		var dst RegisterRequest
		fields, err := decode(req, &dst)
		require.Error(t, err)
		assert.Equal(t, map[string]string{
			"phone_number": "This field is required",
			"password":     "Must be at least 8",
			"account_type": "Must be one of: individual corporate",
		}, fields)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		var dst RegisterRequest
		fields, err := decode(req, &dst)
		assert.Nil(t, fields)
		assert.ErrorIs(t, err, errInvalidPayload)
	})

	t.Run("password longer than bcrypt accepts", func(t *testing.T) {
		body := `{"phone_number":"+100","password":"` + strings.Repeat("p", 80) + `"}`
		var dst RegisterRequest
		fields, err := decode(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), &dst)
		require.Error(t, err)
		assert.Equal(t, map[string]string{"password": "Must be at most 72"}, fields)
	})

	t.Run("row counters must fit storage", func(t *testing.T) {
		body := `{"row_number":1,"max_capacity":5000000000,"current_inventory":5000000000}`
		var dst AddProductRequest
		fields, err := decode(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), &dst)
		require.Error(t, err)
		assert.Equal(t, map[string]string{
			"max_capacity":      "Must be at most 2147483647",
			"current_inventory": "Must be at most 2147483647",
		}, fields)
	})

	t.Run("row number is checked by the use case", func(t *testing.T) {
		var dst AddProductRequest
		fields, err := decode(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"row_number":0}`)), &dst)
		assert.NoError(t, err)
		assert.Nil(t, fields)
	})

	t.Run("login needs phone or email", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","password":"x"}`))
		var dst LoginRequest
		_, err := decode(req, &dst)
		assert.NoError(t, err)
	})
}

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrOutOfStock, http.StatusBadRequest},
		{domain.ErrProductInactive, http.StatusNotFound},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrPasswordTooLong, http.StatusBadRequest},
		{domain.ErrInvalidCapacity, http.StatusBadRequest},
		{domain.ErrTransactionFailed, http.StatusInternalServerError},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondDomainError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
