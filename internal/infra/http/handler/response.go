package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// errInvalidPayload is returned by decode for bodies that are not JSON.
var errInvalidPayload = errors.New("invalid JSON payload")

// decode reads the JSON body into dst and validates it. The returned map
// holds per-field messages for validation failures.
func decode(r *http.Request, dst any) (map[string]string, error) {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return nil, errInvalidPayload
	}
	if err := validate.Struct(dst); err != nil {
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) {
			return nil, err
		}
		fields := make(map[string]string, len(vErrs))
		for _, fe := range vErrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		return fields, err
	}
	return nil, nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "This field is required"
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "min", "gte":
		return "Must be at least " + fe.Param()
	case "max", "lte":
		return "Must be at most " + fe.Param()
	case "gt":
		return "Must be greater than " + fe.Param()
	case "email":
		return "Enter a valid email address"
	case "uuid":
		return "Must be a valid UUID"
	}
	return "Failed on the '" + fe.Tag() + "' rule"
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondInvalid answers a request rejected by decode.
func respondInvalid(w http.ResponseWriter, fields map[string]string, err error) {
	if fields == nil {
		respondError(w, http.StatusBadRequest, capitalize(err.Error()))
		return
	}
	respondJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "Validation failed",
		"fields": fields,
	})
}

// domainErrors maps sentinel errors to a status and a client message.
var domainErrors = []struct {
	err     error
	status  int
	message string
}{
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrWalletNotFound, http.StatusNotFound, "Wallet not found"},
	{domain.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{domain.ErrDispenserNotFound, http.StatusNotFound, "Dispenser not found"},
	{domain.ErrRowNotFound, http.StatusNotFound, "Product not found in specified dispenser row"},
	{domain.ErrTransactionNotFound, http.StatusNotFound, "Transaction not found"},
	{domain.ErrLogNotFound, http.StatusNotFound, "Log entry not found"},
	{domain.ErrProductInactive, http.StatusNotFound, "Product not found or inactive"},
	{domain.ErrOutOfStock, http.StatusBadRequest, "Product out of stock"},
	{domain.ErrInsufficientCredits, http.StatusBadRequest, "Insufficient credits"},
	{domain.ErrInvalidAmount, http.StatusBadRequest, "Amount must be a positive integer"},
	{domain.ErrInvalidRowNumber, http.StatusBadRequest, "Row number must be between 1 and 4"},
	{domain.ErrInvalidInventory, http.StatusBadRequest, "Current inventory must be between 0 and max capacity"},
	{domain.ErrInvalidCapacity, http.StatusBadRequest, "Max capacity is out of range"},
	{domain.ErrPasswordTooLong, http.StatusBadRequest, "Password must be at most 72 bytes"},
	{usecase.ErrInvalidDuration, http.StatusBadRequest, "Duration must be between 1 and 365 days"},
	{domain.ErrConflict, http.StatusBadRequest, "A resource with these unique fields already exists"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{domain.ErrAccountDeactivated, http.StatusUnauthorized, "Account is deactivated"},
	{domain.ErrInvalidToken, http.StatusUnauthorized, "Invalid or expired token"},
	{domain.ErrForbidden, http.StatusForbidden, "You do not have permission to perform this action"},
	{domain.ErrTransactionFailed, http.StatusInternalServerError, "Transaction processing failed"},
}

// respondDomainError translates err with errors.Is; anything unknown is a 500.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, de := range domainErrors {
		if errors.Is(err, de.err) {
			if de.status >= http.StatusInternalServerError {
				log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
			}
			respondError(w, de.status, de.message)
			return
		}
	}
	log.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected error")
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

// requestMeta captures the request fields copied into audit entries.
func requestMeta(r *http.Request) usecase.RequestMeta {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return usecase.RequestMeta{
		ClientIP:  ip,
		UserAgent: r.UserAgent(),
		Method:    r.Method,
		URL:       r.URL.String(),
	}
}

func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

type pageParams struct {
	Page     int
	PageSize int
}

func (p pageParams) toPage() domain.Page {
	return domain.Page{Limit: p.PageSize, Offset: (p.Page - 1) * p.PageSize}
}

// parsePage reads ?page and ?page_size. Bad values fall back to defaults.
func parsePage(r *http.Request) pageParams {
	p := pageParams{Page: 1, PageSize: defaultPageSize}
	q := r.URL.Query()
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(q.Get("page_size")); err == nil && n > 0 {
		p.PageSize = min(n, maxPageSize)
	}
	// Keep the offset within what the storage layers accept.
	p.Page = min(p.Page, math.MaxInt32/p.PageSize)
	return p
}

type pageResponse[T any] struct {
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Results  []T   `json:"results"`
}

func newPage[S any, T any](items []S, total int64, p pageParams, convert func(S) T) pageResponse[T] {
	results := make([]T, 0, len(items))
	for _, item := range items {
		results = append(results, convert(item))
	}
	return pageResponse[T]{Count: total, Page: p.Page, PageSize: p.PageSize, Results: results}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
