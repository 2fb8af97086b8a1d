package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/usecase"
	"github.com/google/uuid"
)

const dateOnly = "2006-01-02"

type LogHandler struct {
	auditUC *usecase.AuditLogUseCase
}

func NewLogHandler(auditUC *usecase.AuditLogUseCase) *LogHandler {
	return &LogHandler{auditUC: auditUC}
}

func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseLogFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, capitalize(err.Error()))
		return
	}

	page := parsePage(r)
	entries, total, err := h.auditUC.List(r.Context(), filter, page.toPage())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newPage(entries, total, page, toLogResponse))
}

func (h *LogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Log entry not found")
		return
	}
	entry, err := h.auditUC.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toLogResponse(*entry))
}

type statsResponse struct {
	LevelStats  []domain.LevelCount  `json:"level_stats"`
	ActionStats []domain.ActionCount `json:"action_stats"`
	Summary     struct {
		TotalLogs     int64 `json:"total_logs"`
		Last24h       int64 `json:"last_24h"`
		ErrorsLast24h int64 `json:"errors_last_24h"`
	} `json:"summary"`
}

func (h *LogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.auditUC.Stats(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	resp := statsResponse{
		LevelStats:  nonNil(stats.Levels),
		ActionStats: nonNil(stats.TopActions),
	}
	resp.Summary.TotalLogs = stats.TotalLogs
	resp.Summary.Last24h = stats.Last24h
	resp.Summary.ErrorsLast24h = stats.ErrorsLast24h
	respondJSON(w, http.StatusOK, resp)
}

// parseLogFilter reads level, action, user_id, start_date and end_date.
// A date-only end_date includes that whole day.
func parseLogFilter(r *http.Request) (domain.LogFilter, error) {
	q := r.URL.Query()
	filter := domain.LogFilter{
		Level:  domain.LogLevel(q.Get("level")),
		Action: q.Get("action"),
	}
	if filter.Level != "" && !filter.Level.Valid() {
		return filter, fmt.Errorf("invalid level %q", filter.Level)
	}

	if raw := q.Get("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid user_id %q", raw)
		}
		filter.UserID = &id
	}

	if raw := q.Get("start_date"); raw != "" {
		t, _, err := parseDate(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid start_date %q", raw)
		}
		filter.StartDate = &t
	}

	if raw := q.Get("end_date"); raw != "" {
		t, dayOnly, err := parseDate(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid end_date %q", raw)
		}
		if dayOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		filter.EndDate = &t
	}

	return filter, nil
}

func parseDate(raw string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(dateOnly, raw)
	return t, true, err
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
