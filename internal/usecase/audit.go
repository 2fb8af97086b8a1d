package usecase

import (
	"context"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RequestMeta carries what the HTTP layer knows about the caller.
// It ends up in the audit trail.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Method    string
	URL       string
}

func newLogEntry(level domain.LogLevel, action, description string, meta RequestMeta) *domain.LogEntry {
	return &domain.LogEntry{
		Level:         level,
		Action:        action,
		Description:   description,
		IPAddress:     meta.ClientIP,
		UserAgent:     meta.UserAgent,
		RequestMethod: meta.Method,
		RequestURL:    meta.URL,
		Timestamp:     time.Now().UTC(),
	}
}

func userRef(id uuid.UUID) *uuid.UUID {
	return &id
}

// recordLog writes an audit entry outside of any transaction. Losing an
// audit row must never fail the request, so errors are only logged.
func recordLog(ctx context.Context, logs gateway.LogRepository, entry *domain.LogEntry) {
	if logs == nil {
		return
	}
	if err := logs.Create(ctx, entry); err != nil {
		log.Error().Err(err).Str("action", entry.Action).Msg("failed to write audit log")
	}
}
