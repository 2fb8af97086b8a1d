package usecase

import (
	"context"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/google/uuid"
)

const statsWindow = 24 * time.Hour

type AuditLogUseCase struct {
	logRepository gateway.LogRepository
}

func NewAuditLog(logRepo gateway.LogRepository) *AuditLogUseCase {
	return &AuditLogUseCase{logRepository: logRepo}
}

func (u *AuditLogUseCase) List(ctx context.Context, filter domain.LogFilter, page domain.Page) ([]domain.LogEntry, int64, error) {
	return u.logRepository.List(ctx, filter, page)
}

func (u *AuditLogUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.LogEntry, error) {
	return u.logRepository.GetByID(ctx, id)
}

// Stats reports level and action counters plus the last 24h activity.
func (u *AuditLogUseCase) Stats(ctx context.Context) (*domain.LogStats, error) {
	return u.logRepository.Stats(ctx, time.Now().UTC().Add(-statsWindow))
}
