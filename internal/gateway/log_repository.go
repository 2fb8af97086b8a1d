package gateway

import (
	"context"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/google/uuid"
)

// LogRepository stores the business audit trail.
type LogRepository interface {
	Create(ctx context.Context, entry *domain.LogEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LogEntry, error)
	List(ctx context.Context, filter domain.LogFilter, page domain.Page) ([]domain.LogEntry, int64, error)
	// Stats aggregates every entry; "recent" counters start at since.
	Stats(ctx context.Context, since time.Time) (*domain.LogStats, error)

	WithTx(tx TransactionObject) LogRepository
}
