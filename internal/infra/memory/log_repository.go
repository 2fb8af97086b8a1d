package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/google/uuid"
)

const topActions = 10

type LogRepository struct {
	store *Store
}

func NewLogRepository(store *Store) *LogRepository {
	return &LogRepository{store: store}
}

func (r *LogRepository) Create(_ context.Context, entry *domain.LogEntry) error {
	return r.store.write(func(d *state) error {
		entry.ID = uuid.New()
		if entry.Timestamp.IsZero() {
			entry.Timestamp = time.Now().UTC()
		}
		d.logs = append(d.logs, *entry)
		return nil
	})
}

func (r *LogRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.LogEntry, error) {
	var found *domain.LogEntry
	r.store.read(func(d *state) {
		for _, e := range d.logs {
			if e.ID == id {
				found = &e
				return
			}
		}
	})
	if found == nil {
		return nil, domain.ErrLogNotFound
	}
	return found, nil
}

func (r *LogRepository) List(_ context.Context, filter domain.LogFilter, page domain.Page) ([]domain.LogEntry, int64, error) {
	var entries []domain.LogEntry
	r.store.read(func(d *state) {
		for _, e := range d.logs {
			if matches(e, filter) {
				entries = append(entries, e)
			}
		}
	})
	slices.SortStableFunc(entries, func(a, b domain.LogEntry) int { return b.Timestamp.Compare(a.Timestamp) })
	return window(entries, page), int64(len(entries)), nil
}

func matches(e domain.LogEntry, f domain.LogFilter) bool {
	switch {
	case f.Level != "" && e.Level != f.Level:
		return false
	case f.Action != "" && e.Action != f.Action:
		return false
	case f.UserID != nil && (e.UserID == nil || *e.UserID != *f.UserID):
		return false
	case f.StartDate != nil && e.Timestamp.Before(*f.StartDate):
		return false
	case f.EndDate != nil && e.Timestamp.After(*f.EndDate):
		return false
	}
	return true
}

func (r *LogRepository) Stats(_ context.Context, since time.Time) (*domain.LogStats, error) {
	stats := &domain.LogStats{}
	levels := map[domain.LogLevel]int64{}
	actions := map[string]int64{}

	r.store.read(func(d *state) {
		stats.TotalLogs = int64(len(d.logs))
		for _, e := range d.logs {
			levels[e.Level]++
			actions[e.Action]++
			if !e.Timestamp.Before(since) {
				stats.Last24h++
				if e.Level == domain.LevelError {
					stats.ErrorsLast24h++
				}
			}
		}
	})

	for level, n := range levels {
		stats.Levels = append(stats.Levels, domain.LevelCount{Level: level, Count: n})
	}
	slices.SortFunc(stats.Levels, func(a, b domain.LevelCount) int { return cmp.Compare(a.Level, b.Level) })

	for action, n := range actions {
		stats.TopActions = append(stats.TopActions, domain.ActionCount{Action: action, Count: n})
	}
	slices.SortFunc(stats.TopActions, func(a, b domain.ActionCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Action, b.Action)
	})
	if len(stats.TopActions) > topActions {
		stats.TopActions = stats.TopActions[:topActions]
	}
	return stats, nil
}

func (r *LogRepository) WithTx(gateway.TransactionObject) gateway.LogRepository {
	return r
}
