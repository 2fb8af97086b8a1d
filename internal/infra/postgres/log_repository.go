package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/postgres/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LogRepository struct {
	queries *db.Queries
}

func NewLogRepository(pool *pgxpool.Pool) *LogRepository {
	return &LogRepository{
		queries: db.New(pool),
	}
}

func (r *LogRepository) Create(ctx context.Context, entry *domain.LogEntry) error {
	requestBody, err := marshalJSON(entry.RequestBody)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	responseBody, err := marshalJSON(entry.ResponseBody)
	if err != nil {
		return fmt.Errorf("failed to encode response body: %w", err)
	}
	metadata, err := marshalJSON(entry.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	var status pgtype.Int4
	if entry.ResponseStatus != nil {
		status = pgtype.Int4{Int32: int32(*entry.ResponseStatus), Valid: true}
	}

	id, err := r.queries.CreateLog(ctx, db.CreateLogParams{
		Level:          string(entry.Level),
		Action:         entry.Action,
		Description:    entry.Description,
		UserID:         nullUUID(entry.UserID),
		AdminID:        nullUUID(entry.AdminID),
		IpAddress:      entry.IPAddress,
		UserAgent:      entry.UserAgent,
		RequestMethod:  entry.RequestMethod,
		RequestUrl:     entry.RequestURL,
		RequestBody:    requestBody,
		ResponseStatus: status,
		ResponseBody:   responseBody,
		ErrorMessage:   entry.ErrorMessage,
		ErrorStack:     entry.ErrorStack,
		Metadata:       metadata,
		CreatedAt:      timestamptz(entry.Timestamp),
	})
	if err != nil {
		return fmt.Errorf("failed to create log entry: %w", err)
	}
	entry.ID = id
	return nil
}

func (r *LogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LogEntry, error) {
	row, err := r.queries.GetLog(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLogNotFound
		}
		return nil, fmt.Errorf("failed to get log entry: %w", err)
	}
	entry := toDomainLog(row)
	return &entry, nil
}

func (r *LogRepository) List(ctx context.Context, filter domain.LogFilter, page domain.Page) ([]domain.LogEntry, int64, error) {
	limit, offset := limitOffset(page)
	level := optionalText(string(filter.Level))
	action := optionalText(filter.Action)
	userID := nullUUID(filter.UserID)
	start := nullableTimestamptz(filter.StartDate)
	end := nullableTimestamptz(filter.EndDate)

	rows, err := r.queries.ListLogs(ctx, db.ListLogsParams{
		Level:     level,
		Action:    action,
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		RowLimit:  limit,
		RowOffset: offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list logs: %w", err)
	}
	total, err := r.queries.CountLogs(ctx, db.CountLogsParams{
		Level:     level,
		Action:    action,
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count logs: %w", err)
	}

	entries := make([]domain.LogEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, toDomainLog(row))
	}
	return entries, total, nil
}

func (r *LogRepository) Stats(ctx context.Context, since time.Time) (*domain.LogStats, error) {
	levels, err := r.queries.CountLogsByLevel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count logs by level: %w", err)
	}
	actions, err := r.queries.TopLogActions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count top actions: %w", err)
	}
	totals, err := r.queries.LogTotals(ctx, timestamptz(since))
	if err != nil {
		return nil, fmt.Errorf("failed to count logs: %w", err)
	}

	stats := &domain.LogStats{
		Levels:        make([]domain.LevelCount, 0, len(levels)),
		TopActions:    make([]domain.ActionCount, 0, len(actions)),
		TotalLogs:     totals.Total,
		Last24h:       totals.Recent,
		ErrorsLast24h: totals.RecentErrors,
	}
	for _, l := range levels {
		stats.Levels = append(stats.Levels, domain.LevelCount{Level: domain.LogLevel(l.Level), Count: l.Count})
	}
	for _, a := range actions {
		stats.TopActions = append(stats.TopActions, domain.ActionCount{Action: a.Action, Count: a.Count})
	}
	return stats, nil
}

func (r *LogRepository) WithTx(tx gateway.TransactionObject) gateway.LogRepository {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &LogRepository{
		queries: r.queries.WithTx(pgTx),
	}
}

func toDomainLog(l db.Log) domain.LogEntry {
	entry := domain.LogEntry{
		ID:            l.ID,
		Level:         domain.LogLevel(l.Level),
		Action:        l.Action,
		Description:   l.Description,
		UserID:        uuidPtr(l.UserID),
		AdminID:       uuidPtr(l.AdminID),
		IPAddress:     l.IpAddress,
		UserAgent:     l.UserAgent,
		RequestMethod: l.RequestMethod,
		RequestURL:    l.RequestUrl,
		RequestBody:   unmarshalJSON(l.RequestBody),
		ResponseBody:  unmarshalJSON(l.ResponseBody),
		ErrorMessage:  l.ErrorMessage,
		ErrorStack:    l.ErrorStack,
		Metadata:      unmarshalJSON(l.Metadata),
		Timestamp:     l.CreatedAt.Time,
	}
	if l.ResponseStatus.Valid {
		status := int(l.ResponseStatus.Int32)
		entry.ResponseStatus = &status
	}
	return entry
}
