package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thehatchggs/site-api/internal/domain"
)

// AnalyticsRepository persists best-effort telemetry events.
type AnalyticsRepository interface {
	Insert(ctx context.Context, event *domain.AnalyticsEvent) error
	CountByTypeSince(ctx context.Context, eventType string, since time.Time) (int64, error)
	DistinctVisitorsSince(ctx context.Context, since time.Time) (int64, error)
	DistinctSessionsSince(ctx context.Context, since time.Time) (int64, error)
}

type analyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository instantiates repository.
func NewAnalyticsRepository(pool *pgxpool.Pool) AnalyticsRepository {
	return &analyticsRepository{pool: pool}
}

func (r *analyticsRepository) Insert(ctx context.Context, event *domain.AnalyticsEvent) error {
	if event.Meta == nil {
		event.Meta = map[string]any{}
	}
	const query = `
        INSERT INTO analytics_events (type, path, referrer, visitor_id, session_id, device_type, meta)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		event.Type,
		event.Path,
		event.Referrer,
		event.VisitorID,
		event.SessionID,
		event.DeviceType,
		event.Meta,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *analyticsRepository) CountByTypeSince(ctx context.Context, eventType string, since time.Time) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM analytics_events WHERE type=$1 AND created_at >= $2`,
		eventType, since,
	).Scan(&count)
	return count, err
}

func (r *analyticsRepository) DistinctVisitorsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT visitor_id) FROM analytics_events WHERE created_at >= $1`,
		since,
	).Scan(&count)
	return count, err
}

func (r *analyticsRepository) DistinctSessionsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT session_id) FROM analytics_events WHERE created_at >= $1`,
		since,
	).Scan(&count)
	return count, err
}
