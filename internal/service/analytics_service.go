package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/thehatchggs/site-api/internal/domain"
	"github.com/thehatchggs/site-api/internal/repository"
	apperrors "github.com/thehatchggs/site-api/pkg/util/errorutil"
)

const defaultSummaryRangeDays = 30

// AnalyticsService records best-effort telemetry and computes the admin
// summary report.
type AnalyticsService struct {
	events repository.AnalyticsRepository
	logger *zap.Logger
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(events repository.AnalyticsRepository, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{events: events, logger: logger}
}

// Record validates and persists one event. Only validation failures
// surface to the caller; a failed insert is logged and swallowed so
// telemetry never fails the ingest request.
func (s *AnalyticsService) Record(ctx context.Context, event *domain.AnalyticsEvent) error {
	if strings.TrimSpace(event.Type) == "" || strings.TrimSpace(event.Path) == "" {
		return apperrors.NewValidationError("type and path required", nil)
	}
	applyEventDefaults(event)
	if err := s.events.Insert(ctx, event); err != nil {
		s.logger.Warn("analytics insert failed", zap.String("type", event.Type), zap.Error(err))
	}
	return nil
}

// RecordBestEffort persists an event and swallows any failure. Telemetry
// must never fail the primary request.
func (s *AnalyticsService) RecordBestEffort(ctx context.Context, event *domain.AnalyticsEvent) {
	applyEventDefaults(event)
	if err := s.events.Insert(ctx, event); err != nil {
		s.logger.Debug("analytics insert failed", zap.String("type", event.Type), zap.Error(err))
	}
}

// Summary aggregates the report counters over the trailing window.
func (s *AnalyticsService) Summary(ctx context.Context, rangeDays int) (*domain.AnalyticsSummary, error) {
	if rangeDays <= 0 {
		rangeDays = defaultSummaryRangeDays
	}
	since := time.Now().Add(-time.Duration(rangeDays) * 24 * time.Hour)

	summary := &domain.AnalyticsSummary{RangeDays: rangeDays}
	counters := []struct {
		eventType string
		target    *int64
	}{
		{domain.EventTypePageview, &summary.Pageviews},
		{domain.EventTypeClick, &summary.MerchClicks},
		{domain.EventTypeSupportAsk, &summary.SupportAsks},
		{domain.EventTypeTicketCreated, &summary.TicketsCreated},
		{domain.EventTypeEmailOpened, &summary.EmailsOpened},
	}
	for _, counter := range counters {
		count, err := s.events.CountByTypeSince(ctx, counter.eventType, since)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		*counter.target = count
	}

	visitors, err := s.events.DistinctVisitorsSince(ctx, since)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	summary.UniqueVisitors = visitors

	sessions, err := s.events.DistinctSessionsSince(ctx, since)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	summary.Sessions = sessions

	return summary, nil
}

// DetectDeviceType classifies a User-Agent header.
func DetectDeviceType(userAgent string) string {
	if userAgent == "" {
		return "unknown"
	}
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "mobile"), strings.Contains(ua, "iphone"), strings.Contains(ua, "android"):
		return "mobile"
	case strings.Contains(ua, "tablet"), strings.Contains(ua, "ipad"):
		return "tablet"
	default:
		return "desktop"
	}
}

func applyEventDefaults(event *domain.AnalyticsEvent) {
	if event.VisitorID == "" {
		event.VisitorID = "unknown"
	}
	if event.SessionID == "" {
		event.SessionID = "unknown"
	}
	if event.DeviceType == "" {
		event.DeviceType = "unknown"
	}
	if event.Meta == nil {
		event.Meta = map[string]any{}
	}
}
