package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/thehatchggs/site-api/internal/domain"
	apperrors "github.com/thehatchggs/site-api/pkg/util/errorutil"
)

type fakeAnalyticsRepo struct {
	inserted  []domain.AnalyticsEvent
	insertErr error
}

func (r *fakeAnalyticsRepo) Insert(_ context.Context, event *domain.AnalyticsEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, *event)
	return nil
}

func (r *fakeAnalyticsRepo) CountByTypeSince(_ context.Context, _ string, _ time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeAnalyticsRepo) DistinctVisitorsSince(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeAnalyticsRepo) DistinctSessionsSince(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func TestRecord_MissingTypeOrPathRejected(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := NewAnalyticsService(repo, zap.NewNop())

	err := svc.Record(context.Background(), &domain.AnalyticsEvent{Path: "/"})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	err = svc.Record(context.Background(), &domain.AnalyticsEvent{Type: "pageview", Path: "  "})
	require.ErrorAs(t, err, &domainErr)

	assert.Empty(t, repo.inserted)
}

func TestRecord_PersistsWithDefaults(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := NewAnalyticsService(repo, zap.NewNop())

	err := svc.Record(context.Background(), &domain.AnalyticsEvent{Type: "pageview", Path: "/merch"})
	require.NoError(t, err)

	require.Len(t, repo.inserted, 1)
	assert.Equal(t, "unknown", repo.inserted[0].VisitorID)
	assert.Equal(t, "unknown", repo.inserted[0].DeviceType)
}

func TestRecord_InsertFailureSwallowed(t *testing.T) {
	repo := &fakeAnalyticsRepo{insertErr: errors.New("connection reset")}
	svc := NewAnalyticsService(repo, zap.NewNop())

	err := svc.Record(context.Background(), &domain.AnalyticsEvent{Type: "pageview", Path: "/"})
	assert.NoError(t, err)
}
