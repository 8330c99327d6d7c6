package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huskytracks/huskytracks-api/internal/models"
)

type stubAnalyticsRepo struct {
	total      int
	byStatus   []models.StatusCount
	byLocation []models.LocationCount
	byRole     []models.RoleCount
	daily      []models.DailyCount
	since      time.Time
}

func (s *stubAnalyticsRepo) TotalItems(_ context.Context) (int, error) { return s.total, nil }

func (s *stubAnalyticsRepo) ItemsByStatus(_ context.Context) ([]models.StatusCount, error) {
	return s.byStatus, nil
}

func (s *stubAnalyticsRepo) ItemsByLocation(_ context.Context) ([]models.LocationCount, error) {
	return s.byLocation, nil
}

func (s *stubAnalyticsRepo) UsersByRole(_ context.Context) ([]models.RoleCount, error) {
	return s.byRole, nil
}

func (s *stubAnalyticsRepo) DailyItemCounts(_ context.Context, since time.Time) ([]models.DailyCount, error) {
	s.since = since
	return s.daily, nil
}

func fixedClock() time.Time {
	return time.Date(2025, 9, 1, 15, 30, 0, 0, time.UTC)
}

func newAnalyticsService(repo *stubAnalyticsRepo) *AnalyticsService {
	svc := NewAnalyticsService(repo, nil, nil)
	svc.now = fixedClock
	return svc
}

func TestSnapshotFillsSevenDayTrend(t *testing.T) {
	repo := &stubAnalyticsRepo{
		total: 12,
		daily: []models.DailyCount{
			{Day: time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC), Count: 3},
			{Day: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), Count: 5},
		},
	}
	svc := newAnalyticsService(repo)

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, snapshot.TotalItems)

	require.Len(t, snapshot.WeeklyTrends, 7)
	assert.Equal(t, "2025-08-26", snapshot.WeeklyTrends[0].Date)
	assert.Equal(t, "2025-09-01", snapshot.WeeklyTrends[6].Date)

	// Days with no submissions still appear, zero-filled.
	assert.Equal(t, 0, snapshot.WeeklyTrends[0].Count)
	assert.Equal(t, 3, snapshot.WeeklyTrends[1].Count)
	assert.Equal(t, 5, snapshot.WeeklyTrends[6].Count)

	// The window starts six days back at midnight.
	assert.Equal(t, time.Date(2025, 8, 26, 0, 0, 0, 0, time.UTC), repo.since)
}

func TestExportCSVContainsAllMetrics(t *testing.T) {
	repo := &stubAnalyticsRepo{
		total:      2,
		byStatus:   []models.StatusCount{{Status: models.StatusPending, Count: 2}},
		byLocation: []models.LocationCount{{Location: "Snell Library", Count: 2}},
		byRole:     []models.RoleCount{{Role: models.RoleStudent, Count: 3}},
	}
	svc := newAnalyticsService(repo)

	data, contentType, err := svc.Export(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	body := string(data)
	assert.True(t, strings.HasPrefix(body, "metric,label,count"))
	assert.Contains(t, body, "total_items,,2")
	assert.Contains(t, body, "items_by_status,Pending,2")
	assert.Contains(t, body, "items_by_location,Snell Library,2")
	assert.Contains(t, body, "users_by_role,student,3")
	assert.Contains(t, body, "weekly_trend,2025-08-26,0")
}

func TestExportPDFProducesDocument(t *testing.T) {
	svc := newAnalyticsService(&stubAnalyticsRepo{total: 1})

	data, contentType, err := svc.Export(context.Background(), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := newAnalyticsService(&stubAnalyticsRepo{})

	_, _, err := svc.Export(context.Background(), "xlsx")
	assert.Error(t, err)
}
