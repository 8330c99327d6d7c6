package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/huskytracks/huskytracks-api/internal/models"
	appErrors "github.com/huskytracks/huskytracks-api/pkg/errors"
	"github.com/huskytracks/huskytracks-api/pkg/export"
)

const trendWindowDays = 7

// AnalyticsRepository describes the persistence layer behind the snapshot.
type AnalyticsRepository interface {
	TotalItems(ctx context.Context) (int, error)
	ItemsByStatus(ctx context.Context) ([]models.StatusCount, error)
	ItemsByLocation(ctx context.Context) ([]models.LocationCount, error)
	UsersByRole(ctx context.Context) ([]models.RoleCount, error)
	DailyItemCounts(ctx context.Context, since time.Time) ([]models.DailyCount, error)
}

// AnalyticsService computes the admin dashboard snapshot. Every call
// recomputes from current store state; there is deliberately no cache.
type AnalyticsService struct {
	repo    AnalyticsRepository
	metrics *MetricsService
	logger  *zap.Logger
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	now     func() time.Time
}

// NewAnalyticsService constructs an analytics service.
func NewAnalyticsService(repo AnalyticsRepository, metrics *MetricsService, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Snapshot aggregates current store state. The weekly trend generates the
// full 7-day date sequence first and then fills counts, so days with zero
// submissions are always present.
func (s *AnalyticsService) Snapshot(ctx context.Context) (*models.AnalyticsSnapshot, error) {
	start := time.Now()

	total, err := s.repo.TotalItems(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count items")
	}

	byStatus, err := s.repo.ItemsByStatus(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to group items by status")
	}

	byLocation, err := s.repo.ItemsByLocation(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to group items by location")
	}

	usersByRole, err := s.repo.UsersByRole(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to group users by role")
	}

	today := s.now().Truncate(24 * time.Hour)
	windowStart := today.AddDate(0, 0, -(trendWindowDays - 1))

	daily, err := s.repo.DailyItemCounts(ctx, windowStart)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load daily item counts")
	}

	countsByDay := make(map[string]int, len(daily))
	for _, row := range daily {
		countsByDay[row.Day.Format("2006-01-02")] = row.Count
	}

	trends := make([]models.TrendPoint, 0, trendWindowDays)
	for i := 0; i < trendWindowDays; i++ {
		date := windowStart.AddDate(0, 0, i).Format("2006-01-02")
		trends = append(trends, models.TrendPoint{Date: date, Count: countsByDay[date]})
	}

	if s.metrics != nil {
		s.metrics.ObserveDBQuery("analytics_snapshot", time.Since(start))
	}

	return &models.AnalyticsSnapshot{
		TotalItems:   total,
		ByStatus:     byStatus,
		ByLocation:   byLocation,
		UsersByRole:  usersByRole,
		WeeklyTrends: trends,
		GeneratedAt:  s.now(),
	}, nil
}

// Export renders the snapshot as a CSV or PDF attachment.
func (s *AnalyticsService) Export(ctx context.Context, format string) ([]byte, string, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, "", err
	}

	switch format {
	case "csv":
		data, err := s.csv.Render(snapshotDataset(snapshot))
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return data, "text/csv", nil
	case "pdf":
		data, err := s.pdf.RenderSections(snapshotSections(snapshot), "HuskyTracks Analytics")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return data, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func snapshotDataset(snapshot *models.AnalyticsSnapshot) export.Dataset {
	rows := []map[string]string{
		{"metric": "total_items", "label": "", "count": strconv.Itoa(snapshot.TotalItems)},
	}
	for _, c := range snapshot.ByStatus {
		rows = append(rows, map[string]string{"metric": "items_by_status", "label": string(c.Status), "count": strconv.Itoa(c.Count)})
	}
	for _, c := range snapshot.ByLocation {
		rows = append(rows, map[string]string{"metric": "items_by_location", "label": c.Location, "count": strconv.Itoa(c.Count)})
	}
	for _, c := range snapshot.UsersByRole {
		rows = append(rows, map[string]string{"metric": "users_by_role", "label": string(c.Role), "count": strconv.Itoa(c.Count)})
	}
	for _, p := range snapshot.WeeklyTrends {
		rows = append(rows, map[string]string{"metric": "weekly_trend", "label": p.Date, "count": strconv.Itoa(p.Count)})
	}
	return export.Dataset{Headers: []string{"metric", "label", "count"}, Rows: rows}
}

func snapshotSections(snapshot *models.AnalyticsSnapshot) []export.Section {
	statusRows := make([]map[string]string, 0, len(snapshot.ByStatus))
	for _, c := range snapshot.ByStatus {
		statusRows = append(statusRows, map[string]string{"Status": string(c.Status), "Count": strconv.Itoa(c.Count)})
	}
	locationRows := make([]map[string]string, 0, len(snapshot.ByLocation))
	for _, c := range snapshot.ByLocation {
		locationRows = append(locationRows, map[string]string{"Location": c.Location, "Count": strconv.Itoa(c.Count)})
	}
	roleRows := make([]map[string]string, 0, len(snapshot.UsersByRole))
	for _, c := range snapshot.UsersByRole {
		roleRows = append(roleRows, map[string]string{"Role": string(c.Role), "Count": strconv.Itoa(c.Count)})
	}
	trendRows := make([]map[string]string, 0, len(snapshot.WeeklyTrends))
	for _, p := range snapshot.WeeklyTrends {
		trendRows = append(trendRows, map[string]string{"Date": p.Date, "Count": strconv.Itoa(p.Count)})
	}

	return []export.Section{
		{Title: "Totals", Data: export.Dataset{
			Headers: []string{"Metric", "Count"},
			Rows:    []map[string]string{{"Metric": "Total items", "Count": strconv.Itoa(snapshot.TotalItems)}},
		}},
		{Title: "Items by status", Data: export.Dataset{Headers: []string{"Status", "Count"}, Rows: statusRows}},
		{Title: "Items by location", Data: export.Dataset{Headers: []string{"Location", "Count"}, Rows: locationRows}},
		{Title: "Users by role", Data: export.Dataset{Headers: []string{"Role", "Count"}, Rows: roleRows}},
		{Title: "Weekly trend", Data: export.Dataset{Headers: []string{"Date", "Count"}, Rows: trendRows}},
	}
}
