package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/huskytracks/huskytracks-api/internal/models"
)

// AnalyticsRepository exposes the aggregate queries behind the admin
// dashboard. Every call hits the live tables; nothing is materialized.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository instantiates the repository.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// TotalItems returns the overall lost-item count.
func (r *AnalyticsRepository) TotalItems(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM lost_items`
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count lost items: %w", err)
	}
	return total, nil
}

// ItemsByStatus returns item counts grouped by status.
func (r *AnalyticsRepository) ItemsByStatus(ctx context.Context) ([]models.StatusCount, error) {
	const query = `SELECT status, COUNT(*) AS count FROM lost_items GROUP BY status ORDER BY status`
	var counts []models.StatusCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("group items by status: %w", err)
	}
	return counts, nil
}

// ItemsByLocation returns item counts grouped by campus location.
func (r *AnalyticsRepository) ItemsByLocation(ctx context.Context) ([]models.LocationCount, error) {
	const query = `SELECT location_name, COUNT(*) AS count FROM lost_items GROUP BY location_name ORDER BY count DESC`
	var counts []models.LocationCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("group items by location: %w", err)
	}
	return counts, nil
}

// UsersByRole returns user counts grouped by role.
func (r *AnalyticsRepository) UsersByRole(ctx context.Context) ([]models.RoleCount, error) {
	const query = `SELECT role, COUNT(*) AS count FROM users GROUP BY role ORDER BY role`
	var counts []models.RoleCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("group users by role: %w", err)
	}
	return counts, nil
}

// DailyItemCounts returns per-day creation counts since the given instant.
// Days with zero items produce no row; the service fills the gaps.
func (r *AnalyticsRepository) DailyItemCounts(ctx context.Context, since time.Time) ([]models.DailyCount, error) {
	const query = `SELECT DATE(created_at) AS day, COUNT(*) AS count FROM lost_items WHERE created_at >= $1 GROUP BY DATE(created_at) ORDER BY day ASC`
	var counts []models.DailyCount
	if err := r.db.SelectContext(ctx, &counts, query, since); err != nil {
		return nil, fmt.Errorf("daily item counts: %w", err)
	}
	return counts, nil
}
