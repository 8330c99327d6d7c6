package models

import "time"

// StatusCount is an item count grouped by status.
type StatusCount struct {
	Status ItemStatus `db:"status" json:"status"`
	Count  int        `db:"count" json:"count"`
}

// LocationCount is an item count grouped by campus location.
type LocationCount struct {
	Location string `db:"location_name" json:"location"`
	Count    int    `db:"count" json:"count"`
}

// RoleCount is a user count grouped by role.
type RoleCount struct {
	Role  UserRole `db:"role" json:"role"`
	Count int      `db:"count" json:"count"`
}

// TrendPoint is one day of the trailing item-creation histogram.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DailyCount is a repository row for per-day creation counts.
type DailyCount struct {
	Day   time.Time `db:"day"`
	Count int       `db:"count"`
}

// AnalyticsSnapshot aggregates store state as of GeneratedAt. Recomputed on
// every call; never cached.
type AnalyticsSnapshot struct {
	TotalItems   int             `json:"totalItems"`
	ByStatus     []StatusCount   `json:"byStatus"`
	ByLocation   []LocationCount `json:"byLocation"`
	UsersByRole  []RoleCount     `json:"usersByRole"`
	WeeklyTrends []TrendPoint    `json:"weeklyTrends"`
	GeneratedAt  time.Time       `json:"generatedAt"`
}
