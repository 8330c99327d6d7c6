package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/huskytracks/huskytracks-api/internal/models"
)

const itemColumns = `id, title, description, category, location_name, longitude, latitude, image_url, status, submitted_by, created_at, updated_at`

// ItemRepository provides database access for lost-item reports.
type ItemRepository struct {
	db *sqlx.DB
}

// NewItemRepository creates a new instance of ItemRepository.
func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts a new lost-item report.
func (r *ItemRepository) Create(ctx context.Context, item *models.LostItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	const query = `INSERT INTO lost_items (id, title, description, category, location_name, longitude, latitude, image_url, status, submitted_by, created_at, updated_at) VALUES (:id, :title, :description, :category, :location_name, :longitude, :latitude, :image_url, :status, :submitted_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create lost item: %w", err)
	}
	item.SyncCoordinates()
	return nil
}

// FindByID returns a lost-item report by identifier.
func (r *ItemRepository) FindByID(ctx context.Context, id string) (*models.LostItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM lost_items WHERE id = $1 LIMIT 1`, itemColumns)
	var item models.LostItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find lost item by id: %w", err)
	}
	item.SyncCoordinates()
	return &item, nil
}

// ListBySubmitter returns reports submitted by the given email, newest first.
func (r *ItemRepository) ListBySubmitter(ctx context.Context, email string) ([]models.LostItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM lost_items WHERE submitted_by = $1 ORDER BY created_at DESC`, itemColumns)
	var items []models.LostItem
	if err := r.db.SelectContext(ctx, &items, query, email); err != nil {
		return nil, fmt.Errorf("list lost items by submitter: %w", err)
	}
	syncAll(items)
	return items, nil
}

// ListAll returns every report, newest first.
func (r *ItemRepository) ListAll(ctx context.Context) ([]models.LostItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM lost_items ORDER BY created_at DESC`, itemColumns)
	var items []models.LostItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list lost items: %w", err)
	}
	syncAll(items)
	return items, nil
}

// UpdateStatus sets the status of a report and returns the updated row.
func (r *ItemRepository) UpdateStatus(ctx context.Context, id string, status models.ItemStatus) (*models.LostItem, error) {
	query := fmt.Sprintf(`UPDATE lost_items SET status = $2, updated_at = $3 WHERE id = $1 RETURNING %s`, itemColumns)
	var item models.LostItem
	if err := r.db.GetContext(ctx, &item, query, id, status, time.Now().UTC()); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update lost item status: %w", err)
	}
	item.SyncCoordinates()
	return &item, nil
}

func syncAll(items []models.LostItem) {
	for i := range items {
		items[i].SyncCoordinates()
	}
}
