package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/huskytracks/huskytracks-api/internal/models"
	appErrors "github.com/huskytracks/huskytracks-api/pkg/errors"
)

type itemRepository interface {
	Create(ctx context.Context, item *models.LostItem) error
	FindByID(ctx context.Context, id string) (*models.LostItem, error)
	ListBySubmitter(ctx context.Context, email string) ([]models.LostItem, error)
	ListAll(ctx context.Context) ([]models.LostItem, error)
	UpdateStatus(ctx context.Context, id string, status models.ItemStatus) (*models.LostItem, error)
}

type auditWriter interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// SubmitReportRequest is the payload for a new lost-item report. ImageURL is
// filled in by the upload pipeline before the service sees the request; when
// empty the default placeholder reference is attached.
type SubmitReportRequest struct {
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description" validate:"required"`
	Category     string    `json:"category"`
	LocationName string    `json:"locationName"`
	Coordinates  []float64 `json:"coordinates"`
	SubmittedBy  string    `json:"submittedBy" validate:"required,email"`
	ImageURL     string    `json:"-"`
}

// ItemService owns report creation, query scoping, and status mutation.
type ItemService struct {
	repo            itemRepository
	audit           auditWriter
	validator       *validator.Validate
	logger          *zap.Logger
	defaultImageURL string
}

// NewItemService creates an ItemService.
func NewItemService(repo itemRepository, audit auditWriter, validate *validator.Validate, logger *zap.Logger, defaultImageURL string) *ItemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ItemService{repo: repo, audit: audit, validator: validate, logger: logger, defaultImageURL: defaultImageURL}
}

// SubmitReport validates and persists a new report. Status is forced to
// Pending no matter what the client supplied.
func (s *ItemService) SubmitReport(ctx context.Context, req SubmitReportRequest) (*models.LostItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title, description, and submitter email are required")
	}

	item := &models.LostItem{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		LocationName: req.LocationName,
		ImageURL:     req.ImageURL,
		Status:       models.StatusPending,
		SubmittedBy:  req.SubmittedBy,
	}

	if len(req.Coordinates) > 0 {
		if err := models.ValidateCoordinates(req.Coordinates); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
		}
		lng, lat := req.Coordinates[0], req.Coordinates[1]
		item.Longitude = &lng
		item.Latitude = &lat
		if item.LocationName == "" {
			item.LocationName = models.NearestCampusLocation(lng, lat).Name
		}
	}

	if item.LocationName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "a campus location or coordinate pair is required")
	}

	if item.ImageURL == "" {
		item.ImageURL = s.defaultImageURL
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create lost item")
	}

	return item, nil
}

// ListForSubmitter scopes the student dashboard to the reporter's own items.
func (s *ItemService) ListForSubmitter(ctx context.Context, email string) ([]models.LostItem, error) {
	if email == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email is required")
	}
	items, err := s.repo.ListBySubmitter(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lost items")
	}
	return items, nil
}

// ListForLocation returns every report annotated with whether it sits in the
// supervisor's assigned location. Supervisors keep visibility into the whole
// campus while seeing which items are theirs to triage.
func (s *ItemService) ListForLocation(ctx context.Context, location string) ([]models.LostItem, error) {
	if location == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "location is required")
	}
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lost items")
	}
	for i := range items {
		inLocation := items[i].LocationName == location
		items[i].IsInSupervisorLocation = &inLocation
	}
	return items, nil
}

// ListAll returns all reports, newest first (admin oversight).
func (s *ItemService) ListAll(ctx context.Context) ([]models.LostItem, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lost items")
	}
	return items, nil
}

// UpdateStatus applies one lifecycle step. Unknown statuses and illegal
// transitions are rejected before anything is written; Returned and
// Transferred to NUPD are terminal.
func (s *ItemService) UpdateStatus(ctx context.Context, id string, status models.ItemStatus, actorID string, meta models.LoginRequest) (*models.LostItem, error) {
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid status %q", status))
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "item not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lost item")
	}

	if !models.CanTransition(current.Status, status) {
		if current.Status.Terminal() {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("item is already %s and can no longer change", current.Status))
		}
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("cannot move item from %s to %s", current.Status, status))
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "item not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update lost item status")
	}

	if s.audit != nil {
		oldPayload, _ := json.Marshal(map[string]interface{}{"status": current.Status})
		newPayload, _ := json.Marshal(map[string]interface{}{"status": updated.Status})
		if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
			UserID:     &actorID,
			Action:     models.AuditActionItemStatus,
			Resource:   "lost_items",
			ResourceID: &updated.ID,
			OldValues:  oldPayload,
			NewValues:  newPayload,
			IPAddress:  meta.IP,
			UserAgent:  meta.UserAgent,
		}); err != nil {
			s.logger.Warn("failed to record item status audit log", zap.Error(err))
		}
	}

	return updated, nil
}
