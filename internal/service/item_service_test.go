package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huskytracks/huskytracks-api/internal/models"
	appErrors "github.com/huskytracks/huskytracks-api/pkg/errors"
)

type stubItemRepo struct {
	created     *models.LostItem
	findResult  *models.LostItem
	findErr     error
	listAll     []models.LostItem
	updated     *models.LostItem
	updateCalls int
}

func (s *stubItemRepo) Create(_ context.Context, item *models.LostItem) error {
	item.ID = "item-1"
	s.created = item
	return nil
}

func (s *stubItemRepo) FindByID(_ context.Context, _ string) (*models.LostItem, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.findResult, nil
}

func (s *stubItemRepo) ListBySubmitter(_ context.Context, email string) ([]models.LostItem, error) {
	var out []models.LostItem
	for _, item := range s.listAll {
		if item.SubmittedBy == email {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubItemRepo) ListAll(_ context.Context) ([]models.LostItem, error) {
	return s.listAll, nil
}

func (s *stubItemRepo) UpdateStatus(_ context.Context, id string, status models.ItemStatus) (*models.LostItem, error) {
	s.updateCalls++
	if s.updated == nil {
		return nil, sql.ErrNoRows
	}
	s.updated.Status = status
	return s.updated, nil
}

type stubAuditWriter struct {
	logs []*models.AuditLog
}

func (s *stubAuditWriter) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	s.logs = append(s.logs, log)
	return nil
}

const placeholderImage = "/uploads/defaults/default-item.png"

func newItemService(repo *stubItemRepo, audit *stubAuditWriter) *ItemService {
	return NewItemService(repo, audit, nil, nil, placeholderImage)
}

func TestSubmitReportForcesPendingStatus(t *testing.T) {
	repo := &stubItemRepo{}
	svc := newItemService(repo, &stubAuditWriter{})

	item, err := svc.SubmitReport(context.Background(), SubmitReportRequest{
		Title:        "AirPods case",
		Description:  "White, scuffed",
		LocationName: "Curry Student Center",
		SubmittedBy:  "alice@northeastern.edu",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, item.Status)
	assert.Equal(t, placeholderImage, item.ImageURL)
}

func TestSubmitReportRejectsBadCoordinates(t *testing.T) {
	svc := newItemService(&stubItemRepo{}, &stubAuditWriter{})

	cases := [][]float64{
		{-71.08},               // wrong arity
		{-181.0, 42.0},         // longitude out of range
		{-71.08, 95.0},         // latitude out of range
		{-71.08, 42.33, 12.0},  // too many elements
	}
	for _, coords := range cases {
		_, err := svc.SubmitReport(context.Background(), SubmitReportRequest{
			Title:       "Keys",
			Description: "Ring of three",
			Coordinates: coords,
			SubmittedBy: "alice@northeastern.edu",
		})
		require.Error(t, err, "coordinates %v must be rejected", coords)
		assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
	}
}

func TestSubmitReportDerivesLocationFromCoordinates(t *testing.T) {
	repo := &stubItemRepo{}
	svc := newItemService(repo, &stubAuditWriter{})

	// Coordinates sit on Snell Library.
	item, err := svc.SubmitReport(context.Background(), SubmitReportRequest{
		Title:       "Water bottle",
		Description: "Green Nalgene",
		Coordinates: []float64{-71.0882, 42.3387},
		SubmittedBy: "bob@northeastern.edu",
	})
	require.NoError(t, err)
	assert.Equal(t, "Snell Library", item.LocationName)
	require.NotNil(t, item.Longitude)
	assert.InDelta(t, -71.0882, *item.Longitude, 1e-9)
}

func TestSubmitReportRequiresSomeLocation(t *testing.T) {
	svc := newItemService(&stubItemRepo{}, &stubAuditWriter{})

	_, err := svc.SubmitReport(context.Background(), SubmitReportRequest{
		Title:       "Umbrella",
		Description: "Black, broken rib",
		SubmittedBy: "alice@northeastern.edu",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestListForSubmitterRequiresEmail(t *testing.T) {
	svc := newItemService(&stubItemRepo{}, &stubAuditWriter{})

	_, err := svc.ListForSubmitter(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestListForLocationAnnotatesEveryItem(t *testing.T) {
	repo := &stubItemRepo{listAll: []models.LostItem{
		{ID: "a", LocationName: "Snell Library"},
		{ID: "b", LocationName: "ISEC"},
	}}
	svc := newItemService(repo, &stubAuditWriter{})

	items, err := svc.ListForLocation(context.Background(), "Snell Library")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].IsInSupervisorLocation)
	assert.True(t, *items[0].IsInSupervisorLocation)
	require.NotNil(t, items[1].IsInSupervisorLocation)
	assert.False(t, *items[1].IsInSupervisorLocation)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := newItemService(&stubItemRepo{}, &stubAuditWriter{})

	_, err := svc.UpdateStatus(context.Background(), "item-1", "Lost Forever", "admin-1", models.LoginRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestUpdateStatusMissingItemIs404(t *testing.T) {
	repo := &stubItemRepo{findErr: sql.ErrNoRows}
	svc := newItemService(repo, &stubAuditWriter{})

	_, err := svc.UpdateStatus(context.Background(), "missing", models.StatusMatched, "admin-1", models.LoginRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestUpdateStatusEnforcesLifecycle(t *testing.T) {
	cases := []struct {
		name string
		from models.ItemStatus
		to   models.ItemStatus
		ok   bool
	}{
		{"pending to matched", models.StatusPending, models.StatusMatched, true},
		{"pending to transferred", models.StatusPending, models.StatusTransferred, true},
		{"matched to returned", models.StatusMatched, models.StatusReturned, true},
		{"pending to returned skips matched", models.StatusPending, models.StatusReturned, false},
		{"returned is terminal", models.StatusReturned, models.StatusMatched, false},
		{"transferred is terminal", models.StatusTransferred, models.StatusPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			current := &models.LostItem{ID: "item-1", Status: tc.from}
			repo := &stubItemRepo{findResult: current, updated: &models.LostItem{ID: "item-1", Status: tc.from}}
			audit := &stubAuditWriter{}
			svc := newItemService(repo, audit)

			item, err := svc.UpdateStatus(context.Background(), "item-1", tc.to, "admin-1", models.LoginRequest{})
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.to, item.Status)
				assert.Len(t, audit.logs, 1)
			} else {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
				assert.Zero(t, repo.updateCalls, "illegal transition must not hit the store")
			}
		})
	}
}
