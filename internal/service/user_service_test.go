package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/huskytracks/huskytracks-api/internal/models"
	appErrors "github.com/huskytracks/huskytracks-api/pkg/errors"
)

type stubUserRepo struct {
	byEmail    *models.User
	byEmailErr error
	byID       *models.User
	byIDErr    error
	listed     []models.User
	listRoles  []models.UserRole
	created    *models.User
	updatedTo  *models.User
	deleteErr  error
	deletedID  string
	auditLogs  []*models.AuditLog
}

func (s *stubUserRepo) ListByRoles(_ context.Context, roles []models.UserRole) ([]models.User, error) {
	s.listRoles = roles
	return s.listed, nil
}

func (s *stubUserRepo) FindByID(_ context.Context, _ string) (*models.User, error) {
	if s.byIDErr != nil {
		return nil, s.byIDErr
	}
	return s.byID, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, _ string) (*models.User, error) {
	if s.byEmailErr != nil {
		return nil, s.byEmailErr
	}
	return s.byEmail, nil
}

func (s *stubUserRepo) Create(_ context.Context, user *models.User) error {
	s.created = user
	return nil
}

func (s *stubUserRepo) Update(_ context.Context, user *models.User) error {
	s.updatedTo = user
	return nil
}

func (s *stubUserRepo) Delete(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedID = id
	return nil
}

func (s *stubUserRepo) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	s.auditLogs = append(s.auditLogs, log)
	return nil
}

func newUserService(repo *stubUserRepo) *UserService {
	return NewUserService(repo, nil, nil, "@northeastern.edu")
}

func TestListManagedExcludesStudents(t *testing.T) {
	repo := &stubUserRepo{listed: []models.User{{ID: "sup-1", Role: models.RoleSupervisor}}}
	svc := newUserService(repo)

	users, err := svc.ListManaged(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, []models.UserRole{models.RoleSupervisor, models.RoleAdmin}, repo.listRoles)
}

func TestCreateUserRejectsForeignDomain(t *testing.T) {
	svc := newUserService(&stubUserRepo{byEmailErr: sql.ErrNoRows})

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "eve@gmail.com",
		Password: "secret1",
		Role:     models.RoleStudent,
	}, "admin-1", models.LoginRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestCreateUserDuplicateIs409(t *testing.T) {
	repo := &stubUserRepo{byEmail: &models.User{ID: "existing"}}
	svc := newUserService(repo)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "alice@northeastern.edu",
		Password: "secret1",
		Role:     models.RoleStudent,
	}, "admin-1", models.LoginRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrors.FromError(err).Status)
}

func TestCreateUserKeepsLocationOnlyForSupervisors(t *testing.T) {
	repo := &stubUserRepo{byEmailErr: sql.ErrNoRows}
	svc := newUserService(repo)

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "new-admin@northeastern.edu",
		Password: "secret1",
		Role:     models.RoleAdmin,
		Location: "Snell Library",
	}, "admin-1", models.LoginRequest{})
	require.NoError(t, err)
	assert.Empty(t, user.Location, "non-supervisor accounts carry no location")

	supervisor, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "new-sup@northeastern.edu",
		Password: "secret1",
		Role:     models.RoleSupervisor,
		Location: "ISEC",
	}, "admin-1", models.LoginRequest{})
	require.NoError(t, err)
	assert.Equal(t, "ISEC", supervisor.Location)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(supervisor.PasswordHash), []byte("secret1")))
}

func TestUpdateUserNotFound(t *testing.T) {
	repo := &stubUserRepo{byIDErr: sql.ErrNoRows}
	svc := newUserService(repo)

	_, err := svc.Update(context.Background(), "missing", UpdateUserRequest{}, "admin-1", models.LoginRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestUpdateUserStripsLocationOnDemotion(t *testing.T) {
	repo := &stubUserRepo{byID: &models.User{
		ID:       "sup-1",
		Email:    "sup@northeastern.edu",
		Role:     models.RoleSupervisor,
		Location: "Snell Library",
	}}
	svc := newUserService(repo)

	student := models.RoleStudent
	user, err := svc.Update(context.Background(), "sup-1", UpdateUserRequest{Role: &student}, "admin-1", models.LoginRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Empty(t, user.Location)
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionUserUpdate, repo.auditLogs[0].Action)
}

func TestDeleteUserNotFound(t *testing.T) {
	repo := &stubUserRepo{deleteErr: sql.ErrNoRows}
	svc := newUserService(repo)

	err := svc.Delete(context.Background(), "missing", "admin-1", models.LoginRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestDeleteUserRecordsAudit(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newUserService(repo)

	require.NoError(t, svc.Delete(context.Background(), "user-9", "admin-1", models.LoginRequest{}))
	assert.Equal(t, "user-9", repo.deletedID)
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionUserDelete, repo.auditLogs[0].Action)
}
