package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/huskytracks/huskytracks-api/internal/models"
	appErrors "github.com/huskytracks/huskytracks-api/pkg/errors"
)

type stubAuthUserRepo struct {
	user       *models.User
	findErr    error
	findCalled bool
	auditLogs  []*models.AuditLog
}

func (s *stubAuthUserRepo) FindByEmail(_ context.Context, _ string) (*models.User, error) {
	s.findCalled = true
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.user, nil
}

func (s *stubAuthUserRepo) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	s.auditLogs = append(s.auditLogs, log)
	return nil
}

type stubAttemptStore struct {
	count     int64
	recordErr error
	resets    int
}

func (s *stubAttemptStore) Record(_ context.Context, _ string, _ time.Duration) (int64, error) {
	if s.recordErr != nil {
		return 0, s.recordErr
	}
	s.count++
	return s.count, nil
}

func (s *stubAttemptStore) Reset(_ context.Context, _ string) error {
	s.resets++
	return nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{
		AccessTokenSecret:   "test_secret",
		AccessTokenExpiry:   time.Hour,
		Issuer:              "huskytracks-api",
		InstitutionalDomain: "@northeastern.edu",
		MaxLoginAttempts:    3,
		AttemptWindow:       time.Minute,
		ThrottleEnabled:     true,
	}
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginRejectsNonInstitutionalEmailBeforeStore(t *testing.T) {
	repo := &stubAuthUserRepo{}
	svc := NewAuthService(repo, &stubAttemptStore{}, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "bob@gmail.com",
		Password: "whatever",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
	assert.False(t, repo.findCalled, "store must not be touched for foreign domains")
}

func TestLoginUnknownAccountIs404(t *testing.T) {
	repo := &stubAuthUserRepo{findErr: sql.ErrNoRows}
	svc := NewAuthService(repo, &stubAttemptStore{}, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "ghost@northeastern.edu",
		Password: "whatever",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestLoginWrongPasswordIs401(t *testing.T) {
	repo := &stubAuthUserRepo{user: &models.User{
		ID:           "user-1",
		Email:        "alice@northeastern.edu",
		PasswordHash: hashPassword(t, "alice123"),
		Role:         models.RoleStudent,
	}}
	svc := NewAuthService(repo, &stubAttemptStore{}, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "alice@northeastern.edu",
		Password: "nope",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	repo := &stubAuthUserRepo{user: &models.User{
		ID:           "user-1",
		Email:        "supervisor@northeastern.edu",
		PasswordHash: hashPassword(t, "super123"),
		Role:         models.RoleSupervisor,
		Location:     "Snell Library",
	}}
	attempts := &stubAttemptStore{}
	svc := NewAuthService(repo, attempts, nil, nil, testAuthConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "supervisor@northeastern.edu",
		Password: "super123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, models.RoleSupervisor, res.User.Role)
	assert.Equal(t, "Snell Library", res.User.Location)
	assert.Equal(t, 1, attempts.resets)
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionLogin, repo.auditLogs[0].Action)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleSupervisor, claims.Role)
}

func TestLoginThrottleKicksInAfterLimit(t *testing.T) {
	repo := &stubAuthUserRepo{user: &models.User{
		ID:           "user-1",
		Email:        "alice@northeastern.edu",
		PasswordHash: hashPassword(t, "alice123"),
		Role:         models.RoleStudent,
	}}
	attempts := &stubAttemptStore{count: 3}
	svc := NewAuthService(repo, attempts, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "alice@northeastern.edu",
		Password: "alice123",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusTooManyRequests, appErrors.FromError(err).Status)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(&stubAuthUserRepo{}, nil, nil, nil, testAuthConfig())

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
}
