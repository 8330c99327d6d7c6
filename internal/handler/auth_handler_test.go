package handler

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/huskytracks/huskytracks-api/internal/models"
	"github.com/huskytracks/huskytracks-api/internal/service"
)

type fakeAuthRepo struct {
	user *models.User
}

func (f *fakeAuthRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAuthRepo) CreateAuditLog(_ context.Context, _ *models.AuditLog) error {
	return nil
}

func newLoginHandler(t *testing.T, repo *fakeAuthRepo) *AuthHandler {
	t.Helper()
	svc := service.NewAuthService(repo, nil, nil, nil, service.AuthConfig{
		AccessTokenSecret:   "test_secret",
		AccessTokenExpiry:   time.Hour,
		Issuer:              "huskytracks-api",
		InstitutionalDomain: "@northeastern.edu",
	})
	return NewAuthHandler(svc)
}

func postLogin(handler *AuthHandler, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.Login(c)
	return rec
}

func TestLoginHandlerRejectsMalformedBody(t *testing.T) {
	handler := newLoginHandler(t, &fakeAuthRepo{})

	rec := postLogin(handler, `{"email": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandlerForeignDomainIs400(t *testing.T) {
	handler := newLoginHandler(t, &fakeAuthRepo{})

	rec := postLogin(handler, `{"email":"bob@gmail.com","password":"bob123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandlerUnknownAccountIs404(t *testing.T) {
	handler := newLoginHandler(t, &fakeAuthRepo{})

	rec := postLogin(handler, `{"email":"ghost@northeastern.edu","password":"nope"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginHandlerSuccess(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("alice123"), bcrypt.MinCost)
	require.NoError(t, err)
	handler := newLoginHandler(t, &fakeAuthRepo{user: &models.User{
		ID:           "user-1",
		Email:        "alice@northeastern.edu",
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
	}})

	rec := postLogin(handler, `{"email":"alice@northeastern.edu","password":"alice123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_token")
}
