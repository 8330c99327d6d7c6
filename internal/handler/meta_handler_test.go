package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huskytracks/huskytracks-api/internal/middleware"
	"github.com/huskytracks/huskytracks-api/internal/models"
)

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error map[string]interface{} `json:"error"`
}

func TestMetaHandlerMeEchoesClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMetaHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{
		UserID:   "user-1",
		Email:    "supervisor@northeastern.edu",
		Role:     models.RoleSupervisor,
		Location: "Snell Library",
	})

	handler.Me(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var info models.UserInfo
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, "supervisor@northeastern.edu", info.Email)
	assert.Equal(t, models.RoleSupervisor, info.Role)
}

func TestMetaHandlerMeWithoutClaimsIs401(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMetaHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/me", nil)

	handler.Me(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMetaHandlerDashboardRoutesByRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMetaHandler()

	for _, role := range []models.UserRole{models.RoleStudent, models.RoleSupervisor, models.RoleAdmin} {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u", Role: role})

		handler.Dashboard(c)

		assert.Equal(t, http.StatusOK, rec.Code)
		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		var data map[string]string
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, string(role), data["dashboard"])
	}
}

func TestMetaHandlerLocationsReturnsCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMetaHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/locations", nil)

	handler.Locations(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var locations []models.CampusLocation
	require.NoError(t, json.Unmarshal(env.Data, &locations))
	assert.Len(t, locations, 8)
}
