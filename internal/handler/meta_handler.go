package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huskytracks/huskytracks-api/internal/middleware"
	"github.com/huskytracks/huskytracks-api/internal/models"
	appErrors "github.com/huskytracks/huskytracks-api/pkg/errors"
	"github.com/huskytracks/huskytracks-api/pkg/response"
)

// MetaHandler serves identity echo, dashboard routing, and the campus
// location catalog.
type MetaHandler struct{}

// NewMetaHandler creates a new meta handler.
func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// Me godoc
// @Summary Current identity
// @Description Echo the authenticated account's identity
// @Tags Meta
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /me [get]
func (h *MetaHandler) Me(c *gin.Context) {
	claims := middleware.CurrentUser(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, models.UserInfo{
		Email:    claims.Email,
		Role:     claims.Role,
		Location: claims.Location,
	})
}

// Dashboard godoc
// @Summary Dashboard routing
// @Description Resolve the dashboard view for the authenticated role
// @Tags Meta
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /dashboard [get]
func (h *MetaHandler) Dashboard(c *gin.Context) {
	claims := middleware.CurrentUser(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"dashboard": string(claims.Role),
		"location":  claims.Location,
	})
}

// Locations godoc
// @Summary Campus locations
// @Description The fixed list of campus locations with coordinates
// @Tags Meta
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /locations [get]
func (h *MetaHandler) Locations(c *gin.Context) {
	response.JSON(c, http.StatusOK, models.CampusLocations())
}
