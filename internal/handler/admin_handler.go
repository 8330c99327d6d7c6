package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/huskytracks/huskytracks-api/internal/middleware"
	"github.com/huskytracks/huskytracks-api/internal/models"
	"github.com/huskytracks/huskytracks-api/internal/service"
	appErrors "github.com/huskytracks/huskytracks-api/pkg/errors"
	"github.com/huskytracks/huskytracks-api/pkg/response"
)

// AdminHandler exposes the account-management and analytics endpoints.
type AdminHandler struct {
	users     *service.UserService
	items     *service.ItemService
	analytics *service.AnalyticsService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(users *service.UserService, items *service.ItemService, analytics *service.AnalyticsService) *AdminHandler {
	return &AdminHandler{users: users, items: items, analytics: analytics}
}

// ListUsers godoc
// @Summary List managed users
// @Description List supervisor and admin accounts
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListManaged(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// CreateUser godoc
// @Summary Create an account
// @Description Create a student, supervisor, or admin account
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.CreateUserRequest true "Account payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/create-user [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid account payload"))
		return
	}

	actorID, meta := actorAndMeta(c)
	user, err := h.users.Create(c.Request.Context(), req, actorID, meta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, user)
}

// UpdateUser godoc
// @Summary Update an account
// @Description Change an account's role or assigned location
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param payload body service.UpdateUserRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid update payload"))
		return
	}

	actorID, meta := actorAndMeta(c)
	user, err := h.users.Update(c.Request.Context(), c.Param("id"), req, actorID, meta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete an account
// @Description Permanently remove an account
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actorID, meta := actorAndMeta(c)
	if err := h.users.Delete(c.Request.Context(), c.Param("id"), actorID, meta); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListAllItems godoc
// @Summary List every report
// @Description List all lost items across campus, newest first
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/all-lost-items [get]
func (h *AdminHandler) ListAllItems(c *gin.Context) {
	items, err := h.items.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Analytics godoc
// @Summary Analytics snapshot
// @Description Aggregate counts by status, location, and role plus the 7-day trend
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/analytics [get]
func (h *AdminHandler) Analytics(c *gin.Context) {
	snapshot, err := h.analytics.Snapshot(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot)
}

// ExportAnalytics godoc
// @Summary Export the analytics snapshot
// @Description Download the snapshot as CSV or PDF
// @Tags Admin
// @Produce octet-stream
// @Param format query string true "csv or pdf"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /admin/analytics/export [get]
func (h *AdminHandler) ExportAnalytics(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	data, contentType, err := h.analytics.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("huskytracks-analytics-%s.%s", time.Now().UTC().Format("2006-01-02"), format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, contentType, data)
}

func actorAndMeta(c *gin.Context) (string, models.LoginRequest) {
	actorID := ""
	if claims := middleware.CurrentUser(c); claims != nil {
		actorID = claims.UserID
	}
	return actorID, models.LoginRequest{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
}
