package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huskytracks/huskytracks-api/internal/service"
	appErrors "github.com/huskytracks/huskytracks-api/pkg/errors"
	"github.com/huskytracks/huskytracks-api/pkg/response"
)

// NotificationHandler exposes the match-email endpoint.
type NotificationHandler struct {
	service *service.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: svc}
}

// SendMatchEmail godoc
// @Summary Send a match notification
// @Description Email the reporter that their item was matched at a location
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body service.MatchNotificationRequest true "Notification payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /send-match-email [post]
func (h *NotificationHandler) SendMatchEmail(c *gin.Context) {
	var req service.MatchNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid notification payload"))
		return
	}

	if err := h.service.SendMatchNotification(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "match notification sent"})
}
