package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huskytracks/huskytracks-api/internal/service"
	"github.com/huskytracks/huskytracks-api/pkg/response"
)

// SeedHandler exposes the fixture-account bootstrap endpoint. The route is
// only registered when seeding is enabled.
type SeedHandler struct {
	service *service.SeedService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(svc *service.SeedService) *SeedHandler {
	return &SeedHandler{service: svc}
}

// Register godoc
// @Summary Register fixture accounts
// @Description Idempotently create the demo roster of students, supervisors, and admins
// @Tags Meta
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /register-test-users [post]
func (h *SeedHandler) Register(c *gin.Context) {
	created, err := h.service.Register(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{
		"message": "test users registered successfully",
		"created": created,
	})
}
