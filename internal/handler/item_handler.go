package handler

import (
	"encoding/json"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/huskytracks/huskytracks-api/internal/imaging"
	"github.com/huskytracks/huskytracks-api/internal/middleware"
	"github.com/huskytracks/huskytracks-api/internal/models"
	"github.com/huskytracks/huskytracks-api/internal/service"
	appErrors "github.com/huskytracks/huskytracks-api/pkg/errors"
	"github.com/huskytracks/huskytracks-api/pkg/response"
	"github.com/huskytracks/huskytracks-api/pkg/storage"
)

// ItemHandler exposes lost-item reporting, listing, and triage endpoints.
type ItemHandler struct {
	service       *service.ItemService
	storage       *storage.LocalStorage
	urlPrefix     string
	maxUploadSize int64
}

// NewItemHandler creates a new item handler.
func NewItemHandler(svc *service.ItemService, store *storage.LocalStorage, urlPrefix string, maxUploadSize int64) *ItemHandler {
	return &ItemHandler{service: svc, storage: store, urlPrefix: urlPrefix, maxUploadSize: maxUploadSize}
}

// Create godoc
// @Summary Report a lost item
// @Description Submit a new lost-item report with an optional photo
// @Tags Lost items
// @Accept mpfd
// @Produce json
// @Param title formData string true "Item title"
// @Param description formData string true "Item description"
// @Param category formData string false "Item category"
// @Param locationName formData string false "Campus location name"
// @Param coordinates formData string false "JSON [lng, lat] pair"
// @Param submittedBy formData string true "Reporter email"
// @Param image formData file false "Item photo (JPEG or PNG)"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /lost-items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	req := service.SubmitReportRequest{
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		Category:     c.PostForm("category"),
		LocationName: c.PostForm("locationName"),
		SubmittedBy:  c.PostForm("submittedBy"),
	}

	if raw := c.PostForm("coordinates"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Coordinates); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "coordinates must be a JSON [lng, lat] pair"))
			return
		}
	}

	if file, err := c.FormFile("image"); err == nil {
		if h.maxUploadSize > 0 && file.Size > h.maxUploadSize {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "image exceeds the upload size limit"))
			return
		}
		src, err := file.Open()
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read uploaded image"))
			return
		}
		defer src.Close()

		photo, err := imaging.Normalize(src)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, err.Error()))
			return
		}

		filename := storage.UniqueFilename(file.Filename, photo.Ext)
		if _, err := h.storage.Save(filename, photo.Data); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to store uploaded image"))
			return
		}
		req.ImageURL = path.Join(h.urlPrefix, filename)
	}

	item, err := h.service.SubmitReport(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, item)
}

// ListMine godoc
// @Summary List my reports
// @Description List lost items reported by the given email
// @Tags Lost items
// @Produce json
// @Param email query string true "Reporter email"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /lost-items [get]
func (h *ItemHandler) ListMine(c *gin.Context) {
	items, err := h.service.ListForSubmitter(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// ListForSupervisor godoc
// @Summary List items for a supervisor
// @Description List every report, flagging the ones in the supervisor's location
// @Tags Lost items
// @Produce json
// @Param location query string true "Assigned campus location"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /lost-items/supervisor [get]
func (h *ItemHandler) ListForSupervisor(c *gin.Context) {
	items, err := h.service.ListForLocation(c.Request.Context(), c.Query("location"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// UpdateStatus godoc
// @Summary Update item status
// @Description Move a lost item one step through its lifecycle
// @Tags Lost items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param payload body object true "New status"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lost-items/{id} [patch]
func (h *ItemHandler) UpdateStatus(c *gin.Context) {
	var payload struct {
		Status models.ItemStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "status is required"))
		return
	}

	actorID := ""
	if claims := middleware.CurrentUser(c); claims != nil {
		actorID = claims.UserID
	}
	meta := models.LoginRequest{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}

	item, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), payload.Status, actorID, meta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, item)
}
