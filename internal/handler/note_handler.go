package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	"github.com/krishna45-ux/DC-Physics-3/internal/service"
	appErrors "github.com/krishna45-ux/DC-Physics-3/pkg/errors"
	"github.com/krishna45-ux/DC-Physics-3/pkg/response"
)

// NoteHandler manages supplementary study notes.
type NoteHandler struct {
	service *service.NoteService
}

// NewNoteHandler creates a new handler.
func NewNoteHandler(svc *service.NoteService) *NoteHandler {
	return &NoteHandler{service: svc}
}

// List godoc
// @Summary List notes
// @Tags Notes
// @Produce json
// @Param class_level query int false "Filter by class level (11 or 12)"
// @Success 200 {object} response.Envelope
// @Router /notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	var classLevel *int
	if raw := c.Query("class_level"); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil || (level != 11 && level != 12) {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "class_level must be 11 or 12"))
			return
		}
		classLevel = &level
	}

	notes, err := h.service.List(c.Request.Context(), classLevel)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notes, nil)
}

// Create godoc
// @Summary Create a note
// @Tags Notes
// @Accept json
// @Produce json
// @Param payload body models.CreateNoteRequest true "Note payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	var req models.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid note payload"))
		return
	}

	note, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, note)
}

// Delete godoc
// @Summary Delete a note
// @Tags Notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
