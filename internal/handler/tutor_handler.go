package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	"github.com/krishna45-ux/DC-Physics-3/internal/service"
	appErrors "github.com/krishna45-ux/DC-Physics-3/pkg/errors"
	"github.com/krishna45-ux/DC-Physics-3/pkg/response"
)

// TutorHandler exposes the AI physics tutor.
type TutorHandler struct {
	service *service.TutorService
}

// NewTutorHandler creates a new handler.
func NewTutorHandler(svc *service.TutorService) *TutorHandler {
	return &TutorHandler{service: svc}
}

// Ask godoc
// @Summary Ask the physics tutor
// @Description Answers a student question grounded in the topic they are viewing. Always returns a readable answer, falling back to a canned reply when the model is unreachable.
// @Tags Tutor
// @Accept json
// @Produce json
// @Param payload body models.AskTutorRequest true "Question payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /tutor/ask [post]
func (h *TutorHandler) Ask(c *gin.Context) {
	var req models.AskTutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid question payload"))
		return
	}

	reply, err := h.service.Ask(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reply, nil)
}
