package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	"github.com/krishna45-ux/DC-Physics-3/internal/service"
	appErrors "github.com/krishna45-ux/DC-Physics-3/pkg/errors"
	"github.com/krishna45-ux/DC-Physics-3/pkg/response"
)

// QuizHandler manages per-chapter quizzes.
type QuizHandler struct {
	service *service.QuizService
}

// NewQuizHandler creates a new handler.
func NewQuizHandler(svc *service.QuizService) *QuizHandler {
	return &QuizHandler{service: svc}
}

// GetByChapter godoc
// @Summary Get the quiz for a chapter
// @Tags Quizzes
// @Produce json
// @Param chapterId path string true "Chapter ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /chapters/{chapterId}/quiz [get]
func (h *QuizHandler) GetByChapter(c *gin.Context) {
	quiz, err := h.service.GetByChapter(c.Request.Context(), c.Param("chapterId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quiz, nil)
}

// Save godoc
// @Summary Create or replace a chapter quiz
// @Description Replaces the full question set for the chapter (teacher only)
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param chapterId path string true "Chapter ID"
// @Param payload body models.SaveQuizRequest true "Quiz payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /chapters/{chapterId}/quiz [put]
func (h *QuizHandler) Save(c *gin.Context) {
	var req models.SaveQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid quiz payload"))
		return
	}

	quiz, err := h.service.Save(c.Request.Context(), c.Param("chapterId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quiz, nil)
}
