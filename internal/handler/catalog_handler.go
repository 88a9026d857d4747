package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	"github.com/krishna45-ux/DC-Physics-3/internal/service"
	appErrors "github.com/krishna45-ux/DC-Physics-3/pkg/errors"
	"github.com/krishna45-ux/DC-Physics-3/pkg/response"
)

// CatalogHandler serves the chapter and course catalog.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler creates a new handler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// ListChapters godoc
// @Summary List chapters
// @Description Returns all chapters with their topics
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/chapters [get]
func (h *CatalogHandler) ListChapters(c *gin.Context) {
	chapters, err := h.service.ListChapters(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, chapters, nil)
}

// GetChapter godoc
// @Summary Get one chapter
// @Tags Catalog
// @Produce json
// @Param chapterId path string true "Chapter ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /catalog/chapters/{chapterId} [get]
func (h *CatalogHandler) GetChapter(c *gin.Context) {
	chapter, err := h.service.GetChapter(c.Request.Context(), c.Param("chapterId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, chapter, nil)
}

// ListCourses godoc
// @Summary List full-course products
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/courses [get]
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	courses, err := h.service.ListCourses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// UpdateTopicVideo godoc
// @Summary Update a topic's video
// @Description Swap the video URL behind one topic (teacher only)
// @Tags Catalog
// @Accept json
// @Produce json
// @Param chapterId path string true "Chapter ID"
// @Param topicId path string true "Topic ID"
// @Param payload body models.UpdateTopicVideoRequest true "Video payload"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /catalog/chapters/{chapterId}/topics/{topicId}/video [put]
func (h *CatalogHandler) UpdateTopicVideo(c *gin.Context) {
	var req models.UpdateTopicVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid video payload"))
		return
	}

	if err := h.service.UpdateTopicVideo(c.Request.Context(), c.Param("chapterId"), c.Param("topicId"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
