package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	"github.com/krishna45-ux/DC-Physics-3/internal/service"
	appErrors "github.com/krishna45-ux/DC-Physics-3/pkg/errors"
	"github.com/krishna45-ux/DC-Physics-3/pkg/response"
)

// EntitlementHandler exposes the student's purchase ledger, progress, quiz
// attempts and bookmarks. All routes operate on the authenticated student.
type EntitlementHandler struct {
	service *service.EntitlementService
}

// NewEntitlementHandler creates a new handler.
func NewEntitlementHandler(svc *service.EntitlementService) *EntitlementHandler {
	return &EntitlementHandler{service: svc}
}

// Purchase godoc
// @Summary Purchase a course or chapter
// @Description Record a purchase. Buying an already-owned item is a no-op.
// @Tags Entitlements
// @Accept json
// @Produce json
// @Param payload body models.PurchaseRequest true "Purchase payload"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /me/purchases [post]
func (h *EntitlementHandler) Purchase(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid purchase payload"))
		return
	}

	if err := h.service.Purchase(c.Request.Context(), claims.UserID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// MarkWatched godoc
// @Summary Mark a topic watched
// @Description Record that the student finished a topic. Progress never shrinks.
// @Tags Entitlements
// @Accept json
// @Produce json
// @Param payload body models.MarkWatchedRequest true "Progress payload"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /me/progress [post]
func (h *EntitlementHandler) MarkWatched(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.MarkWatchedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid progress payload"))
		return
	}

	if err := h.service.MarkTopicWatched(c.Request.Context(), claims.UserID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RecordQuizAttempt godoc
// @Summary Submit a quiz attempt
// @Description Store the latest quiz result for a chapter, replacing any earlier attempt
// @Tags Entitlements
// @Accept json
// @Produce json
// @Param payload body models.RecordQuizAttemptRequest true "Attempt payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /me/quiz-attempts [post]
func (h *EntitlementHandler) RecordQuizAttempt(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.RecordQuizAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid quiz attempt payload"))
		return
	}

	result, err := h.service.RecordQuizAttempt(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// AddBookmark godoc
// @Summary Add a video bookmark
// @Tags Entitlements
// @Accept json
// @Produce json
// @Param payload body models.AddBookmarkRequest true "Bookmark payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /me/bookmarks [post]
func (h *EntitlementHandler) AddBookmark(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.AddBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bookmark payload"))
		return
	}

	bookmark, err := h.service.AddBookmark(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, bookmark)
}

// DeleteBookmark godoc
// @Summary Delete a bookmark
// @Tags Entitlements
// @Produce json
// @Param id path string true "Bookmark ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /me/bookmarks/{id} [delete]
func (h *EntitlementHandler) DeleteBookmark(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.DeleteBookmark(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Entitlements godoc
// @Summary Get entitlement snapshot
// @Description Everything the student owns and has done, plus derived unlocked chapters
// @Tags Entitlements
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/entitlements [get]
func (h *EntitlementHandler) Entitlements(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	entitlements, err := h.service.Entitlements(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entitlements, nil)
}
