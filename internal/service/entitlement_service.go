package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	appErrors "github.com/krishna45-ux/DC-Physics-3/pkg/errors"
)

type entitlementRepository interface {
	AddPurchase(ctx context.Context, purchase *models.Purchase) error
	ListPurchases(ctx context.Context, studentID string) ([]models.Purchase, error)
	MarkTopicWatched(ctx context.Context, studentID, topicID string, ts time.Time) error
	ListProgress(ctx context.Context, studentID string) ([]string, error)
	UpsertQuizAttempt(ctx context.Context, studentID, chapterID string, result models.QuizResult) error
	ListQuizAttempts(ctx context.Context, studentID string) (map[string]models.QuizResult, error)
	AddBookmark(ctx context.Context, bookmark *models.Bookmark) error
	DeleteBookmark(ctx context.Context, studentID, bookmarkID string) (bool, error)
	ListBookmarks(ctx context.Context, studentID string) ([]models.Bookmark, error)
}

type entitlementStudentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type entitlementCatalogRepository interface {
	ListChapters(ctx context.Context) ([]models.Chapter, error)
	FindChapter(ctx context.Context, id string) (*models.Chapter, error)
	FindCourse(ctx context.Context, id string) (*models.Course, error)
}

// EntitlementService owns the purchase ledger, topic progress, quiz attempts
// and bookmarks for student accounts. Purchases and progress are sets:
// repeated writes are absorbed, nothing is ever removed.
type EntitlementService struct {
	entitlements entitlementRepository
	students     entitlementStudentRepository
	catalog      entitlementCatalogRepository
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewEntitlementService constructs an EntitlementService instance.
func NewEntitlementService(
	entitlements entitlementRepository,
	students entitlementStudentRepository,
	catalog entitlementCatalogRepository,
	validate *validator.Validate,
	logger *zap.Logger,
) *EntitlementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &EntitlementService{
		entitlements: entitlements,
		students:     students,
		catalog:      catalog,
		validator:    validate,
		logger:       logger,
	}
}

func (s *EntitlementService) requireStudent(ctx context.Context, studentID string) error {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}
	return nil
}

// Purchase records a course or chapter purchase for the student. Buying an
// item already owned is a no-op, not an error.
func (s *EntitlementService) Purchase(ctx context.Context, studentID string, req models.PurchaseRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid purchase payload")
	}
	if err := s.requireStudent(ctx, studentID); err != nil {
		return err
	}

	switch req.ItemType {
	case models.PurchaseTypeChapter:
		if _, err := s.catalog.FindChapter(ctx, req.ItemID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "unknown chapter")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify chapter")
		}
	case models.PurchaseTypeCourse:
		if _, err := s.catalog.FindCourse(ctx, req.ItemID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "unknown course")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify course")
		}
	}

	purchase := &models.Purchase{
		StudentID:   studentID,
		ItemType:    req.ItemType,
		ItemID:      req.ItemID,
		PurchasedAt: time.Now().UTC(),
	}
	if err := s.entitlements.AddPurchase(ctx, purchase); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record purchase")
	}
	return nil
}

// MarkTopicWatched records that the student finished a topic. Progress only
// ever grows; re-watching a topic changes nothing.
func (s *EntitlementService) MarkTopicWatched(ctx context.Context, studentID string, req models.MarkWatchedRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid progress payload")
	}
	if err := s.requireStudent(ctx, studentID); err != nil {
		return err
	}

	if err := s.entitlements.MarkTopicWatched(ctx, studentID, req.TopicID, time.Now().UTC()); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record progress")
	}
	return nil
}

// RecordQuizAttempt stores the latest quiz result for a chapter, replacing
// any earlier attempt, and returns the computed outcome.
func (s *EntitlementService) RecordQuizAttempt(ctx context.Context, studentID string, req models.RecordQuizAttemptRequest) (*models.QuizResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid quiz attempt payload")
	}
	if req.Score > req.TotalQuestions {
		return nil, appErrors.Clone(appErrors.ErrValidation, "score cannot exceed total questions")
	}
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}

	result := models.QuizResult{
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		Passed:         float64(req.Score)/float64(req.TotalQuestions) >= models.QuizPassThreshold,
		CompletedAt:    time.Now().UTC(),
	}
	if err := s.entitlements.UpsertQuizAttempt(ctx, studentID, req.ChapterID, result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record quiz attempt")
	}
	return &result, nil
}

// AddBookmark saves a timestamped video bookmark for the student.
func (s *EntitlementService) AddBookmark(ctx context.Context, studentID string, req models.AddBookmarkRequest) (*models.Bookmark, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bookmark payload")
	}
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}

	bookmark := &models.Bookmark{
		ID:             uuid.NewString(),
		StudentID:      studentID,
		ChapterID:      req.ChapterID,
		VideoTimestamp: req.Timestamp,
		Note:           req.Note,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.entitlements.AddBookmark(ctx, bookmark); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save bookmark")
	}
	return bookmark, nil
}

// DeleteBookmark removes a bookmark owned by the student.
func (s *EntitlementService) DeleteBookmark(ctx context.Context, studentID, bookmarkID string) error {
	found, err := s.entitlements.DeleteBookmark(ctx, studentID, bookmarkID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete bookmark")
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "bookmark not found")
	}
	return nil
}

// Entitlements assembles the full entitlement snapshot for a student,
// including the derived set of unlocked chapters.
func (s *EntitlementService) Entitlements(ctx context.Context, studentID string) (*models.Entitlements, error) {
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}

	purchases, err := s.entitlements.ListPurchases(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load purchases")
	}
	progress, err := s.entitlements.ListProgress(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load progress")
	}
	attempts, err := s.entitlements.ListQuizAttempts(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quiz attempts")
	}
	bookmarks, err := s.entitlements.ListBookmarks(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookmarks")
	}
	chapters, err := s.catalog.ListChapters(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load chapters")
	}

	out := &models.Entitlements{
		PurchasedChapterIDs: []string{},
		PurchasedCourseIDs:  []string{},
		Progress:            map[string]bool{},
		QuizAttempts:        attempts,
		Bookmarks:           bookmarks,
	}
	for _, topicID := range progress {
		out.Progress[topicID] = true
	}
	if out.Bookmarks == nil {
		out.Bookmarks = []models.Bookmark{}
	}
	for _, p := range purchases {
		switch p.ItemType {
		case models.PurchaseTypeChapter:
			out.PurchasedChapterIDs = append(out.PurchasedChapterIDs, p.ItemID)
		case models.PurchaseTypeCourse:
			out.PurchasedCourseIDs = append(out.PurchasedCourseIDs, p.ItemID)
		}
	}
	out.UnlockedChapterIDs = unlockedChapters(chapters, out.PurchasedChapterIDs, out.PurchasedCourseIDs)
	return out, nil
}

// IsChapterUnlocked reports whether the student may access the chapter's
// paid content.
func (s *EntitlementService) IsChapterUnlocked(ctx context.Context, studentID, chapterID string) (bool, error) {
	chapter, err := s.catalog.FindChapter(ctx, chapterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, appErrors.Clone(appErrors.ErrNotFound, "unknown chapter")
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load chapter")
	}

	purchases, err := s.entitlements.ListPurchases(ctx, studentID)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load purchases")
	}

	courseID := models.CourseIDForClassLevel(chapter.ClassLevel)
	for _, p := range purchases {
		if p.ItemType == models.PurchaseTypeChapter && p.ItemID == chapterID {
			return true, nil
		}
		if p.ItemType == models.PurchaseTypeCourse && p.ItemID == courseID {
			return true, nil
		}
	}
	return false, nil
}

// unlockedChapters derives the chapter IDs a student can access: each chapter
// bought individually plus every chapter whose class-level course is owned.
func unlockedChapters(chapters []models.Chapter, chapterIDs, courseIDs []string) []string {
	ownedChapters := make(map[string]bool, len(chapterIDs))
	for _, id := range chapterIDs {
		ownedChapters[id] = true
	}
	ownedCourses := make(map[string]bool, len(courseIDs))
	for _, id := range courseIDs {
		ownedCourses[id] = true
	}

	unlocked := []string{}
	for _, ch := range chapters {
		if ownedChapters[ch.ID] || ownedCourses[models.CourseIDForClassLevel(ch.ClassLevel)] {
			unlocked = append(unlocked, ch.ID)
		}
	}
	return unlocked
}
