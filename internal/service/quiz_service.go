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

type quizRepository interface {
	GetByChapter(ctx context.Context, chapterID string) (*models.Quiz, error)
	Upsert(ctx context.Context, quiz *models.Quiz) error
}

type quizCatalogRepository interface {
	FindChapter(ctx context.Context, id string) (*models.Chapter, error)
}

// QuizService manages per-chapter quizzes. Each chapter has at most one quiz
// and saving replaces the whole question set.
type QuizService struct {
	quizzes   quizRepository
	catalog   quizCatalogRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewQuizService constructs a QuizService instance.
func NewQuizService(quizzes quizRepository, catalog quizCatalogRepository, validate *validator.Validate, logger *zap.Logger) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &QuizService{quizzes: quizzes, catalog: catalog, validator: validate, logger: logger}
}

// GetByChapter returns the quiz for a chapter, if one exists.
func (s *QuizService) GetByChapter(ctx context.Context, chapterID string) (*models.Quiz, error) {
	quiz, err := s.quizzes.GetByChapter(ctx, chapterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no quiz for this chapter")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quiz")
	}
	return quiz, nil
}

// Save creates or replaces the quiz for a chapter.
func (s *QuizService) Save(ctx context.Context, chapterID string, req models.SaveQuizRequest) (*models.Quiz, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid quiz payload")
	}
	for _, q := range req.Questions {
		if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "correct option index out of range")
		}
	}

	if _, err := s.catalog.FindChapter(ctx, chapterID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown chapter")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify chapter")
	}

	quiz := &models.Quiz{
		ID:        uuid.NewString(),
		ChapterID: chapterID,
		Questions: models.QuestionList(req.Questions),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.quizzes.Upsert(ctx, quiz); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save quiz")
	}
	return quiz, nil
}
