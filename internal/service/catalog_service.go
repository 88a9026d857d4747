package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	appErrors "github.com/krishna45-ux/DC-Physics-3/pkg/errors"
)

type catalogRepository interface {
	ListChapters(ctx context.Context) ([]models.Chapter, error)
	FindChapter(ctx context.Context, id string) (*models.Chapter, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	FindCourse(ctx context.Context, id string) (*models.Course, error)
	UpdateTopicVideo(ctx context.Context, chapterID, topicID, videoURL string) (bool, error)
}

// CacheStore is the slice of the Redis cache layer the read-heavy services
// use.
type CacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const (
	cacheKeyChapters = "catalog:chapters"
	cacheKeyCourses  = "catalog:courses"
)

// CatalogService serves the chapter and course catalog. Listings are cached
// in Redis because the catalog changes rarely and every page load reads it.
type CatalogService struct {
	catalog   catalogRepository
	cache     CacheStore
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService constructs a CatalogService. Pass a nil cache to disable
// caching entirely.
func NewCatalogService(catalog catalogRepository, cache CacheStore, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &CatalogService{
		catalog:   catalog,
		cache:     cache,
		cacheTTL:  cacheTTL,
		validator: validate,
		logger:    logger,
	}
}

// ListChapters returns all chapters with their topics, cache-first.
func (s *CatalogService) ListChapters(ctx context.Context) ([]models.Chapter, error) {
	if s.cache != nil {
		var cached []models.Chapter
		err := s.cache.Get(ctx, cacheKeyChapters, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("chapter cache read failed", zap.Error(err))
		}
	}

	chapters, err := s.catalog.ListChapters(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load chapters")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyChapters, chapters, s.cacheTTL); err != nil {
			s.logger.Warn("chapter cache write failed", zap.Error(err))
		}
	}
	return chapters, nil
}

// GetChapter returns one chapter with its topics.
func (s *CatalogService) GetChapter(ctx context.Context, id string) (*models.Chapter, error) {
	chapter, err := s.catalog.FindChapter(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "chapter not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load chapter")
	}
	return chapter, nil
}

// ListCourses returns the purchasable full-course products, cache-first.
func (s *CatalogService) ListCourses(ctx context.Context) ([]models.Course, error) {
	if s.cache != nil {
		var cached []models.Course
		err := s.cache.Get(ctx, cacheKeyCourses, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("course cache read failed", zap.Error(err))
		}
	}

	courses, err := s.catalog.ListCourses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyCourses, courses, s.cacheTTL); err != nil {
			s.logger.Warn("course cache write failed", zap.Error(err))
		}
	}
	return courses, nil
}

// UpdateTopicVideo swaps the video URL behind a topic and invalidates the
// chapter cache so students see the change on their next load.
func (s *CatalogService) UpdateTopicVideo(ctx context.Context, chapterID, topicID string, req models.UpdateTopicVideoRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid video payload")
	}

	found, err := s.catalog.UpdateTopicVideo(ctx, chapterID, topicID, req.VideoURL)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update topic video")
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "topic not found")
	}

	s.invalidateChapters(ctx)
	return nil
}

func (s *CatalogService) invalidateChapters(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKeyChapters); err != nil {
		s.logger.Warn("chapter cache invalidation failed", zap.Error(err))
	}
}
