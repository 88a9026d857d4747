package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	appErrors "github.com/krishna45-ux/DC-Physics-3/pkg/errors"
)

type announcementRepository interface {
	List(ctx context.Context) ([]models.Announcement, error)
	Create(ctx context.Context, announcement *models.Announcement) error
	Delete(ctx context.Context, id string) (bool, error)
}

type announcementTeacherRepository interface {
	GetProfile(ctx context.Context) (*models.TeacherProfile, error)
}

const cacheKeyAnnouncements = "announcements:all"

// AnnouncementService manages the teacher's broadcast feed. The listing is
// cached since every student dashboard fetches it.
type AnnouncementService struct {
	announcements announcementRepository
	teachers      announcementTeacherRepository
	cache         CacheStore
	cacheTTL      time.Duration
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewAnnouncementService constructs an AnnouncementService instance.
func NewAnnouncementService(
	announcements announcementRepository,
	teachers announcementTeacherRepository,
	cache CacheStore,
	cacheTTL time.Duration,
	validate *validator.Validate,
	logger *zap.Logger,
) *AnnouncementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &AnnouncementService{
		announcements: announcements,
		teachers:      teachers,
		cache:         cache,
		cacheTTL:      cacheTTL,
		validator:     validate,
		logger:        logger,
	}
}

// List returns announcements newest first.
func (s *AnnouncementService) List(ctx context.Context) ([]models.Announcement, error) {
	if s.cache != nil {
		var cached []models.Announcement
		err := s.cache.Get(ctx, cacheKeyAnnouncements, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("announcement cache read failed", zap.Error(err))
		}
	}

	list, err := s.announcements.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load announcements")
	}
	if list == nil {
		list = []models.Announcement{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyAnnouncements, list, s.cacheTTL); err != nil {
			s.logger.Warn("announcement cache write failed", zap.Error(err))
		}
	}
	return list, nil
}

// Create posts a new announcement attributed to the teacher's current
// profile name.
func (s *AnnouncementService) Create(ctx context.Context, req models.CreateAnnouncementRequest) (*models.Announcement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement payload")
	}

	profile, err := s.teachers.GetProfile(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher profile")
	}

	announcement := &models.Announcement{
		ID:         uuid.NewString(),
		Content:    req.Content,
		AuthorName: profile.Name,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to post announcement")
	}

	s.invalidate(ctx)
	return announcement, nil
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	found, err := s.announcements.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete announcement")
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "announcement not found")
	}

	s.invalidate(ctx)
	return nil
}

func (s *AnnouncementService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKeyAnnouncements); err != nil {
		s.logger.Warn("announcement cache invalidation failed", zap.Error(err))
	}
}
