package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	appErrors "github.com/krishna45-ux/DC-Physics-3/pkg/errors"
)

type teacherProfileRepository interface {
	GetProfile(ctx context.Context) (*models.TeacherProfile, error)
	UpdateProfile(ctx context.Context, profile *models.TeacherProfile) error
}

// TeacherService exposes the public teacher profile shown on the landing
// page, and lets the teacher edit it.
type TeacherService struct {
	teachers  teacherProfileRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService instance.
func NewTeacherService(teachers teacherProfileRepository, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TeacherService{teachers: teachers, validator: validate, logger: logger}
}

// Profile returns the current teacher profile.
func (s *TeacherService) Profile(ctx context.Context) (*models.TeacherProfile, error) {
	profile, err := s.teachers.GetProfile(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher profile")
	}
	return profile, nil
}

// UpdateProfile replaces the editable profile fields.
func (s *TeacherService) UpdateProfile(ctx context.Context, req models.UpdateTeacherProfileRequest) (*models.TeacherProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	profile := &models.TeacherProfile{
		Name:           req.Name,
		Bio:            req.Bio,
		Image:          req.Image,
		Qualifications: req.Qualifications,
		Experience:     req.Experience,
		StudentsCount:  req.StudentsCount,
		LecturesCount:  req.LecturesCount,
		Rating:         req.Rating,
		UpdatedAt:      time.Now().UTC(),
	}
	if err := s.teachers.UpdateProfile(ctx, profile); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update teacher profile")
	}
	return profile, nil
}
