package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
	appErrors "github.com/krishna45-ux/DC-Physics-3/pkg/errors"
)

type noteRepository interface {
	List(ctx context.Context, classLevel *int) ([]models.Note, error)
	Create(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id string) (bool, error)
}

// NoteService manages supplementary study notes, either inline text or
// linked PDFs.
type NoteService struct {
	notes     noteRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNoteService constructs a NoteService instance.
func NewNoteService(notes noteRepository, validate *validator.Validate, logger *zap.Logger) *NoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &NoteService{notes: notes, validator: validate, logger: logger}
}

// List returns notes, optionally filtered to one class level.
func (s *NoteService) List(ctx context.Context, classLevel *int) ([]models.Note, error) {
	notes, err := s.notes.List(ctx, classLevel)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notes")
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

// Create adds a note. Text notes need content, PDF notes need a URL.
func (s *NoteService) Create(ctx context.Context, req models.CreateNoteRequest) (*models.Note, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid note payload")
	}
	if req.Type == models.NoteTypeText && req.Content == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "text notes require content")
	}
	if req.Type == models.NoteTypePDF && req.URL == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "pdf notes require a url")
	}

	note := &models.Note{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Content:    req.Content,
		URL:        req.URL,
		Type:       req.Type,
		ClassLevel: req.ClassLevel,
		ChapterID:  req.ChapterID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create note")
	}
	return note, nil
}

// Delete removes a note.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	found, err := s.notes.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete note")
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "note not found")
	}
	return nil
}
