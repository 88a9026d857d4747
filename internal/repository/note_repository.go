package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
)

// NoteRepository stores study notes.
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository creates a new instance of NoteRepository.
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// List returns notes newest first, optionally restricted to a class level.
func (r *NoteRepository) List(ctx context.Context, classLevel *int) ([]models.Note, error) {
	var notes []models.Note
	if classLevel != nil {
		const query = `SELECT id, title, content, url, type, class_level, chapter_id, created_at FROM notes WHERE class_level = $1 ORDER BY created_at DESC`
		if err := r.db.SelectContext(ctx, &notes, query, *classLevel); err != nil {
			return nil, fmt.Errorf("list notes: %w", err)
		}
		return notes, nil
	}
	const query = `SELECT id, title, content, url, type, class_level, chapter_id, created_at FROM notes ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &notes, query); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Create inserts a note.
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO notes (id, title, content, url, type, class_level, chapter_id, created_at) VALUES (:id, :title, :content, :url, :type, :class_level, :chapter_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, note); err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

// Delete removes a note by id. Returns whether a row was deleted.
func (r *NoteRepository) Delete(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM notes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}
	return affected > 0, nil
}
