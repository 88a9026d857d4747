package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
)

// QuizRepository stores quiz question sets, one per chapter.
type QuizRepository struct {
	db *sqlx.DB
}

// NewQuizRepository creates a new instance of QuizRepository.
func NewQuizRepository(db *sqlx.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

// GetByChapter returns the quiz for a chapter.
func (r *QuizRepository) GetByChapter(ctx context.Context, chapterID string) (*models.Quiz, error) {
	const query = `SELECT id, chapter_id, questions, updated_at FROM quizzes WHERE chapter_id = $1 LIMIT 1`
	var quiz models.Quiz
	if err := r.db.GetContext(ctx, &quiz, query, chapterID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get quiz by chapter: %w", err)
	}
	return &quiz, nil
}

// Upsert creates the chapter's quiz or replaces its questions in place.
func (r *QuizRepository) Upsert(ctx context.Context, quiz *models.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}
	quiz.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO quizzes (id, chapter_id, questions, updated_at) VALUES (:id, :chapter_id, :questions, :updated_at)
		ON CONFLICT (chapter_id) DO UPDATE SET questions = EXCLUDED.questions, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, quiz); err != nil {
		return fmt.Errorf("upsert quiz: %w", err)
	}
	return nil
}
