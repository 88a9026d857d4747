package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
)

// EntitlementRepository persists the purchase/progress/quiz/bookmark ledger.
type EntitlementRepository struct {
	db *sqlx.DB
}

// NewEntitlementRepository creates a new instance of EntitlementRepository.
func NewEntitlementRepository(db *sqlx.DB) *EntitlementRepository {
	return &EntitlementRepository{db: db}
}

// AddPurchase records a purchase. Re-purchasing the same item is a no-op
// thanks to the composite primary key.
func (r *EntitlementRepository) AddPurchase(ctx context.Context, p *models.Purchase) error {
	if p.PurchasedAt.IsZero() {
		p.PurchasedAt = time.Now().UTC()
	}
	const query = `INSERT INTO purchases (student_id, item_type, item_id, purchased_at) VALUES (:student_id, :item_type, :item_id, :purchased_at) ON CONFLICT (student_id, item_type, item_id) DO NOTHING`
	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("add purchase: %w", err)
	}
	return nil
}

// ListPurchases returns all ledger entries for a student.
func (r *EntitlementRepository) ListPurchases(ctx context.Context, studentID string) ([]models.Purchase, error) {
	const query = `SELECT student_id, item_type, item_id, purchased_at FROM purchases WHERE student_id = $1 ORDER BY purchased_at`
	var purchases []models.Purchase
	if err := r.db.SelectContext(ctx, &purchases, query, studentID); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return purchases, nil
}

// MarkTopicWatched records that a topic was watched. Monotonic: watching a
// topic twice leaves a single row.
func (r *EntitlementRepository) MarkTopicWatched(ctx context.Context, studentID, topicID string, ts time.Time) error {
	const query = `INSERT INTO topic_progress (student_id, topic_id, watched_at) VALUES ($1, $2, $3) ON CONFLICT (student_id, topic_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, studentID, topicID, ts); err != nil {
		return fmt.Errorf("mark topic watched: %w", err)
	}
	return nil
}

// ListProgress returns the watched topic ids for a student.
func (r *EntitlementRepository) ListProgress(ctx context.Context, studentID string) ([]string, error) {
	const query = `SELECT topic_id FROM topic_progress WHERE student_id = $1`
	var topicIDs []string
	if err := r.db.SelectContext(ctx, &topicIDs, query, studentID); err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return topicIDs, nil
}

// quizAttemptRow pairs a chapter with its latest result for scanning.
type quizAttemptRow struct {
	ChapterID string `db:"chapter_id"`
	models.QuizResult
}

// UpsertQuizAttempt writes the latest quiz result for a chapter, discarding
// any prior attempt.
func (r *EntitlementRepository) UpsertQuizAttempt(ctx context.Context, studentID, chapterID string, result models.QuizResult) error {
	const query = `INSERT INTO quiz_attempts (student_id, chapter_id, score, total_questions, passed, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (student_id, chapter_id)
		DO UPDATE SET score = EXCLUDED.score, total_questions = EXCLUDED.total_questions, passed = EXCLUDED.passed, completed_at = EXCLUDED.completed_at`
	if _, err := r.db.ExecContext(ctx, query, studentID, chapterID, result.Score, result.TotalQuestions, result.Passed, result.CompletedAt); err != nil {
		return fmt.Errorf("upsert quiz attempt: %w", err)
	}
	return nil
}

// ListQuizAttempts returns the latest result per chapter for a student.
func (r *EntitlementRepository) ListQuizAttempts(ctx context.Context, studentID string) (map[string]models.QuizResult, error) {
	const query = `SELECT chapter_id, score, total_questions, passed, completed_at FROM quiz_attempts WHERE student_id = $1`
	var rows []quizAttemptRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list quiz attempts: %w", err)
	}
	attempts := make(map[string]models.QuizResult, len(rows))
	for _, row := range rows {
		attempts[row.ChapterID] = row.QuizResult
	}
	return attempts, nil
}

// AddBookmark inserts a bookmark and returns the stored record.
func (r *EntitlementRepository) AddBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	if bookmark.ID == "" {
		bookmark.ID = uuid.NewString()
	}
	if bookmark.CreatedAt.IsZero() {
		bookmark.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO bookmarks (id, student_id, chapter_id, video_timestamp, note, created_at) VALUES (:id, :student_id, :chapter_id, :video_timestamp, :note, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, bookmark); err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

// DeleteBookmark removes a bookmark by id, scoped to its owner. Returns
// whether a row was deleted.
func (r *EntitlementRepository) DeleteBookmark(ctx context.Context, studentID, bookmarkID string) (bool, error) {
	const query = `DELETE FROM bookmarks WHERE id = $1 AND student_id = $2`
	res, err := r.db.ExecContext(ctx, query, bookmarkID, studentID)
	if err != nil {
		return false, fmt.Errorf("delete bookmark: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete bookmark: %w", err)
	}
	return affected > 0, nil
}

// ListBookmarks returns a student's bookmarks oldest first.
func (r *EntitlementRepository) ListBookmarks(ctx context.Context, studentID string) ([]models.Bookmark, error) {
	const query = `SELECT id, student_id, chapter_id, video_timestamp, note, created_at FROM bookmarks WHERE student_id = $1 ORDER BY created_at`
	var bookmarks []models.Bookmark
	if err := r.db.SelectContext(ctx, &bookmarks, query, studentID); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}
