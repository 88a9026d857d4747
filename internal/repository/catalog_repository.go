package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
)

// CatalogRepository reads the chapter/topic/course catalog.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListChapters returns all chapters with their topics in display order.
func (r *CatalogRepository) ListChapters(ctx context.Context) ([]models.Chapter, error) {
	const chapterQuery = `SELECT id, title, description, price, duration, class_level FROM chapters ORDER BY class_level, id`
	var chapters []models.Chapter
	if err := r.db.SelectContext(ctx, &chapters, chapterQuery); err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}

	const topicQuery = `SELECT id, chapter_id, title, video_url, duration, position FROM topics ORDER BY chapter_id, position`
	var topics []models.Topic
	if err := r.db.SelectContext(ctx, &topics, topicQuery); err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}

	byChapter := make(map[string][]models.Topic, len(chapters))
	for _, topic := range topics {
		byChapter[topic.ChapterID] = append(byChapter[topic.ChapterID], topic)
	}
	for i := range chapters {
		chapters[i].Topics = byChapter[chapters[i].ID]
	}
	return chapters, nil
}

// FindChapter returns one chapter with its topics.
func (r *CatalogRepository) FindChapter(ctx context.Context, id string) (*models.Chapter, error) {
	const query = `SELECT id, title, description, price, duration, class_level FROM chapters WHERE id = $1 LIMIT 1`
	var chapter models.Chapter
	if err := r.db.GetContext(ctx, &chapter, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find chapter: %w", err)
	}

	const topicQuery = `SELECT id, chapter_id, title, video_url, duration, position FROM topics WHERE chapter_id = $1 ORDER BY position`
	if err := r.db.SelectContext(ctx, &chapter.Topics, topicQuery, id); err != nil {
		return nil, fmt.Errorf("find chapter topics: %w", err)
	}
	return &chapter, nil
}

// ListCourses returns the full-course products.
func (r *CatalogRepository) ListCourses(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, class_level, title, description, price FROM courses ORDER BY class_level`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// FindCourse returns one course product by id.
func (r *CatalogRepository) FindCourse(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, class_level, title, description, price FROM courses WHERE id = $1 LIMIT 1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return &course, nil
}

// UpdateTopicVideo swaps the video URL behind a topic. Returns whether the
// topic existed.
func (r *CatalogRepository) UpdateTopicVideo(ctx context.Context, chapterID, topicID, videoURL string) (bool, error) {
	const query = `UPDATE topics SET video_url = $3 WHERE chapter_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query, chapterID, topicID, videoURL)
	if err != nil {
		return false, fmt.Errorf("update topic video: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update topic video: %w", err)
	}
	return affected > 0, nil
}
