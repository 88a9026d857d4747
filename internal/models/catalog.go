package models

import "time"

// Full-course product identifiers, one per class level.
const (
	CourseClass11ID = "phys-11-complete"
	CourseClass12ID = "phys-12-complete"
)

// CourseIDForClassLevel maps a chapter's class level to the full-course
// product that unlocks it.
func CourseIDForClassLevel(level int) string {
	switch level {
	case 11:
		return CourseClass11ID
	case 12:
		return CourseClass12ID
	default:
		return ""
	}
}

// Course is a purchasable full-course product.
type Course struct {
	ID          string `db:"id" json:"id"`
	ClassLevel  int    `db:"class_level" json:"class_level"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	Price       int    `db:"price" json:"price"`
}

// Chapter is a purchasable unit of the catalog, made up of ordered topics.
type Chapter struct {
	ID          string  `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Description string  `db:"description" json:"description"`
	Price       int     `db:"price" json:"price"`
	Duration    string  `db:"duration" json:"duration"`
	ClassLevel  int     `db:"class_level" json:"class_level"`
	Topics      []Topic `json:"topics"`
}

// Topic is the smallest unit of video content; progress is tracked per topic.
type Topic struct {
	ID        string `db:"id" json:"id"`
	ChapterID string `db:"chapter_id" json:"-"`
	Title     string `db:"title" json:"title"`
	VideoURL  string `db:"video_url" json:"video_url"`
	Duration  string `db:"duration" json:"duration"`
	Position  int    `db:"position" json:"-"`
}

// UpdateTopicVideoRequest swaps the video behind a single topic.
type UpdateTopicVideoRequest struct {
	VideoURL string `json:"video_url" validate:"required"`
}

// Note is supplementary study material, either inline text or a linked PDF.
type Note struct {
	ID         string    `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Content    string    `db:"content" json:"content,omitempty"`
	URL        string    `db:"url" json:"url,omitempty"`
	Type       string    `db:"type" json:"type"`
	ClassLevel int       `db:"class_level" json:"class_level"`
	ChapterID  *string   `db:"chapter_id" json:"chapter_id,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Note types.
const (
	NoteTypeText = "TEXT"
	NoteTypePDF  = "PDF"
)

// CreateNoteRequest is the payload for adding a note.
type CreateNoteRequest struct {
	Title      string  `json:"title" validate:"required"`
	Content    string  `json:"content"`
	URL        string  `json:"url" validate:"omitempty,url"`
	Type       string  `json:"type" validate:"required,oneof=TEXT PDF"`
	ClassLevel int     `json:"class_level" validate:"required,oneof=11 12"`
	ChapterID  *string `json:"chapter_id"`
}

// Announcement is a teacher-authored broadcast message.
type Announcement struct {
	ID         string    `db:"id" json:"id"`
	Content    string    `db:"content" json:"content"`
	AuthorName string    `db:"author_name" json:"author_name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// CreateAnnouncementRequest is the payload for posting an announcement.
type CreateAnnouncementRequest struct {
	Content string `json:"content" validate:"required"`
}
