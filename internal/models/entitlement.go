package models

import "time"

// PurchaseType discriminates ledger entries.
type PurchaseType string

const (
	PurchaseTypeCourse  PurchaseType = "COURSE"
	PurchaseTypeChapter PurchaseType = "CHAPTER"
)

// Purchase is one entitlement ledger row. The composite key
// (student, type, item) gives purchases set semantics: re-purchasing is a
// no-op rather than an error.
type Purchase struct {
	StudentID   string       `db:"student_id" json:"student_id"`
	ItemType    PurchaseType `db:"item_type" json:"item_type"`
	ItemID      string       `db:"item_id" json:"item_id"`
	PurchasedAt time.Time    `db:"purchased_at" json:"purchased_at"`
}

// PurchaseRequest records a course or chapter purchase.
type PurchaseRequest struct {
	ItemType PurchaseType `json:"item_type" validate:"required,oneof=COURSE CHAPTER"`
	ItemID   string       `json:"item_id" validate:"required"`
}

// TopicProgress marks one topic as watched. Monotonic: rows are only ever
// inserted, never updated or removed.
type TopicProgress struct {
	StudentID string    `db:"student_id" json:"student_id"`
	TopicID   string    `db:"topic_id" json:"topic_id"`
	WatchedAt time.Time `db:"watched_at" json:"watched_at"`
}

// MarkWatchedRequest flags a topic as watched.
type MarkWatchedRequest struct {
	TopicID string `json:"topic_id" validate:"required"`
}

// Bookmark pins a moment in a chapter's video with a free-text note.
type Bookmark struct {
	ID             string    `db:"id" json:"id"`
	StudentID      string    `db:"student_id" json:"-"`
	ChapterID      string    `db:"chapter_id" json:"chapter_id"`
	VideoTimestamp int       `db:"video_timestamp" json:"timestamp"`
	Note           string    `db:"note" json:"note"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// AddBookmarkRequest creates a bookmark.
type AddBookmarkRequest struct {
	ChapterID string `json:"chapter_id" validate:"required"`
	Timestamp int    `json:"timestamp" validate:"min=0"`
	Note      string `json:"note"`
}

// Entitlements summarizes everything a student owns and has done, plus the
// derived set of unlocked chapters.
type Entitlements struct {
	PurchasedChapterIDs []string              `json:"purchased_chapter_ids"`
	PurchasedCourseIDs  []string              `json:"purchased_course_ids"`
	Progress            map[string]bool       `json:"progress"`
	QuizAttempts        map[string]QuizResult `json:"quiz_attempts"`
	Bookmarks           []Bookmark            `json:"bookmarks"`
	UnlockedChapterIDs  []string              `json:"unlocked_chapter_ids"`
}
