package models

import "time"

// UserRole distinguishes the two account types the platform knows about.
type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleTeacher UserRole = "TEACHER"
)

// Student represents a learner row in the students table. The session token,
// when present, identifies the single browser session currently authoritative
// for this account; NULL means logged out everywhere.
type Student struct {
	ID           string     `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	IsVerified   bool       `db:"is_verified" json:"is_verified"`
	SessionToken *string    `db:"session_token" json:"-"`
	ClassLevel   *int       `db:"class_level" json:"class_level,omitempty"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// User is the API-facing account snapshot: a student or the synthesized
// teacher identity, hydrated with entitlements where applicable.
type User struct {
	ID                  string                `json:"id"`
	Name                string                `json:"name"`
	Email               string                `json:"email"`
	Role                UserRole              `json:"role"`
	IsVerified          bool                  `json:"is_verified"`
	ClassLevel          *int                  `json:"class_level,omitempty"`
	PurchasedChapterIDs []string              `json:"purchased_chapter_ids"`
	PurchasedCourseIDs  []string              `json:"purchased_course_ids"`
	Progress            map[string]bool       `json:"progress"`
	QuizAttempts        map[string]QuizResult `json:"quiz_attempts"`
	Bookmarks           []Bookmark            `json:"bookmarks"`
	LastLogin           *time.Time            `json:"last_login,omitempty"`
}

// StudentFilter captures filtering criteria for the roster listing.
type StudentFilter struct {
	Search    string
	Verified  *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
