package models

import "time"

// RosterEntry is one row of the teacher-facing student roster, a student
// joined with aggregate entitlement and progress counts.
type RosterEntry struct {
	ID                string     `db:"id" json:"id"`
	Name              string     `db:"name" json:"name"`
	Email             string     `db:"email" json:"email"`
	IsVerified        bool       `db:"is_verified" json:"is_verified"`
	LastLogin         *time.Time `db:"last_login" json:"last_login,omitempty"`
	ChaptersPurchased int        `db:"chapters_purchased" json:"chapters_purchased"`
	CoursesPurchased  int        `db:"courses_purchased" json:"courses_purchased"`
	TopicsWatched     int        `db:"topics_watched" json:"topics_watched"`
	QuizzesPassed     int        `db:"quizzes_passed" json:"quizzes_passed"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
}
