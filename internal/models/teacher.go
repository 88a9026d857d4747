package models

import "time"

// TeacherID is the fixed identifier of the single teacher account. The
// teacher is not a students row: it is synthesized at login from the
// credential singleton and the editable profile.
const TeacherID = "teacher-1"

// TeacherAuth is the singleton credential record for the teacher account.
type TeacherAuth struct {
	ID           int       `db:"id" json:"-"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// TeacherProfile is the editable public profile shown on the landing page.
type TeacherProfile struct {
	ID             int       `db:"id" json:"-"`
	Name           string    `db:"name" json:"name"`
	Bio            string    `db:"bio" json:"bio"`
	Image          string    `db:"image" json:"image"`
	Qualifications string    `db:"qualifications" json:"qualifications"`
	Experience     string    `db:"experience" json:"experience"`
	StudentsCount  string    `db:"students_count" json:"students_count"`
	LecturesCount  string    `db:"lectures_count" json:"lectures_count"`
	Rating         string    `db:"rating" json:"rating"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// UpdateTeacherProfileRequest is the payload for profile edits.
type UpdateTeacherProfileRequest struct {
	Name           string `json:"name" validate:"required"`
	Bio            string `json:"bio" validate:"required"`
	Image          string `json:"image" validate:"omitempty,url"`
	Qualifications string `json:"qualifications"`
	Experience     string `json:"experience"`
	StudentsCount  string `json:"students_count"`
	LecturesCount  string `json:"lectures_count"`
	Rating         string `json:"rating"`
}
