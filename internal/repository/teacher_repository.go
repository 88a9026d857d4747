package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
)

// TeacherRepository manages the teacher credential and profile singletons.
// Both tables hold exactly one row, seeded by migrations and overwritten in
// place on change.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository creates a new instance of TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// GetAuth returns the teacher credential record.
func (r *TeacherRepository) GetAuth(ctx context.Context) (*models.TeacherAuth, error) {
	const query = `SELECT id, email, password_hash, updated_at FROM teacher_auth WHERE id = 1`
	var auth models.TeacherAuth
	if err := r.db.GetContext(ctx, &auth, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get teacher auth: %w", err)
	}
	return &auth, nil
}

// EnsureAuth inserts the teacher credential singleton if it does not exist
// yet. The migration seed leaves the row absent so first boot can install the
// configured credentials; an existing row is never touched.
func (r *TeacherRepository) EnsureAuth(ctx context.Context, email, passwordHash string, ts time.Time) error {
	const query = `
		INSERT INTO teacher_auth (id, email, password_hash, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, email, passwordHash, ts); err != nil {
		return fmt.Errorf("ensure teacher auth: %w", err)
	}
	return nil
}

// UpdateAuthPassword overwrites the teacher password hash.
func (r *TeacherRepository) UpdateAuthPassword(ctx context.Context, passwordHash string, ts time.Time) error {
	const query = `UPDATE teacher_auth SET password_hash = $1, updated_at = $2 WHERE id = 1`
	if _, err := r.db.ExecContext(ctx, query, passwordHash, ts); err != nil {
		return fmt.Errorf("update teacher password: %w", err)
	}
	return nil
}

// GetProfile returns the editable teacher profile.
func (r *TeacherRepository) GetProfile(ctx context.Context) (*models.TeacherProfile, error) {
	const query = `SELECT id, name, bio, image, qualifications, experience, students_count, lectures_count, rating, updated_at FROM teacher_profile WHERE id = 1`
	var profile models.TeacherProfile
	if err := r.db.GetContext(ctx, &profile, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get teacher profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile overwrites the teacher profile in place.
func (r *TeacherRepository) UpdateProfile(ctx context.Context, profile *models.TeacherProfile) error {
	profile.ID = 1
	profile.UpdatedAt = time.Now().UTC()
	const query = `UPDATE teacher_profile SET name = :name, bio = :bio, image = :image, qualifications = :qualifications, experience = :experience, students_count = :students_count, lectures_count = :lectures_count, rating = :rating, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("update teacher profile: %w", err)
	}
	return nil
}
