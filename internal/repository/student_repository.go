package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
)

// StudentRepository provides database access for student accounts.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new instance of StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, name, email, password_hash, is_verified, session_token, class_level, last_login, created_at, updated_at`

// FindByEmail returns a student by email address.
func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE email = $1 LIMIT 1`, studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student by email: %w", err)
	}
	return &student, nil
}

// FindByID returns a student by identifier.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE id = $1 LIMIT 1`, studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student by id: %w", err)
	}
	return &student, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now

	const query = `INSERT INTO students (id, name, email, password_hash, is_verified, session_token, class_level, last_login, created_at, updated_at) VALUES (:id, :name, :email, :password_hash, :is_verified, :session_token, :class_level, :last_login, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// MarkVerified flips is_verified for the student with the given email.
func (r *StudentRepository) MarkVerified(ctx context.Context, email string, ts time.Time) (bool, error) {
	const query = `UPDATE students SET is_verified = TRUE, updated_at = $2 WHERE email = $1`
	res, err := r.db.ExecContext(ctx, query, email, ts)
	if err != nil {
		return false, fmt.Errorf("mark student verified: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark student verified: %w", err)
	}
	return affected > 0, nil
}

// UpdateDetails writes the student-editable profile fields.
func (r *StudentRepository) UpdateDetails(ctx context.Context, id, name string, classLevel int, ts time.Time) error {
	const query = `UPDATE students SET name = $2, class_level = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, name, classLevel, ts); err != nil {
		return fmt.Errorf("update student details: %w", err)
	}
	return nil
}

// UpdatePassword updates the stored password hash.
func (r *StudentRepository) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	const query = `UPDATE students SET password_hash = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, passwordHash, updatedAt); err != nil {
		return fmt.Errorf("update student password: %w", err)
	}
	return nil
}

// UpdateSessionToken writes a fresh session token and last-login timestamp.
// The previous token, wherever it lives, stops validating from this point on.
func (r *StudentRepository) UpdateSessionToken(ctx context.Context, id, token string, ts time.Time) error {
	const query = `UPDATE students SET session_token = $2, last_login = $3, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, token, ts); err != nil {
		return fmt.Errorf("update session token: %w", err)
	}
	return nil
}

// ClearSessionToken logs the student out everywhere.
func (r *StudentRepository) ClearSessionToken(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE students SET session_token = NULL, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, ts); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

// List returns students matching the filter with a total count.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	baseQuery := `FROM students WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Verified != nil {
		conditions = append(conditions, fmt.Sprintf("is_verified = $%d", len(args)+1))
		args = append(args, *filter.Verified)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(email) LIKE $%d OR LOWER(name) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"email":      true,
		"name":       true,
		"created_at": true,
		"last_login": true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "created_at"
	}

	sortOrder := strings.ToUpper(filter.SortOrder)
	if sortOrder != "ASC" && sortOrder != "DESC" {
		sortOrder = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", studentColumns, baseQuery, sortBy, sortOrder, pageSize, offset)

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}

	return students, total, nil
}

// Roster returns students joined with aggregate entitlement counts, for the
// teacher dashboard and exports.
func (r *StudentRepository) Roster(ctx context.Context) ([]models.RosterEntry, error) {
	const query = `
		SELECT s.id, s.name, s.email, s.is_verified, s.last_login, s.created_at,
			COALESCE(pc.n, 0) AS chapters_purchased,
			COALESCE(co.n, 0) AS courses_purchased,
			COALESCE(tp.n, 0) AS topics_watched,
			COALESCE(qa.n, 0) AS quizzes_passed
		FROM students s
		LEFT JOIN (SELECT student_id, COUNT(*) AS n FROM purchases WHERE item_type = 'CHAPTER' GROUP BY student_id) pc ON pc.student_id = s.id
		LEFT JOIN (SELECT student_id, COUNT(*) AS n FROM purchases WHERE item_type = 'COURSE' GROUP BY student_id) co ON co.student_id = s.id
		LEFT JOIN (SELECT student_id, COUNT(*) AS n FROM topic_progress GROUP BY student_id) tp ON tp.student_id = s.id
		LEFT JOIN (SELECT student_id, COUNT(*) AS n FROM quiz_attempts WHERE passed GROUP BY student_id) qa ON qa.student_id = s.id
		ORDER BY s.created_at DESC`
	var entries []models.RosterEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return entries, nil
}
