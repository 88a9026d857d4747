package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
)

func newStudentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func studentRows(students ...models.Student) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "is_verified", "session_token", "class_level", "last_login", "created_at", "updated_at"})
	for _, s := range students {
		rows.AddRow(s.ID, s.Name, s.Email, s.PasswordHash, s.IsVerified, s.SessionToken, s.ClassLevel, s.LastLogin, s.CreatedAt, s.UpdatedAt)
	}
	return rows
}

func TestStudentRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, password_hash, is_verified, session_token, class_level, last_login, created_at, updated_at FROM students WHERE email = $1")).
		WithArgs("asha@example.com").
		WillReturnRows(studentRows(models.Student{
			ID: "s1", Name: "Asha", Email: "asha@example.com", IsVerified: true, CreatedAt: now, UpdatedAt: now,
		}))

	student, err := repo.FindByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	require.Equal(t, "s1", student.ID)
	require.True(t, student.IsVerified)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByEmailMissing(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	mock.ExpectQuery("SELECT .* FROM students WHERE email").
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO students")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	student := &models.Student{Name: "Asha", Email: "asha@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), student))
	require.NotEmpty(t, student.ID)
	require.False(t, student.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryMarkVerified(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	ts := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET is_verified = TRUE")).
		WithArgs("asha@example.com", ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	found, err := repo.MarkVerified(context.Background(), "asha@example.com", ts)
	require.NoError(t, err)
	require.True(t, found)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET is_verified = TRUE")).
		WithArgs("nobody@example.com", ts).
		WillReturnResult(sqlmock.NewResult(0, 0))

	found, err = repo.MarkVerified(context.Background(), "nobody@example.com", ts)
	require.NoError(t, err)
	require.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateDetails(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	ts := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET name = $2, class_level = $3")).
		WithArgs("s1", "Asha Verma", 12, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateDetails(context.Background(), "s1", "Asha Verma", 12, ts))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositorySessionTokenLifecycle(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	ts := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET session_token = $2, last_login = $3")).
		WithArgs("s1", "token-1", ts).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateSessionToken(context.Background(), "s1", "token-1", ts))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET session_token = NULL")).
		WithArgs("s1", ts).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.ClearSessionToken(context.Background(), "s1", ts))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	verified := true
	now := time.Now()

	mock.ExpectQuery("SELECT .* FROM students WHERE 1=1 AND is_verified").
		WithArgs(true, "%asha%").
		WillReturnRows(studentRows(models.Student{ID: "s1", Name: "Asha", Email: "asha@example.com", IsVerified: true, CreatedAt: now, UpdatedAt: now}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs(true, "%asha%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	students, total, err := repo.List(context.Background(), models.StudentFilter{
		Search:   "Asha",
		Verified: &verified,
		Page:     1,
		PageSize: 20,
	})
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Equal(t, 1, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryRoster(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "is_verified", "last_login", "created_at", "chapters_purchased", "courses_purchased", "topics_watched", "quizzes_passed"}).
		AddRow("s1", "Asha", "asha@example.com", true, now, now, 2, 1, 14, 3)
	mock.ExpectQuery("SELECT s.id, s.name, s.email").WillReturnRows(rows)

	entries, err := repo.Roster(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 2, entries[0].ChaptersPurchased)
	require.Equal(t, 3, entries[0].QuizzesPassed)
	require.NoError(t, mock.ExpectationsWereMet())
}
