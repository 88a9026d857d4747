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

func newVerificationRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestVerificationRepositoryUpsertAndFind(t *testing.T) {
	db, mock, cleanup := newVerificationRepoMock(t)
	defer cleanup()

	repo := NewVerificationRepository(db)
	expires := time.Now().UTC().Add(10 * time.Minute)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO verification_codes")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Upsert(context.Background(), &models.VerificationCode{
		Email:     "asha@example.com",
		Code:      "123456",
		ExpiresAt: expires,
	}))

	rows := sqlmock.NewRows([]string{"email", "code", "expires_at"}).
		AddRow("asha@example.com", "123456", expires)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT email, code, expires_at FROM verification_codes WHERE email = $1")).
		WithArgs("asha@example.com").
		WillReturnRows(rows)

	code, err := repo.FindByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	require.Equal(t, "123456", code.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationRepositoryFindMissing(t *testing.T) {
	db, mock, cleanup := newVerificationRepoMock(t)
	defer cleanup()

	repo := NewVerificationRepository(db)
	mock.ExpectQuery("SELECT email, code, expires_at FROM verification_codes").
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newVerificationRepoMock(t)
	defer cleanup()

	repo := NewVerificationRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM verification_codes WHERE email = $1")).
		WithArgs("asha@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "asha@example.com"))
	require.NoError(t, mock.ExpectationsWereMet())
}
