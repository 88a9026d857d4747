package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/krishna45-ux/DC-Physics-3/internal/models"
)

// VerificationRepository stores pending email verification codes.
type VerificationRepository struct {
	db *sqlx.DB
}

// NewVerificationRepository creates a new instance of VerificationRepository.
func NewVerificationRepository(db *sqlx.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// Upsert stores a code for an email, replacing any pending one.
func (r *VerificationRepository) Upsert(ctx context.Context, code *models.VerificationCode) error {
	const query = `INSERT INTO verification_codes (email, code, expires_at) VALUES (:email, :code, :expires_at)
		ON CONFLICT (email) DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at`
	if _, err := r.db.NamedExecContext(ctx, query, code); err != nil {
		return fmt.Errorf("upsert verification code: %w", err)
	}
	return nil
}

// FindByEmail returns the pending code for an email, if any.
func (r *VerificationRepository) FindByEmail(ctx context.Context, email string) (*models.VerificationCode, error) {
	const query = `SELECT email, code, expires_at FROM verification_codes WHERE email = $1 LIMIT 1`
	var code models.VerificationCode
	if err := r.db.GetContext(ctx, &code, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find verification code: %w", err)
	}
	return &code, nil
}

// Delete consumes the pending code for an email.
func (r *VerificationRepository) Delete(ctx context.Context, email string) error {
	const query = `DELETE FROM verification_codes WHERE email = $1`
	if _, err := r.db.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("delete verification code: %w", err)
	}
	return nil
}
