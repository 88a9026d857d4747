package models

import "time"

// VerificationCode is the pending email verification record for one address.
// At most one code is pending per email; issuing a new one overwrites it.
// The code is consumed (deleted) on successful verification and is invalid
// after expiry whether or not it was ever used.
type VerificationCode struct {
	Email     string    `db:"email" json:"email"`
	Code      string    `db:"code" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}

// Expired reports whether the code is past its expiry at the given instant.
func (v VerificationCode) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
