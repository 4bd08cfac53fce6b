package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// OTPRepo provides access to the verification_codes table. One row exists
// per email; issuing a new code supersedes the previous one in place and
// verification consumes the code with a single conditional update, so two
// concurrent verifications of the same code cannot both succeed.
type OTPRepo struct {
	db *sql.DB
}

// NewOTPRepo returns a new OTPRepo bound to the given database.
func NewOTPRepo(db *sql.DB) *OTPRepo { return &OTPRepo{db: db} }

// Upsert stores a fresh code for the email with the given expiry and marks
// it valid regardless of v.IsValid. An existing row for the email is
// overwritten, silently discarding any prior code.
func (r *OTPRepo) Upsert(ctx context.Context, v model.VerificationCode) error {
	const q = `INSERT INTO verification_codes (email, otp_code, expires_at, is_valid)
	           VALUES (?, ?, ?, 1)
	           ON DUPLICATE KEY UPDATE otp_code = VALUES(otp_code),
	                                   expires_at = VALUES(expires_at),
	                                   is_valid = 1`
	_, err := r.db.ExecContext(ctx, q, v.Email, v.Code, v.ExpiresAt.UTC())
	return err
}

// Consume attempts to use the code for the email. The match condition
// (code equality, validity, unexpired) and the flip to invalid happen in
// one UPDATE, making the code single-use even under concurrency. It
// returns true when the code was accepted, false for every other case:
// wrong code, expired, already consumed or unknown email.
func (r *OTPRepo) Consume(ctx context.Context, email, code string) (bool, error) {
	const q = `UPDATE verification_codes
	           SET is_valid = 0
	           WHERE email = ? AND otp_code = ? AND is_valid = 1 AND expires_at > UTC_TIMESTAMP()`
	res, err := r.db.ExecContext(ctx, q, email, code)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
