package model

import "time"

// VerificationCode models a row in the `verification_codes` table. At most
// one row exists per email: requesting a new code overwrites the previous
// one in place. A code is consumable once; verification flips IsValid to
// false atomically with the match check.
//
// Fields:
//  Email     – primary key, the address being verified.
//  Code      – 6-digit numeric one-time code.
//  ExpiresAt – issuance time plus the configured TTL.
//  IsValid   – false once consumed.
type VerificationCode struct {
	Email     string    // verification_codes.email
	Code      string    // verification_codes.otp_code
	ExpiresAt time.Time // verification_codes.expires_at
	IsValid   bool      // verification_codes.is_valid
}
