package database

import (
	"context"
	"database/sql"
)

// schemaStatements creates the four application tables. Statements are
// idempotent so EnsureSchema can run on every startup. bkg_time is stored
// as TIME and bkg_date as DATE; the unique keys back the idempotent slot
// bulk insert and the reference-code collision retry.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS bkgsession (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		bkg_date   DATE NOT NULL,
		bkg_time   TIME NOT NULL,
		slot_limit INT UNSIGNED NOT NULL DEFAULT 0,
		UNIQUE KEY uq_session_slot (bkg_date, bkg_time)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		ref_number  VARCHAR(16) NOT NULL,
		phone       VARCHAR(32) NOT NULL,
		email       VARCHAR(255) NOT NULL,
		family_name VARCHAR(255) NOT NULL DEFAULT '',
		table_no    INT NOT NULL DEFAULT 0,
		bkg_date    DATE NOT NULL,
		bkg_time    TIME NOT NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_booking_ref (ref_number),
		KEY idx_booking_slot (bkg_date, bkg_time)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS verification_codes (
		email      VARCHAR(255) NOT NULL PRIMARY KEY,
		otp_code   CHAR(6) NOT NULL,
		expires_at DATETIME NOT NULL,
		is_valid   TINYINT(1) NOT NULL DEFAULT 1
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS admins (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(64) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_login    DATETIME NULL,
		UNIQUE KEY uq_admin_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables. Admin rows themselves are
// provisioned with the adminctl tool.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
