package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// AdminRepo reads administrator credentials from the admins table. Rows
// are provisioned with the adminctl tool; the HTTP surface never creates
// them.
type AdminRepo struct {
	db *sql.DB
}

// NewAdminRepo returns a new AdminRepo bound to the given database.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

// GetByUsername loads an admin credential. It returns ErrAdminNotFound
// when no row exists for the username.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	const q = `SELECT id, username, password_hash, created_at, last_login
	           FROM admins WHERE username = ?`
	var a model.Admin
	var lastLogin sql.NullTime
	err := r.db.QueryRowContext(ctx, q, username).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt, &lastLogin,
	)
	if err == sql.ErrNoRows {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		a.LastLogin = &t
	}
	return &a, nil
}

// Upsert creates the admin account or, when the username already exists,
// replaces its password hash. It backs the adminctl provisioning tool.
func (r *AdminRepo) Upsert(ctx context.Context, username, passwordHash string) error {
	const q = `INSERT INTO admins (username, password_hash)
	           VALUES (?, ?)
	           ON DUPLICATE KEY UPDATE password_hash = VALUES(password_hash)`
	_, err := r.db.ExecContext(ctx, q, username, passwordHash)
	return err
}

// TouchLastLogin records a successful login. Failures here are not worth
// failing the login over, so callers may ignore the error.
func (r *AdminRepo) TouchLastLogin(ctx context.Context, adminID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE admins SET last_login = UTC_TIMESTAMP() WHERE id = ?`, adminID)
	return err
}
