package model

import "time"

// Admin represents an administrator credential row in the `admins` table.
// Rows are provisioned out of band; the service only reads them during
// login and touches LastLogin on success.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of provisioning.
//  LastLogin    – last successful login (null until first login).
type Admin struct {
	ID           uint64     // admins.id
	Username     string     // admins.username
	PasswordHash string     // admins.password_hash
	CreatedAt    time.Time  // admins.created_at
	LastLogin    *time.Time // admins.last_login (nullable)
}
