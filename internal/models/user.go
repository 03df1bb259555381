package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin      UserRole = "Admin"
	RoleSupervisor UserRole = "Supervisor"
	RoleInspector  UserRole = "Inspector"
)

// User represents an application user stored in the users table. Users are
// immutable from this API's perspective; they are referenced by inspections
// (assignee, creator), reports (reporter) and attachments (uploader).
type User struct {
	ID           int64     `db:"user_id" json:"user_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Pagination contains the page window applied to a list query.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}
