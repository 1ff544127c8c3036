// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// UserStatus is the lifecycle state of an account. Only active accounts may authenticate.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// IsActive reports whether the status permits authentication.
func (s UserStatus) IsActive() bool {
	return s == UserStatusActive
}

// User is an account as stored, without any credential material.
type User struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Phone     string     `json:"phone,omitempty"`
	Status    UserStatus `json:"status"`
	RoleID    *int64     `json:"role_id"`
	TenantID  *int64     `json:"tenant_id"` // nil for platform-level accounts
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Credential is the login material for a user. It never leaves the usecase layer.
type Credential struct {
	UserID       int64
	Email        string
	PasswordHash string
	Status       UserStatus
}

// UserView is a user joined with the display names of its role and tenant.
type UserView struct {
	User

	RoleName   string `json:"role_name"`
	TenantName string `json:"tenant_name,omitempty"`
	TenantSlug string `json:"tenant_slug,omitempty"`
}

// ResolvedIdentity is the caller of a request, materialized fresh from storage.
type ResolvedIdentity struct {
	UserView

	Permissions Permissions `json:"permissions"`
}
