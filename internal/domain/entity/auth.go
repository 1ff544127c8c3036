// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// RefreshToken represents a long-lived, authorized user session.
// The raw token value is never stored; only its SHA-256 digest is.
type RefreshToken struct {
	ID        int64
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TokenClass separates access tokens from refresh tokens.
type TokenClass string

const (
	TokenClassAccess  TokenClass = "access"
	TokenClassRefresh TokenClass = "refresh"
)

// String returns the claim value of the class.
func (c TokenClass) String() string {
	return string(c)
}
