// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"saasadmin/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// RefreshInput carries the refresh token presented by the client.
type RefreshInput struct {
	RefreshToken string
}

// LogoutInput identifies the session to end. An empty RefreshToken is a no-op.
type LogoutInput struct {
	SubjectID    int64
	RefreshToken string
}

// ChangePasswordInput defines the data required to replace a password.
type ChangePasswordInput struct {
	SubjectID       int64
	CurrentPassword string
	NewPassword     string
}

// --- Output DTOs ---

// LoginOutput returns the resolved caller and both tokens after a successful login.
type LoginOutput struct {
	User                  *entity.ResolvedIdentity
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

// RefreshOutput returns a new access token. The refresh token is not rotated.
type RefreshOutput struct {
	AccessToken string
}

// MeOutput describes the current caller.
type MeOutput struct {
	User           *entity.ResolvedIdentity
	ActiveSessions int64
}

// SessionUsecase defines the credential lifecycle: login, refresh, logout and password change.
type SessionUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error
	Me(ctx context.Context, identity *entity.ResolvedIdentity) (*MeOutput, error)
}
