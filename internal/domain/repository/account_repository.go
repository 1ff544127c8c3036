package repository

import (
	"context"

	"saasadmin/internal/domain/entity"

	"github.com/pkg/errors"
)

var (
	// ErrEmailTaken is returned when another account already uses the email.
	ErrEmailTaken = errors.New("email already taken")
	// ErrRoleNotFound is returned when no role row matches.
	ErrRoleNotFound = errors.New("role not found")
)

// AccountRepository writes user accounts.
type AccountRepository interface {
	// CreateUser inserts a user and returns the stored row.
	CreateUser(ctx context.Context, user *entity.NewUser) (*entity.User, error)

	// UpdateUser applies patch to the user and returns the stored row.
	UpdateUser(ctx context.Context, id int64, patch *entity.UserPatch) (*entity.User, error)

	// DeleteUser removes the user. Missing users yield ErrUserNotFound.
	DeleteUser(ctx context.Context, id int64) error

	// EmailExists reports whether any account uses email, compared case-insensitively.
	EmailExists(ctx context.Context, email string) (bool, error)

	// FindRoleByID loads a role with its grants.
	FindRoleByID(ctx context.Context, id int64) (*entity.Role, error)
}
