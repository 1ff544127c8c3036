// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"fmt"

	"saasadmin/config"
	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/domain/service"
	"saasadmin/internal/errors"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// bcryptMaxBytes is the longest input bcrypt accepts; maxLength counts runes.
const bcryptMaxBytes = 72

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost      int
	minLength int
	maxLength int
	validate  *validator.Validate
}

// NewBcryptHasher is the constructor for bcryptHasher.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	hasher := &bcryptHasher{
		cost:      bcrypt.DefaultCost,
		minLength: 6,
		maxLength: 72,
		validate:  validator.New(),
	}
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		hasher.cost = cfg.Auth.BcryptCost
	}
	if cfg.PasswordStrength != nil {
		if cfg.PasswordStrength.MinLength > 0 {
			hasher.minLength = cfg.PasswordStrength.MinLength
		}
		if cfg.PasswordStrength.MaxLength > 0 {
			hasher.maxLength = cfg.PasswordStrength.MaxLength
		}
	}

	return hasher
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordStrength enforces the configured length bounds.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	rule := fmt.Sprintf("required,min=%d,max=%d", h.minLength, h.maxLength)

	err := h.validate.Var(password, rule)
	if err == nil {
		if len(password) > bcryptMaxBytes {
			return domainerrors.ErrWeakNewPassword.WithMessage(
				fmt.Sprintf("New password must be at most %d bytes long", bcryptMaxBytes))
		}

		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Tag() == "max" {
		return domainerrors.ErrWeakNewPassword.WithMessage(
			fmt.Sprintf("New password must be at most %d characters long", h.maxLength))
	}

	return domainerrors.ErrWeakNewPassword.WithMessage(
		fmt.Sprintf("New password must be at least %d characters long", h.minLength))
}
