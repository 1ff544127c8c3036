package service

import (
	"time"

	"saasadmin/internal/domain/entity"

	"github.com/pkg/errors"
)

var (
	// ErrTokenExpired is returned when the current time is at or past the token expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed covers bad signatures, bad structure and the wrong token class.
	ErrTokenMalformed = errors.New("token malformed")
)

// CredentialCodec issues and verifies signed, expiring tokens.
// Access and refresh tokens are signed with independent secrets.
type CredentialCodec interface {
	// IssueAccess signs a short-lived access token for subjectID.
	IssueAccess(subjectID int64) (string, error)

	// IssueRefresh signs a long-lived refresh token and returns its expiry.
	IssueRefresh(subjectID int64) (token string, expiresAt time.Time, err error)

	// Verify checks signature, class and expiry and returns the subject.
	Verify(token string, class entity.TokenClass) (int64, error)
}
