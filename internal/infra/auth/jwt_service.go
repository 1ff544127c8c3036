// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"time"

	"saasadmin/config"
	"saasadmin/internal/domain/entity"
	"saasadmin/internal/domain/service"
	"saasadmin/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// tokenClaims is the payload of both token classes.
type tokenClaims struct {
	UserID int64  `json:"userId"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the CredentialCodec interface using the JWT standard.
type jwtService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	clock         service.Clock
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config, clock service.Clock) (service.CredentialCodec, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.SecretKey.Access == cfg.SecretKey.Refresh {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if cfg.Token == nil || cfg.Token.AccessTTL <= 0 || cfg.Token.RefreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be configured")
	}

	return &jwtService{
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		accessTTL:     cfg.Token.AccessTTL,
		refreshTTL:    cfg.Token.RefreshTTL,
		issuer:        cfg.Token.Issuer,
		clock:         clock,
	}, nil
}

// IssueAccess signs a short-lived access token.
func (s *jwtService) IssueAccess(subjectID int64) (string, error) {
	token, _, err := s.issue(subjectID, entity.TokenClassAccess)

	return token, err
}

// IssueRefresh signs a long-lived refresh token with the refresh secret.
func (s *jwtService) IssueRefresh(subjectID int64) (string, time.Time, error) {
	return s.issue(subjectID, entity.TokenClassRefresh)
}

// Verify validates signature first, then class, then expiry against the injected clock.
func (s *jwtService) Verify(tokenString string, class entity.TokenClass) (int64, error) {
	secret, _, err := s.keyFor(class)
	if err != nil {
		return 0, err
	}

	claims := &tokenClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, errors.Wrap(service.ErrTokenExpired, err.Error())
		}

		return 0, errors.Wrap(service.ErrTokenMalformed, err.Error())
	}

	if claims.Type != class.String() {
		return 0, errors.Wrapf(service.ErrTokenMalformed, "expected %s token, got %q", class, claims.Type)
	}
	if claims.UserID <= 0 || claims.Subject != strconv.FormatInt(claims.UserID, 10) {
		return 0, errors.Wrap(service.ErrTokenMalformed, "subject missing or inconsistent")
	}

	return claims.UserID, nil
}

func (s *jwtService) issue(subjectID int64, class entity.TokenClass) (string, time.Time, error) {
	secret, ttl, err := s.keyFor(class)
	if err != nil {
		return "", time.Time{}, err
	}

	now := s.clock.Now()
	expiresAt := now.Add(ttl)

	claims := tokenClaims{
		UserID: subjectID,
		Type:   class.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        ulid.Make().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, errors.Wrapf(err, "failed to sign %s token", class)
	}

	// The encoded expiry has second precision; report what the token actually carries.
	return signed, claims.ExpiresAt.Time, nil
}

func (s *jwtService) keyFor(class entity.TokenClass) ([]byte, time.Duration, error) {
	switch class {
	case entity.TokenClassAccess:
		return s.accessSecret, s.accessTTL, nil
	case entity.TokenClassRefresh:
		return s.refreshSecret, s.refreshTTL, nil
	default:
		return nil, 0, errors.Errorf("unknown token class %q", class)
	}
}
