package impl

import (
	"io"
	"log/slog"
	"time"

	"saasadmin/config"
	"saasadmin/internal/domain/entity"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{
			Access:  "test_access_secret_key_very_long_for_testing",
			Refresh: "test_refresh_secret_key_very_long_for_testing",
		},
		Token: &config.TokenConfig{
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 7 * 24 * time.Hour,
			Issuer:     "saasadmin-test",
		},
		Auth:             &config.AuthConfig{BcryptCost: 4},
		PasswordStrength: &config.PasswordStrengthConfig{MinLength: 6, MaxLength: 72},
		Directory:        &config.DirectoryConfig{DefaultLimit: 10, MaxLimit: 100},
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}

func newUserView(id int64, role string, tenantID *int64, status entity.UserStatus) entity.UserView {
	return entity.UserView{
		User: entity.User{
			ID:       id,
			Email:    "user@example.com",
			Status:   status,
			TenantID: tenantID,
		},
		RoleName: role,
	}
}

func newResolvedIdentity(id int64, role string, tenantID *int64, grants map[string][]string) *entity.ResolvedIdentity {
	return &entity.ResolvedIdentity{
		UserView:    newUserView(id, role, tenantID, entity.UserStatusActive),
		Permissions: entity.NewPermissions(grants),
	}
}

// fakeClock is a settable service.Clock.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
