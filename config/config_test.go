package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
env:
  env: test
  serviceName: saasadmin
  log:
    level: debug
http:
  port: 8080
secretKey:
  access: access-secret-for-tests-0001
  refresh: refresh-secret-for-tests-0001
token:
  accessTTL: 5m
  refreshTTL: 48h
`

func TestLoadWithEnv_ReadsYAMLAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testConfigYAML), 0o600))
	t.Chdir(dir)
	t.Setenv("SECRETKEY_REFRESH", "refresh-secret-from-env-0002")
	t.Setenv("TOKEN_ACCESSTTL", "2m")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "saasadmin", cfg.Env.ServiceName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "access-secret-for-tests-0001", cfg.SecretKey.Access)
	assert.Equal(t, "refresh-secret-from-env-0002", cfg.SecretKey.Refresh)
	require.NotNil(t, cfg.Token)
	assert.Equal(t, 2*time.Minute, cfg.Token.AccessTTL)
	assert.Equal(t, 48*time.Hour, cfg.Token.RefreshTTL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.yaml not found")
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, 15*time.Minute, cfg.Token.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Token.RefreshTTL)
	assert.Equal(t, defaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, 6, cfg.PasswordStrength.MinLength)
	assert.Equal(t, 72, cfg.PasswordStrength.MaxLength)
	assert.Equal(t, time.Hour, cfg.TokenCleanup.Interval)
	assert.Equal(t, 10, cfg.Directory.DefaultLimit)
	assert.Equal(t, 100, cfg.Directory.MaxLimit)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.SecretKey.Access = "access-secret-for-tests-0001"
		cfg.SecretKey.Refresh = "refresh-secret-for-tests-0001"
		cfg.applyDefaults()

		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing access", mutate: func(c *Config) { c.SecretKey.Access = "" }, wantErr: "must both be set"},
		{name: "missing refresh", mutate: func(c *Config) { c.SecretKey.Refresh = "  " }, wantErr: "must both be set"},
		{name: "shared secret", mutate: func(c *Config) { c.SecretKey.Refresh = c.SecretKey.Access }, wantErr: "must differ"},
		{name: "short secret", mutate: func(c *Config) { c.SecretKey.Access = "short" }, wantErr: "at least 16"},
		{name: "ttl order", mutate: func(c *Config) { c.Token.AccessTTL = c.Token.RefreshTTL }, wantErr: "shorter than"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
