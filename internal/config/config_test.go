package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validYAML = `
server:
  port: 8080
database:
  url: postgres://localhost/hobbyhive
email:
  smtp_host: smtp.example.com
  smtp_port: 587
  from_email: no-reply@example.com
tokens:
  access_secret: a-secret
  access_expiry: 15m
  refresh_secret: r-secret
  refresh_expiry: 720h
`

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, validYAML)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "postgres://localhost/hobbyhive", cfg.Database.DSN)
	require.Equal(t, "a-secret", cfg.Tokens.AccessSecret)
	require.Equal(t, 15*time.Minute, cfg.Tokens.AccessExpiry)
	require.Equal(t, 720*time.Hour, cfg.Tokens.RefreshExpiry)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, validYAML)

	t.Setenv("ACCESS_TOKEN_SECRET", "env-access")
	t.Setenv("REFRESH_TOKEN_SECRET", "env-refresh")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "5m")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "24h")
	t.Setenv("DATABASE_URL", "postgres://env/db")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "env-access", cfg.Tokens.AccessSecret)
	require.Equal(t, "env-refresh", cfg.Tokens.RefreshSecret)
	require.Equal(t, 5*time.Minute, cfg.Tokens.AccessExpiry)
	require.Equal(t, 24*time.Hour, cfg.Tokens.RefreshExpiry)
	require.Equal(t, "postgres://env/db", cfg.Database.DSN)
}

func TestLoadConfig_MissingSecretIsFatal(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "") // the environment must not rescue the config
	path := writeConfig(t, `
server:
  port: 8080
tokens:
  access_secret: ""
  access_expiry: 15m
  refresh_secret: r-secret
  refresh_expiry: 720h
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "access secret")
}

func TestLoadConfig_BadExpiryEnv(t *testing.T) {
	path := writeConfig(t, validYAML)
	t.Setenv("ACCESS_TOKEN_EXPIRY", "not-a-duration")

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
