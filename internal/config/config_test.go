package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndEnvOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_PASSWORD", "secret")

	path := writeConfig(t, `
[database]
dbname = "scheduler"

[schedule]
timezone = "Europe/Moscow"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Contains(t, cfg.Database.DSN(), "dbname=scheduler")

	loc, err := cfg.Schedule.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	path := writeConfig(t, `
[database]
dbname = "scheduler"
`)

	_, err := Load(path)
	assert.Error(t, err)
}
