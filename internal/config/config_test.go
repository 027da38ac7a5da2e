package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "crm.db", cfg.DB.DSN)
	assert.Equal(t, 168*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "@every 1m", cfg.Notifier.Schedule)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingSecret)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crm.yml")
	yml := "port: \"9090\"\njwt:\n  secret: from-file\ndb:\n  driver: pgx\n  dsn: postgres://localhost/crm\ncors:\n  allow_origins:\n    - http://localhost:5173\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	t.Setenv("CRM_JWT_SECRET", "from-env")
	t.Setenv("CRM_RATELIMIT_BURST", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "pgx", cfg.DB.Driver)
	assert.Equal(t, 3, cfg.Rate.Burst)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestValidate_Driver(t *testing.T) {
	cfg := &Config{JWT: JWT{Secret: "s"}, DB: DB{Driver: "mysql"}, Rate: RateLimit{RPS: 1, Burst: 1}}
	assert.Error(t, cfg.Validate())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", " ", "c"}))
}
