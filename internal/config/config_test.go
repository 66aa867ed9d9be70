package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/internal/config"
)

// These tests mutate the process environment and working directory, so they
// do not run in parallel.

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://localhost/portfolio")
	t.Setenv("CONTACT_OWNER_EMAIL", "owner@example.com")

	cfg, err := config.Load[config.Config]()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, "sync", cfg.Contact.DeliveryMode)
	assert.Equal(t, 15*time.Minute, cfg.Contact.RateLimitWindow)
	assert.Equal(t, 5, cfg.Contact.RateLimitMax)
	assert.Equal(t, 10, cfg.Contact.NotifyMaxAttempts)
	assert.False(t, cfg.Contact.LegacyErrorStatus)
	assert.Equal(t, []string{"blog_post_view"}, cfg.Content.AllowedEvents)
	assert.Equal(t, 5*time.Minute, cfg.Content.CacheTTL)
	assert.Equal(t, 2160*time.Hour, cfg.Content.Retention)
	assert.Equal(t, "0 3 * * *", cfg.Content.PruneSchedule)
	assert.Equal(t, 10*time.Second, cfg.Resend.Timeout)
	assert.Equal(t, 10000, cfg.RateLimitMaxKeys)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_RequiredMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CONTACT_OWNER_EMAIL", "")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("CONTACT_OWNER_EMAIL")

	_, err := config.Load[config.Config]()
	require.Error(t, err)
}

func TestLoad_Dotenv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("CONTACT_DELIVERY_MODE=outbox\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("CONTACT_DELIVERY_MODE=sync\nDATABASE_URL=postgres://dotenv/db\nCONTACT_OWNER_EMAIL=o@example.com\nLOG_LEVEL=debug\n"), 0o600))

	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "warn")
	for _, k := range []string{"CONTACT_DELIVERY_MODE", "DATABASE_URL", "CONTACT_OWNER_EMAIL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := config.Load[config.Config]()
	require.NoError(t, err)

	assert.Equal(t, "outbox", cfg.Contact.DeliveryMode, "env-specific file loads first")
	assert.Equal(t, "postgres://dotenv/db", cfg.Database.ConnectionString)
	assert.Equal(t, "warn", cfg.Log.Level, "process env wins")
}

func TestLoad_MigrateSubset(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://localhost/portfolio")
	t.Setenv("CONTACT_OWNER_EMAIL", "")
	os.Unsetenv("CONTACT_OWNER_EMAIL")

	cfg, err := config.Load[config.Migrate]()
	require.NoError(t, err)
	assert.Equal(t, "schema_migrations", cfg.Database.MigrationsTable)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := config.Config{}
	valid.Contact.DeliveryMode = "sync"
	valid.Contact.RateLimitMax = 5
	valid.Contact.RateLimitWindow = time.Minute
	valid.Content.RatePerSecond = 1
	valid.Content.Burst = 1
	require.NoError(t, valid.Validate())

	bad := valid
	bad.Contact.DeliveryMode = "carrier-pigeon"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Contact.RateLimitMax = 0
	assert.Error(t, bad.Validate())
}
