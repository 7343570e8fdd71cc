package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 2, cfg.ShutdownTimeoutInSeconds)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "prod", cfg.Log.Env)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 20.0, cfg.RateLimitRPS)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.Zero(t, cfg.HSTSMaxAge)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.Tasks.CleanupInterval)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.Audit.CleanupSchedule)
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/tmp/catalog.db")
	t.Setenv("LOG_ENV", "dev")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("TASKS_ENABLED", "false")
	t.Setenv("TASK_RELEASE_AFTER", "90s")
	t.Setenv("AUDIT_CLEANUP_SCHEDULE", "off")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.Port)
	assert.Equal(t, "/tmp/catalog.db", cfg.Database.Path)
	assert.Equal(t, "dev", cfg.Log.Env)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.False(t, cfg.Tasks.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Tasks.ReleaseAfter)
	assert.Empty(t, cfg.Audit.CleanupSchedule)
}
