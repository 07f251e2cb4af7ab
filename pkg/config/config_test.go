package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 45, cfg.Audit.WeeklyCap)
	assert.Equal(t, 3, cfg.Audit.DailyCap)
	assert.Equal(t, 5, cfg.Audit.SchoolDays)
	assert.Equal(t, "Ortaokul", cfg.Audit.Level)
	assert.Equal(t, 12*time.Hour, cfg.Wizard.SessionTTL)
	assert.False(t, cfg.Wizard.EnablePersistence)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AUDIT_WEEKLY_CAP", "40")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("ENABLE_PERSISTENCE", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Audit.WeeklyCap)
	assert.Equal(t, 30*time.Minute, cfg.Wizard.SessionTTL)
	assert.True(t, cfg.Wizard.EnablePersistence)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("nonsense", time.Minute))
	assert.Equal(t, 2*time.Second, parseDuration("2s", time.Minute))
}
