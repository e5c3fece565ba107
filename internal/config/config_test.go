package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "budget.db", cfg.DatabasePath)
	assert.Equal(t, 5, cfg.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LockoutDuration)
	assert.Equal(t, time.Hour, cfg.ResetTokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.BypassTokenTTL)
	assert.Equal(t, 8*time.Hour, cfg.SessionTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BUDGETAPP_DB_PATH", "/tmp/test.db")
	t.Setenv("BUDGETAPP_MAX_LOGIN_ATTEMPTS", "3")
	t.Setenv("BUDGETAPP_LOCKOUT_MINUTES", "5")

	cfg := Load()

	assert.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	assert.Equal(t, 3, cfg.MaxLoginAttempts)
	assert.Equal(t, 5*time.Minute, cfg.LockoutDuration)
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("BUDGETAPP_MAX_LOGIN_ATTEMPTS", "not-a-number")
	t.Setenv("BUDGETAPP_LOCKOUT_MINUTES", "-2")

	cfg := Load()

	assert.Equal(t, 5, cfg.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LockoutDuration)
}
