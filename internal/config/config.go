// Package config loads application settings from the environment, with an
// optional .env file for local runs.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings read at startup.
type Config struct {
	// DatabasePath is the SQLite file location.
	DatabasePath string

	// MaxLoginAttempts and LockoutDuration tune the failed-login lockout.
	MaxLoginAttempts int
	LockoutDuration  time.Duration

	// ResetTokenTTL and BypassTokenTTL bound token lifetimes.
	ResetTokenTTL  time.Duration
	BypassTokenTTL time.Duration

	// SessionTimeout is the idle bound for session-expiry queries.
	SessionTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DatabasePath:     envOrDefault("BUDGETAPP_DB_PATH", "budget.db"),
		MaxLoginAttempts: envIntOrDefault("BUDGETAPP_MAX_LOGIN_ATTEMPTS", 5),
		LockoutDuration:  envMinutesOrDefault("BUDGETAPP_LOCKOUT_MINUTES", 15),
		ResetTokenTTL:    envMinutesOrDefault("BUDGETAPP_RESET_TOKEN_MINUTES", 60),
		BypassTokenTTL:   envMinutesOrDefault("BUDGETAPP_BYPASS_TOKEN_MINUTES", 30),
		SessionTimeout:   envMinutesOrDefault("BUDGETAPP_SESSION_TIMEOUT_MINUTES", 480),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envMinutesOrDefault(key string, fallback int) time.Duration {
	return time.Duration(envIntOrDefault(key, fallback)) * time.Minute
}
