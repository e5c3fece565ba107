package auth

import (
	"time"

	"github.com/marcus-gray/budgetapp/internal/password"
)

// Defaults for the account-protection parameters.
const (
	defaultMaxLoginAttempts = 5
	defaultLockoutDuration  = 15 * time.Minute
	defaultResetTokenTTL    = time.Hour
	defaultBypassTokenTTL   = 30 * time.Minute
	defaultResetTokenBytes  = 24
	defaultBypassTokenBytes = 18
	defaultSessionTimeout   = 8 * time.Hour
)

// Config tunes the authentication service. The zero value is usable; any
// unset field falls back to its default.
type Config struct {
	// MaxLoginAttempts is the consecutive-failure threshold that locks an
	// identifier.
	MaxLoginAttempts int
	// LockoutDuration is how long a lock holds before it lazily expires.
	LockoutDuration time.Duration

	// ResetTokenTTL bounds the life of password-reset tokens.
	ResetTokenTTL time.Duration
	// BypassTokenTTL bounds the life of emergency-unlock tokens.
	BypassTokenTTL time.Duration
	// ResetTokenBytes and BypassTokenBytes set the random entropy carried by
	// each token kind.
	ResetTokenBytes  int
	BypassTokenBytes int

	// SessionTimeout is the idle bound reported by Session.Expired. Sessions
	// are never evicted automatically; this only drives the query.
	SessionTimeout time.Duration

	// Password holds the argon2id cost parameters.
	Password password.Config
	// UpgradeOnLogin re-hashes a verified password on login when the stored
	// digest carries weaker parameters. Best effort; never blocks login.
	UpgradeOnLogin bool
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		MaxLoginAttempts: defaultMaxLoginAttempts,
		LockoutDuration:  defaultLockoutDuration,
		ResetTokenTTL:    defaultResetTokenTTL,
		BypassTokenTTL:   defaultBypassTokenTTL,
		ResetTokenBytes:  defaultResetTokenBytes,
		BypassTokenBytes: defaultBypassTokenBytes,
		SessionTimeout:   defaultSessionTimeout,
		Password:         password.DefaultConfig(),
		UpgradeOnLogin:   true,
	}
}

func (c Config) withDefaults() Config {
	if c.MaxLoginAttempts <= 0 {
		c.MaxLoginAttempts = defaultMaxLoginAttempts
	}
	if c.LockoutDuration <= 0 {
		c.LockoutDuration = defaultLockoutDuration
	}
	if c.ResetTokenTTL <= 0 {
		c.ResetTokenTTL = defaultResetTokenTTL
	}
	if c.BypassTokenTTL <= 0 {
		c.BypassTokenTTL = defaultBypassTokenTTL
	}
	if c.ResetTokenBytes <= 0 {
		c.ResetTokenBytes = defaultResetTokenBytes
	}
	if c.BypassTokenBytes <= 0 {
		c.BypassTokenBytes = defaultBypassTokenBytes
	}
	if c.SessionTimeout <= 0 {
		c.SessionTimeout = defaultSessionTimeout
	}
	if c.Password == (password.Config{}) {
		c.Password = password.DefaultConfig()
	}
	return c
}
