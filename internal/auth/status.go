package auth

import "time"

// AccountStatus is a point-in-time snapshot of the protection state attached
// to one identifier string. Reading it runs the same lazy-expiry logic as the
// login path, so a stale lock reads as cleared.
type AccountStatus struct {
	Identifier        string
	Locked            bool
	LockoutRemaining  time.Duration
	FailedAttempts    int
	AttemptsRemaining int
	LiveResetTokens   int
	LiveBypassTokens  int
}

// AccountStatus reports the lockout and live-token state for an identifier.
// Token counts match on either the username or email recorded at issuance, so
// either spelling of the same account reads the same counts.
func (s *Service) AccountStatus(identifier string) AccountStatus {
	locked, remaining := s.lockouts.IsLocked(identifier)
	attempts := s.lockouts.Attempts(identifier)

	left := s.cfg.MaxLoginAttempts - attempts
	if left < 0 {
		left = 0
	}

	return AccountStatus{
		Identifier:        identifier,
		Locked:            locked,
		LockoutRemaining:  remaining,
		FailedAttempts:    attempts,
		AttemptsRemaining: left,
		LiveResetTokens:   s.resetVault.LiveCountFor(identifier),
		LiveBypassTokens:  s.bypassVault.LiveCountFor(identifier),
	}
}
