package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/marcus-gray/budgetapp/internal/models"
)

// Login authenticates a raw username-or-email identifier. The lockout check
// runs before any store access; a locked identifier is refused without
// revealing whether the account exists. Failures increment the
// identifier-keyed counter (the string as typed, so username and email
// counters are independent); success resets it and replaces the current
// session.
func (s *Service) Login(ctx context.Context, identifier, pw string) UserResult {
	if identifier == "" || pw == "" {
		return UserResult{Message: msgLoginRequired}
	}

	if locked, remaining := s.lockouts.IsLocked(identifier); locked {
		return UserResult{Message: fmt.Sprintf("Account locked. Try again in %s", formatRemaining(remaining))}
	}

	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		s.log.Error("user lookup failed", zap.Error(err))
		return UserResult{Message: msgLoginFailed}
	}

	if user == nil || !s.hasher.Verify(pw, user.PasswordHash) {
		return UserResult{Message: s.failLogin(identifier)}
	}

	s.lockouts.ResetAttempts(identifier)
	s.maybeUpgradeHash(ctx, user, pw)
	s.setSession(user)

	return UserResult{
		OK:      true,
		Message: fmt.Sprintf("Welcome back, %s!", user.Username),
		User:    user,
	}
}

// failLogin records the failed attempt and picks the message: remaining
// attempts while below the threshold, the lockout notice once the attempt
// that just happened crossed it.
func (s *Service) failLogin(identifier string) string {
	count := s.lockouts.RecordFailure(identifier)
	remaining := s.cfg.MaxLoginAttempts - count
	if remaining > 0 {
		return fmt.Sprintf("%s. %d attempts remaining", msgInvalidLogin, remaining)
	}

	s.log.Info("account locked after repeated failures",
		zap.String("identifier", identifier),
		zap.Duration("duration", s.cfg.LockoutDuration))
	return msgAccountNowLocked
}

// maybeUpgradeHash re-hashes a verified password when the stored digest was
// produced with weaker parameters. Best effort: any failure is logged and the
// login proceeds with the old hash.
func (s *Service) maybeUpgradeHash(ctx context.Context, user *models.User, pw string) {
	if !s.cfg.UpgradeOnLogin {
		return
	}

	needs, err := s.hasher.NeedsUpgrade(user.PasswordHash)
	if err != nil || !needs {
		return
	}

	newHash, err := s.hasher.Hash(pw)
	if err != nil {
		s.log.Warn("password hash upgrade generation failed", zap.Error(err))
		return
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, newHash); err != nil {
		s.log.Warn("password hash upgrade update failed", zap.Error(err))
		return
	}
	user.PasswordHash = newHash
}

// formatRemaining renders a countdown as "Xm Ys", dropping the minutes
// component when zero. Sub-second remainders round up so the UI never shows
// "0s" on a live lock.
func formatRemaining(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 0 {
		secs = 0
	}
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm %ds", secs/60, secs%60)
}
