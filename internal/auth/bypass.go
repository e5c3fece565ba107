package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/marcus-gray/budgetapp/internal/auth/tokenvault"
	"github.com/marcus-gray/budgetapp/internal/models"
)

// IssueBypassToken creates an emergency lockout-bypass token for the account
// matching the identifier. This is an administrative path: unlike the reset
// request, an unknown account is reported as such.
func (s *Service) IssueBypassToken(ctx context.Context, identifier, reason string) TokenResult {
	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return TokenResult{Message: msgUserNotFound}
		}
		s.log.Error("user lookup failed", zap.Error(err))
		return TokenResult{Message: msgUnlockTokenFailed}
	}

	token, err := s.bypassVault.Issue(tokenvault.Record{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Reason:   reason,
	})
	if err != nil {
		s.log.Error("bypass token issuance failed", zap.Error(err))
		return TokenResult{Message: msgUnlockTokenFailed}
	}

	s.log.Info("emergency unlock token issued",
		zap.String("user_id", user.ID),
		zap.String("reason", reason))

	return TokenResult{OK: true, Message: msgUnlockTokenIssued, Token: token}
}

// ConsumeBypassToken redeems a bypass token and unlocks both identifiers the
// account can be typed as.
func (s *Service) ConsumeBypassToken(ctx context.Context, token string) Result {
	rec, err := s.bypassVault.Validate(token)
	if err != nil {
		switch {
		case errors.Is(err, tokenvault.ErrExpired):
			return failed(msgUnlockTokenExpired)
		case errors.Is(err, tokenvault.ErrUsed):
			return failed(msgUnlockTokenUsed)
		default:
			return failed(msgUnlockTokenInvalid)
		}
	}

	if err := s.bypassVault.Consume(token); err != nil {
		s.log.Warn("bypass token consume failed", zap.Error(err))
	}

	s.lockouts.Unlock(rec.Username)
	s.lockouts.Unlock(rec.Email)

	s.log.Info("emergency unlock applied",
		zap.String("user_id", rec.UserID),
		zap.String("reason", rec.Reason))

	return succeeded(msgAccountUnlocked)
}

// EmergencyUnlockAll clears every failure counter and active lock. Returns
// the number of locks that were active.
func (s *Service) EmergencyUnlockAll(reason string) (Result, int) {
	count := s.lockouts.UnlockAll()

	s.log.Info("emergency unlock of all identifiers",
		zap.Int("cleared", count),
		zap.String("reason", reason))

	return succeeded(fmt.Sprintf("Cleared %d active lockouts", count)), count
}
