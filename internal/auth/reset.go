package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/marcus-gray/budgetapp/internal/auth/tokenvault"
	"github.com/marcus-gray/budgetapp/internal/models"
)

// RequestPasswordReset issues a reset token for the account matching the
// identifier. The result shape is identical whether or not the account
// exists: same success flag, same message, and the token field is simply
// empty for unknown accounts. Account existence must not leak through this
// path.
func (s *Service) RequestPasswordReset(ctx context.Context, identifier string) TokenResult {
	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return TokenResult{OK: true, Message: msgResetRequestAccepted}
		}
		s.log.Error("user lookup failed", zap.Error(err))
		return TokenResult{Message: msgResetRequestFailed}
	}

	token, err := s.resetVault.Issue(tokenvault.Record{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		s.log.Error("reset token issuance failed", zap.Error(err))
		return TokenResult{Message: msgResetRequestFailed}
	}

	return TokenResult{OK: true, Message: msgResetRequestAccepted, Token: token}
}

// ValidateResetToken checks a reset token without consuming it and re-fetches
// the owning user, so a token issued for a since-deleted account reads as
// invalid.
func (s *Service) ValidateResetToken(ctx context.Context, token string) UserResult {
	rec, err := s.resetVault.Validate(token)
	if err != nil {
		return UserResult{Message: resetTokenMessage(err)}
	}

	user, err := s.users.GetByID(ctx, rec.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return UserResult{Message: msgResetTokenInvalid}
		}
		s.log.Error("user lookup failed", zap.String("user_id", rec.UserID), zap.Error(err))
		return UserResult{Message: msgPasswordResetFailed}
	}

	return UserResult{OK: true, Message: msgResetTokenVerified, User: user}
}

// ResetPassword consumes a reset token and sets a new password. A successful
// reset also unlocks both the account's username and email identifiers (the
// user has re-proven control of the account) and sweeps expired entries out
// of the reset vault as a maintenance side effect.
func (s *Service) ResetPassword(ctx context.Context, token, newPW, confirm string) Result {
	rec, err := s.resetVault.Validate(token)
	if err != nil {
		return failed(resetTokenMessage(err))
	}

	if newPW != confirm {
		return failed(msgNewPasswordsDoNotMatch)
	}
	if ok, msg := ValidatePassword(newPW); !ok {
		return failed(msg)
	}

	user, err := s.users.GetByID(ctx, rec.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return failed(msgResetTokenInvalid)
		}
		s.log.Error("user lookup failed", zap.String("user_id", rec.UserID), zap.Error(err))
		return failed(msgPasswordResetFailed)
	}

	newHash, err := s.hasher.Hash(newPW)
	if err != nil {
		s.log.Error("password hashing failed", zap.Error(err))
		return failed(msgPasswordResetFailed)
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, newHash); err != nil {
		s.log.Error("password hash update failed", zap.String("user_id", user.ID), zap.Error(err))
		return failed(msgPasswordResetFailed)
	}

	if err := s.resetVault.Consume(token); err != nil {
		// Unreachable after a successful Validate in this synchronous flow.
		s.log.Warn("reset token consume failed", zap.Error(err))
	}

	s.lockouts.Unlock(rec.Username)
	s.lockouts.Unlock(rec.Email)
	s.resetVault.Sweep()

	return succeeded(msgPasswordReset)
}

func resetTokenMessage(err error) string {
	switch {
	case errors.Is(err, tokenvault.ErrExpired):
		return msgResetTokenExpired
	case errors.Is(err, tokenvault.ErrUsed):
		return msgResetTokenUsed
	default:
		return msgResetTokenInvalid
	}
}
