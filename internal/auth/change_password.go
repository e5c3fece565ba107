package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/marcus-gray/budgetapp/internal/models"
)

// ChangePassword rotates a logged-in user's password. The current password
// must verify, the new one must match its confirmation, pass the strength
// check, and differ from the current password (checked by verifying the new
// plaintext against the stored hash, not by comparing hashes). Success is
// reported only after the store accepts the new hash.
func (s *Service) ChangePassword(ctx context.Context, user *models.User, current, newPW, confirm string) Result {
	if user == nil {
		return failed(msgUserNotFound)
	}

	if !s.hasher.Verify(current, user.PasswordHash) {
		return failed(msgCurrentPasswordWrong)
	}
	if newPW != confirm {
		return failed(msgNewPasswordsDoNotMatch)
	}
	if ok, msg := ValidatePassword(newPW); !ok {
		return failed(msg)
	}
	if s.hasher.Verify(newPW, user.PasswordHash) {
		return failed(msgPasswordUnchanged)
	}

	newHash, err := s.hasher.Hash(newPW)
	if err != nil {
		s.log.Error("password hashing failed", zap.Error(err))
		return failed(msgPasswordChangeFailed)
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, newHash); err != nil {
		s.log.Error("password hash update failed", zap.String("user_id", user.ID), zap.Error(err))
		return failed(msgPasswordChangeFailed)
	}
	user.PasswordHash = newHash

	return succeeded(msgPasswordChanged)
}
