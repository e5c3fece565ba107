package auth

import (
	"context"

	"go.uber.org/zap"
)

// Register creates a new account. Checks run in order: password confirmation,
// username, email, password strength, each short-circuiting with its own
// message. On success the default categories are provisioned best-effort;
// their failure is logged but does not undo the registration. Register never
// touches the lockout tracker.
func (s *Service) Register(ctx context.Context, username, email, pw, confirm string) UserResult {
	if pw != confirm {
		return UserResult{Message: msgPasswordsDoNotMatch}
	}

	if ok, msg := s.ValidateUsername(ctx, username); !ok {
		return UserResult{Message: msg}
	}
	if ok, msg := s.ValidateEmail(ctx, email); !ok {
		return UserResult{Message: msg}
	}
	if ok, msg := ValidatePassword(pw); !ok {
		return UserResult{Message: msg}
	}

	hash, err := s.hasher.Hash(pw)
	if err != nil {
		s.log.Error("password hashing failed", zap.Error(err))
		return UserResult{Message: msgRegistrationFailed}
	}

	// The store's unique constraints still apply: the window between the
	// validator's existence check and this insert can surface a duplicate.
	user, err := s.users.Create(ctx, username, email, hash)
	if err != nil {
		s.log.Error("user creation failed", zap.String("username", username), zap.Error(err))
		return UserResult{Message: msgRegistrationFailed}
	}

	if s.categories != nil {
		if err := s.categories.CreateDefaultCategories(ctx, user.ID); err != nil {
			s.log.Warn("default category provisioning failed",
				zap.String("user_id", user.ID), zap.Error(err))
		}
	}

	return UserResult{OK: true, Message: msgAccountCreated, User: user}
}
