package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/marcus-gray/budgetapp/internal/models"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 20
	minPasswordLen = 8
	maxPasswordLen = 128

	passwordSpecials = `!@#$%^&*(),.?":{}|<>`
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidateUsername checks format and uniqueness. The existence lookup is
// read-only; a store failure reports the username as unavailable rather than
// letting registration proceed unchecked.
func (s *Service) ValidateUsername(ctx context.Context, username string) (bool, string) {
	if username == "" {
		return false, "Username is required"
	}
	if len(username) < minUsernameLen {
		return false, fmt.Sprintf("Username must be at least %d characters long", minUsernameLen)
	}
	if len(username) > maxUsernameLen {
		return false, fmt.Sprintf("Username must be no more than %d characters long", maxUsernameLen)
	}
	if !usernamePattern.MatchString(username) {
		return false, "Username can only contain letters, numbers, and underscores"
	}

	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return false, "Username already exists"
	case errors.Is(err, models.ErrNotFound):
		return true, ""
	default:
		s.log.Error("username existence check failed", zap.Error(err))
		return false, msgUsernameCheckFailed
	}
}

// ValidateEmail checks format and uniqueness.
func (s *Service) ValidateEmail(ctx context.Context, email string) (bool, string) {
	if email == "" {
		return false, "Email is required"
	}
	if !emailPattern.MatchString(email) {
		return false, "Invalid email format"
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return false, "Email already registered"
	case errors.Is(err, models.ErrNotFound):
		return true, ""
	default:
		s.log.Error("email existence check failed", zap.Error(err))
		return false, msgEmailCheckFailed
	}
}

// ValidatePassword checks password strength: 8-128 characters with at least
// one uppercase letter, one lowercase letter, one digit, and one special
// character. Pure; no store access.
func ValidatePassword(pw string) (bool, string) {
	if pw == "" {
		return false, "Password is required"
	}
	if len(pw) < minPasswordLen {
		return false, fmt.Sprintf("Password must be at least %d characters long", minPasswordLen)
	}
	if len(pw) > maxPasswordLen {
		return false, fmt.Sprintf("Password must be no more than %d characters long", maxPasswordLen)
	}

	var upper, lower, digit bool
	for i := 0; i < len(pw); i++ {
		switch c := pw[i]; {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		}
	}

	if !upper {
		return false, "Password must contain at least one uppercase letter"
	}
	if !lower {
		return false, "Password must contain at least one lowercase letter"
	}
	if !digit {
		return false, "Password must contain at least one number"
	}
	if !strings.ContainsAny(pw, passwordSpecials) {
		return false, fmt.Sprintf("Password must contain at least one special character (%s)", passwordSpecials)
	}

	return true, ""
}
