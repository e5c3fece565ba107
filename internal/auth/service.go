// Package auth implements the account-protection and credential-lifecycle
// core of the budget tracker: registration, login with failed-attempt lockout,
// password change and token-based reset, emergency lockout bypass, and the
// single in-process session.
//
// Every operation returns a result value with a user-facing message. Expected
// misuse (wrong password, expired token, locked account) is a failed result,
// not an error; store failures are caught at this boundary, logged, and turned
// into generic failed results. Nothing here panics or propagates collaborator
// errors to the UI.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/marcus-gray/budgetapp/internal/auth/lockout"
	"github.com/marcus-gray/budgetapp/internal/auth/tokenvault"
	"github.com/marcus-gray/budgetapp/internal/models"
	"github.com/marcus-gray/budgetapp/internal/password"
)

// UserStore is the persistence boundary the service depends on. Lookups
// return models.ErrNotFound when no record matches; Create must enforce
// username/email uniqueness with storage-level constraints as the second line
// of defense behind the validator's existence checks.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error
}

// CategoryProvisioner seeds the default categories for a new account.
type CategoryProvisioner interface {
	CreateDefaultCategories(ctx context.Context, userID string) error
}

// Deps carries the service collaborators. Users is required; Categories,
// Clock and Logger are optional (provisioning is skipped, wall clock and a
// no-op logger are substituted).
type Deps struct {
	Users      UserStore
	Categories CategoryProvisioner
	Clock      clock.Clock
	Logger     *zap.Logger
}

// Service orchestrates the validator, hasher, lockout tracker and token
// vaults. Construct one instance at process start and inject it into the UI
// layer; there is no ambient global.
//
// Lockout and token state is keyed by the raw identifier string the caller
// typed and lives only in process memory. Restarting the process clears all
// of it. Persisting these maps alongside the user store is a known open
// direction, not current behavior.
type Service struct {
	cfg        Config
	users      UserStore
	categories CategoryProvisioner
	hasher     *password.Argon2
	lockouts   *lockout.Tracker
	resetVault *tokenvault.Vault
	bypassVault *tokenvault.Vault
	clock      clock.Clock
	log        *zap.Logger

	mu      sync.Mutex
	session *Session
}

// New builds the service. It fails only on a missing user store or invalid
// password parameters.
func New(cfg Config, deps Deps) (*Service, error) {
	if deps.Users == nil {
		return nil, errors.New("auth: user store is required")
	}

	cfg = cfg.withDefaults()

	hasher, err := password.NewArgon2(cfg.Password)
	if err != nil {
		return nil, err
	}

	clk := deps.Clock
	if clk == nil {
		clk = clock.New()
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		cfg:         cfg,
		users:       deps.Users,
		categories:  deps.Categories,
		hasher:      hasher,
		lockouts:    lockout.New(clk, cfg.MaxLoginAttempts, cfg.LockoutDuration),
		resetVault:  tokenvault.New(clk, cfg.ResetTokenTTL, cfg.ResetTokenBytes),
		bypassVault: tokenvault.New(clk, cfg.BypassTokenTTL, cfg.BypassTokenBytes),
		clock:       clk,
		log:         log,
	}, nil
}

// Session records the currently authenticated user. At most one exists per
// service instance; a new login replaces it.
type Session struct {
	User      *models.User
	LoginTime time.Time

	clock clock.Clock
}

// Duration returns the time elapsed since login.
func (s *Session) Duration() time.Duration {
	return s.clock.Now().Sub(s.LoginTime)
}

// Expired reports whether the session has outlived timeout. The session is
// never evicted automatically; callers decide what to do with an expired one.
func (s *Session) Expired(timeout time.Duration) bool {
	return s.Duration() > timeout
}

// CurrentSession returns the active session, nil when logged out.
func (s *Service) CurrentSession() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// CurrentUser returns the authenticated user, nil when logged out.
func (s *Service) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	return s.session.User
}

// IsAuthenticated reports whether a user is logged in.
func (s *Service) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil
}

// Logout destroys the current session. Idempotent.
func (s *Service) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

// SessionTimeout returns the configured idle bound for Session.Expired.
func (s *Service) SessionTimeout() time.Duration {
	return s.cfg.SessionTimeout
}

func (s *Service) setSession(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &Session{
		User:      user,
		LoginTime: s.clock.Now(),
		clock:     s.clock,
	}
}

// findByIdentifier resolves a raw username-or-email string, trying username
// first, then email. Returns models.ErrNotFound when neither matches.
func (s *Service) findByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	return s.users.GetByEmail(ctx, identifier)
}
