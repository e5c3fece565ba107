// Package lockout tracks consecutive failed login attempts per identifier and
// enforces a time-boxed lock once the failure threshold is reached.
//
// State is keyed by the raw identifier string the caller supplied (username or
// email, verbatim), not by a resolved user identity. A caller alternating
// between their username and their email accumulates two independent counters.
package lockout

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Tracker holds per-identifier failure counters and lock timestamps. All state
// lives in process memory and is guarded by a single mutex; nothing survives a
// restart.
type Tracker struct {
	mu          sync.Mutex
	clock       clock.Clock
	maxAttempts int
	duration    time.Duration

	attempts map[string]int
	lockedAt map[string]time.Time
}

// New returns a tracker that locks an identifier for duration after
// maxAttempts consecutive failures.
func New(clk clock.Clock, maxAttempts int, duration time.Duration) *Tracker {
	return &Tracker{
		clock:       clk,
		maxAttempts: maxAttempts,
		duration:    duration,
		attempts:    make(map[string]int),
		lockedAt:    make(map[string]time.Time),
	}
}

// RecordFailure increments the failure counter for the identifier and returns
// the new count. Reaching the threshold creates (or refreshes) the lock with
// the current time.
func (t *Tracker) RecordFailure(identifier string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.attempts[identifier]++
	count := t.attempts[identifier]
	if count >= t.maxAttempts {
		t.lockedAt[identifier] = t.clock.Now()
	}
	return count
}

// IsLocked reports whether the identifier is currently locked and, if so, how
// long until the lock expires. An expired lock is cleared here, together with
// its failure counter: expiry is lazy, a side effect of the read, and there is
// no proactive sweep.
func (t *Tracker) IsLocked(identifier string) (bool, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	lockedAt, ok := t.lockedAt[identifier]
	if !ok {
		return false, 0
	}

	elapsed := t.clock.Now().Sub(lockedAt)
	if elapsed >= t.duration {
		delete(t.lockedAt, identifier)
		delete(t.attempts, identifier)
		return false, 0
	}

	return true, t.duration - elapsed
}

// Unlock clears both the lock and the failure counter for the identifier.
// Idempotent.
func (t *Tracker) Unlock(identifier string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.lockedAt, identifier)
	delete(t.attempts, identifier)
}

// ResetAttempts clears only the failure counter, used after a successful login
// when no lock is pending.
func (t *Tracker) ResetAttempts(identifier string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.attempts, identifier)
}

// Attempts returns the current failure count for the identifier, zero if none.
func (t *Tracker) Attempts(identifier string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.attempts[identifier]
}

// MaxAttempts returns the configured lock threshold.
func (t *Tracker) MaxAttempts() int {
	return t.maxAttempts
}

// UnlockAll clears every counter and lock and returns the number of active
// locks that were cleared.
func (t *Tracker) UnlockAll() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cleared := len(t.lockedAt)
	t.lockedAt = make(map[string]time.Time)
	t.attempts = make(map[string]int)
	return cleared
}
