// Package tokenvault stores single-use, time-limited opaque tokens in process
// memory. The authentication service runs two vaults: password-reset tokens
// and emergency lockout-bypass tokens, differing only in lifetime, token
// entropy and the extra fields carried on the record.
package tokenvault

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

var (
	// ErrNotFound means the token string matches no live or used entry.
	ErrNotFound = errors.New("token not found")
	// ErrExpired means the entry outlived the vault lifetime. The entry is
	// evicted as a side effect of the failed validation.
	ErrExpired = errors.New("token expired")
	// ErrUsed means the token was already consumed. Used entries stay
	// queryable until swept.
	ErrUsed = errors.New("token already used")
)

// Record is the state stored against a token string.
type Record struct {
	UserID    string
	Username  string
	Email     string
	Reason    string // free-text, bypass tokens only
	CreatedAt time.Time
	Used      bool
}

// Vault is an in-memory token store. All access is serialized by one mutex;
// Validate mutates state (lazy eviction of expired entries) and callers must
// expect that.
type Vault struct {
	mu         sync.Mutex
	clock      clock.Clock
	lifetime   time.Duration
	tokenBytes int

	records map[string]*Record
}

// New returns a vault whose entries live for lifetime and whose tokens carry
// tokenBytes of randomness.
func New(clk clock.Clock, lifetime time.Duration, tokenBytes int) *Vault {
	return &Vault{
		clock:      clk,
		lifetime:   lifetime,
		tokenBytes: tokenBytes,
		records:    make(map[string]*Record),
	}
}

// Issue stores rec under a fresh random token and returns the token string.
// CreatedAt and Used are set by the vault. Collision with a live entry is
// ruled out by token entropy, not checked.
func (v *Vault) Issue(rec Record) (string, error) {
	token, err := newToken(v.tokenBytes)
	if err != nil {
		return "", err
	}

	rec.CreatedAt = v.clock.Now()
	rec.Used = false

	v.mu.Lock()
	defer v.mu.Unlock()

	v.records[token] = &rec
	return token, nil
}

// Validate checks the token and returns a copy of its record. Failure order:
// unknown token, expired (evicting the entry), already used. A successful
// validation does not mutate the entry.
func (v *Vault) Validate(token string) (Record, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	rec, ok := v.records[token]
	if !ok {
		return Record{}, ErrNotFound
	}

	if v.clock.Now().Sub(rec.CreatedAt) > v.lifetime {
		delete(v.records, token)
		return Record{}, ErrExpired
	}

	if rec.Used {
		return Record{}, ErrUsed
	}

	return *rec, nil
}

// Consume marks the token as used. The entry is kept, so a replayed token
// reports "already used" until the next sweep removes it.
func (v *Vault) Consume(token string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	rec, ok := v.records[token]
	if !ok {
		return ErrNotFound
	}

	rec.Used = true
	return nil
}

// Sweep deletes every entry older than the vault lifetime, used or not, and
// returns the number deleted.
func (v *Vault) Sweep() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.clock.Now()
	deleted := 0
	for token, rec := range v.records {
		if now.Sub(rec.CreatedAt) > v.lifetime {
			delete(v.records, token)
			deleted++
		}
	}
	return deleted
}

// LiveCountFor counts unconsumed, unexpired entries whose username or email
// matches the identifier. The match condition binds as
// (username OR email) AND unused AND unexpired.
func (v *Vault) LiveCountFor(identifier string) int {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.clock.Now()
	count := 0
	for _, rec := range v.records {
		if (rec.Username == identifier || rec.Email == identifier) &&
			!rec.Used &&
			now.Sub(rec.CreatedAt) <= v.lifetime {
			count++
		}
	}
	return count
}

func newToken(size int) (string, error) {
	raw := make([]byte, size)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
