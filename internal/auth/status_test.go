package auth

import (
	"context"
	"testing"
	"time"
)

func TestAccountStatusFreshIdentifier(t *testing.T) {
	svc, _, _ := newTestService(t)

	st := svc.AccountStatus("bob")
	if st.Locked || st.FailedAttempts != 0 || st.AttemptsRemaining != 5 {
		t.Fatalf("status = %+v", st)
	}
	if st.LiveResetTokens != 0 || st.LiveBypassTokens != 0 {
		t.Fatalf("token counts = %d/%d, want 0/0", st.LiveResetTokens, st.LiveBypassTokens)
	}
}

func TestAccountStatusTracksFailures(t *testing.T) {
	svc, store, mock := newTestService(t)
	seedUser(t, svc, store, "bob", "bob@example.com", "Secret1!")

	for i := 0; i < 3; i++ {
		svc.Login(context.Background(), "bob", "wrong")
	}
	st := svc.AccountStatus("bob")
	if st.Locked || st.FailedAttempts != 3 || st.AttemptsRemaining != 2 {
		t.Fatalf("status = %+v", st)
	}

	for i := 0; i < 2; i++ {
		svc.Login(context.Background(), "bob", "wrong")
	}
	st = svc.AccountStatus("bob")
	if !st.Locked || st.AttemptsRemaining != 0 {
		t.Fatalf("status = %+v", st)
	}
	if st.LockoutRemaining != 15*time.Minute {
		t.Fatalf("remaining = %v, want 15m", st.LockoutRemaining)
	}

	// Reading status past expiry clears the lock, same as the login path.
	mock.Add(15*time.Minute + time.Second)
	st = svc.AccountStatus("bob")
	if st.Locked || st.FailedAttempts != 0 || st.AttemptsRemaining != 5 {
		t.Fatalf("status after expiry = %+v", st)
	}
}

func TestAccountStatusCountsLiveTokensByEitherSpelling(t *testing.T) {
	svc, store, _ := newTestService(t)
	seedUser(t, svc, store, "bob", "bob@example.com", "Secret1!")
	seedUser(t, svc, store, "alice", "alice@example.com", "Secret1!")

	svc.RequestPasswordReset(context.Background(), "bob")
	svc.RequestPasswordReset(context.Background(), "bob@example.com")
	svc.IssueBypassToken(context.Background(), "bob", "test")
	svc.RequestPasswordReset(context.Background(), "alice")

	for _, id := range []string{"bob", "bob@example.com"} {
		st := svc.AccountStatus(id)
		if st.LiveResetTokens != 2 {
			t.Fatalf("LiveResetTokens via %q = %d, want 2", id, st.LiveResetTokens)
		}
		if st.LiveBypassTokens != 1 {
			t.Fatalf("LiveBypassTokens via %q = %d, want 1", id, st.LiveBypassTokens)
		}
	}
	if st := svc.AccountStatus("alice"); st.LiveResetTokens != 1 {
		t.Fatalf("alice LiveResetTokens = %d, want 1", st.LiveResetTokens)
	}
}

func TestAccountStatusExcludesUsedAndExpiredTokens(t *testing.T) {
	svc, store, mock := newTestService(t)
	seedUser(t, svc, store, "bob", "bob@example.com", "Secret1!")

	svc.RequestPasswordReset(context.Background(), "bob")
	mock.Add(time.Hour + time.Second)

	token := svc.RequestPasswordReset(context.Background(), "bob").Token
	st := svc.AccountStatus("bob")
	if st.LiveResetTokens != 1 {
		t.Fatalf("LiveResetTokens = %d, want the expired token excluded", st.LiveResetTokens)
	}

	if res := svc.ResetPassword(context.Background(), token, "Fresher2@", "Fresher2@"); !res.OK {
		t.Fatalf("reset failed: %q", res.Message)
	}
	st = svc.AccountStatus("bob")
	if st.LiveResetTokens != 0 {
		t.Fatalf("LiveResetTokens = %d, want the consumed token excluded", st.LiveResetTokens)
	}
}
