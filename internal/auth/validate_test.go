package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	svc, store, _ := newTestService(t)
	seedUser(t, svc, store, "taken", "taken@example.com", "Secret1!")

	tests := []struct {
		name     string
		username string
		wantOK   bool
		wantMsg  string
	}{
		{"valid", "bob_42", true, ""},
		{"empty", "", false, "Username is required"},
		{"too short", "ab", false, "Username must be at least 3 characters long"},
		{"too long", strings.Repeat("a", 21), false, "Username must be no more than 20 characters long"},
		{"bad characters", "bob smith", false, "Username can only contain letters, numbers, and underscores"},
		{"taken", "taken", false, "Username already exists"},
		{"boundary min", "abc", true, ""},
		{"boundary max", strings.Repeat("a", 20), true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := svc.ValidateUsername(context.Background(), tt.username)
			if ok != tt.wantOK || msg != tt.wantMsg {
				t.Fatalf("ValidateUsername(%q) = (%v, %q), want (%v, %q)",
					tt.username, ok, msg, tt.wantOK, tt.wantMsg)
			}
		})
	}
}

func TestValidateUsernameStoreError(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.failWith = errors.New("db down")

	ok, msg := svc.ValidateUsername(context.Background(), "bob")
	if ok || msg != msgUsernameCheckFailed {
		t.Fatalf("result = (%v, %q), want availability-check failure", ok, msg)
	}
}

func TestValidateEmail(t *testing.T) {
	svc, store, _ := newTestService(t)
	seedUser(t, svc, store, "taken", "taken@example.com", "Secret1!")

	tests := []struct {
		name    string
		email   string
		wantOK  bool
		wantMsg string
	}{
		{"valid", "bob@example.com", true, ""},
		{"subdomain", "bob@mail.example.co.uk", true, ""},
		{"empty", "", false, "Email is required"},
		{"no at sign", "bobexample.com", false, "Invalid email format"},
		{"no tld", "bob@example", false, "Invalid email format"},
		{"one letter tld", "bob@example.c", false, "Invalid email format"},
		{"registered", "taken@example.com", false, "Email already registered"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := svc.ValidateEmail(context.Background(), tt.email)
			if ok != tt.wantOK || msg != tt.wantMsg {
				t.Fatalf("ValidateEmail(%q) = (%v, %q), want (%v, %q)",
					tt.email, ok, msg, tt.wantOK, tt.wantMsg)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		pw      string
		wantOK  bool
		wantMsg string
	}{
		{"valid", "Secret1!", true, ""},
		{"empty", "", false, "Password is required"},
		{"too short", "Se1!abc", false, "Password must be at least 8 characters long"},
		{"too long", "A1!" + strings.Repeat("a", 126), false, "Password must be no more than 128 characters long"},
		{"no uppercase", "secret1!", false, "Password must contain at least one uppercase letter"},
		{"no lowercase", "SECRET1!", false, "Password must contain at least one lowercase letter"},
		{"no digit", "Secrets!", false, "Password must contain at least one number"},
		{"no special", "Secrets1", false, `Password must contain at least one special character (!@#$%^&*(),.?":{}|<>)`},
		{"boundary min", "Abcdef1!", true, ""},
		{"boundary max", "A1!" + strings.Repeat("a", 125), true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := ValidatePassword(tt.pw)
			if ok != tt.wantOK || msg != tt.wantMsg {
				t.Fatalf("ValidatePassword(%q) = (%v, %q), want (%v, %q)",
					tt.pw, ok, msg, tt.wantOK, tt.wantMsg)
			}
		})
	}
}
