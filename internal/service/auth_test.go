package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"garagebook-api/internal/model"
	"garagebook-api/internal/storage"
)

func TestRegisterAndLogin(t *testing.T) {
	s := newTestStore(t, newMemStorage(), nil)
	ctx := context.Background()

	user, err := s.Register(ctx, "asha", "secret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Username != "asha" {
		t.Fatalf("unexpected username %q", user.Username)
	}
	if user.Password == "secret" || !strings.HasPrefix(user.Password, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", user.Password)
	}

	got, err := s.Login(ctx, "asha", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.Username != "asha" {
		t.Fatalf("unexpected user %q", got.Username)
	}
	if cur := s.CurrentUser(); cur == nil || cur.Username != "asha" {
		t.Fatalf("expected active session for asha, got %+v", cur)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := newTestStore(t, newMemStorage(), nil)
	ctx := context.Background()

	if _, err := s.Register(ctx, "asha", "one"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := s.Register(ctx, "asha", "two"); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	// Usernames are case-sensitive: a different case is a new account.
	if _, err := s.Register(ctx, "Asha", "three"); err != nil {
		t.Fatalf("expected case-sensitive uniqueness, got %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	s := newTestStore(t, newMemStorage(), nil)
	ctx := context.Background()

	if _, err := s.Register(ctx, "asha", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := s.Login(ctx, "asha", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Login(ctx, "nobody", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if s.CurrentUser() != nil {
		t.Fatal("failed login must not open a session")
	}
}

func TestSessionSurvivesRestartUntilLogout(t *testing.T) {
	st := newMemStorage()
	ctx := context.Background()

	s := newTestStore(t, st, nil)
	if _, err := s.Register(ctx, "asha", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := s.Login(ctx, "asha", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	restarted := newTestStore(t, st, nil)
	if cur := restarted.CurrentUser(); cur == nil || cur.Username != "asha" {
		t.Fatalf("expected session to survive restart, got %+v", cur)
	}

	restarted.Logout(ctx)
	if restarted.CurrentUser() != nil {
		t.Fatal("expected no session after logout")
	}

	again := newTestStore(t, st, nil)
	if again.CurrentUser() != nil {
		t.Fatal("expected logout to persist across restart")
	}
}

func TestLoginAcceptsLegacyPlaintextAccounts(t *testing.T) {
	st := newMemStorage()
	legacy, _ := json.Marshal([]model.User{{Username: "old", Password: "plain"}})
	st.data[storage.KeyUsers] = legacy

	s := newTestStore(t, st, nil)
	if _, err := s.Login(context.Background(), "old", "plain"); err != nil {
		t.Fatalf("expected legacy plaintext login to succeed, got %v", err)
	}
	if _, err := s.Login(context.Background(), "old", "other"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
