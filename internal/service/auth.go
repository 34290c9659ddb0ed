package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"garagebook-api/internal/model"
	"garagebook-api/internal/storage"
)

// Register creates a new user account. Usernames are unique with a
// case-sensitive exact match; there is no password policy.
func (s *Store) Register(ctx context.Context, username, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return nil, ErrDuplicateUsername
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{Username: username, Password: string(hash)}
	s.users = append(s.users, user)
	s.persist(ctx, storage.KeyUsers, s.users)

	out := user
	return &out, nil
}

// Login authenticates a user and makes them the active session
// subject. The session is persisted separately from the users
// collection so it survives a process restart until explicit logout.
func (s *Store) Login(ctx context.Context, username, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username != username {
			continue
		}
		if !checkPassword(u.Password, password) {
			break
		}
		session := u
		s.session = &session
		s.persist(ctx, storage.KeySession, session)
		out := u
		return &out, nil
	}
	return nil, ErrInvalidCredentials
}

// checkPassword verifies a password against the stored credential.
// Accounts from backups made before hashing was introduced carry the
// password verbatim, so anything that is not a bcrypt hash is compared
// directly.
func checkPassword(stored, password string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return stored == password
}

// Logout clears the active session. It has no effect on any other
// collection.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	if err := s.storage.Delete(ctx, storage.KeySession); err != nil {
		log.Printf("[Store] clear session failed: %v", err)
	}
}

// CurrentUser returns the active session subject, or nil when nobody
// is logged in.
func (s *Store) CurrentUser() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}
	out := *s.session
	return &out
}
