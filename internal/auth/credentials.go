package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialChecker resolves an email/password pair to an identity.
type CredentialChecker interface {
	Check(ctx context.Context, email, password string) (Identity, error)
}

// StaticUser is one configured login.
type StaticUser struct {
	Identity
	PasswordHash string
}

// StaticCredentials checks logins against a fixed set of bcrypt hashes.
type StaticCredentials struct {
	users map[string]StaticUser
}

// dummyHash keeps the unknown-email path as slow as a real comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

func NewStaticCredentials(users ...StaticUser) *StaticCredentials {
	s := &StaticCredentials{users: make(map[string]StaticUser, len(users))}
	for _, u := range users {
		email := normalizeEmail(u.Email)
		if email == "" || u.PasswordHash == "" {
			continue
		}
		u.Email = email
		s.users[email] = u
	}
	return s
}

func (s *StaticCredentials) Check(_ context.Context, email, password string) (Identity, error) {
	u, ok := s.users[normalizeEmail(email)]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}
	return u.Identity, nil
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is required")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
