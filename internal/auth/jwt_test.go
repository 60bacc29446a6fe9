package auth

import (
	"testing"
	"time"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/config"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(config.AuthConfig{
		JWTSecret:       "secret",
		JWTIssuer:       "issuer",
		JWTAudience:     "aud",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	return m
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	m := newTestManager(t)

	now := time.Unix(1700000000, 0).UTC()
	pair, err := m.IssuePair(now, Identity{UserID: "user-1", Email: "p@example.com", PartnerID: "prt-001", Role: "partner"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token strings")
	}
	if !pair.ExpiresAt.Equal(now.Add(15 * time.Minute)) {
		t.Fatalf("unexpected expiry %v", pair.ExpiresAt)
	}

	claims, err := m.Verify(pair.AccessToken, TokenTypeAccess, now.Add(1*time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.PartnerID != "prt-001" || claims.Role != "partner" || claims.Email != "p@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsWrongTokenType(t *testing.T) {
	m, _ := NewManager(config.AuthConfig{JWTSecret: "secret", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour})
	p, err := m.IssuePair(time.Now(), Identity{UserID: "u", Role: "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Verify(p.RefreshToken, TokenTypeAccess, time.Now()); err == nil {
		t.Fatalf("expected token_type mismatch")
	}
	if _, err := m.Verify(p.RefreshToken, TokenTypeRefresh, time.Now()); err != nil {
		t.Fatalf("refresh verify: %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := newTestManager(t)
	now := time.Unix(1700000000, 0).UTC()
	p, err := m.IssuePair(now, Identity{UserID: "u", Role: "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Verify(p.AccessToken, TokenTypeAccess, now.Add(time.Hour)); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestIssueRequiresPartnerIDForPartnerRole(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.IssuePair(time.Now(), Identity{UserID: "u", Role: "partner"}); err == nil {
		t.Fatalf("expected error without partner_id")
	}
}
