package jwt

import (
	"errors"
	"testing"
	"time"

	"pptq-absensi/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing",
		AccessTokenTTL: 12 * time.Hour,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager()

	token, issued, err := m.GenerateAccessToken("P001", "pembina", "Ustadz Ali")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}

	if claims.UserID != "P001" || claims.Subject != "P001" {
		t.Errorf("expected subject P001, got %s / %s", claims.UserID, claims.Subject)
	}
	if claims.Role != "pembina" {
		t.Errorf("expected role pembina, got %s", claims.Role)
	}
	if claims.Name != "Ustadz Ali" {
		t.Errorf("expected name, got %s", claims.Name)
	}
	if claims.Issuer != "pptq-absensi" {
		t.Errorf("unexpected issuer %s", claims.Issuer)
	}
	if claims.ID == "" || claims.ID != issued.ID {
		t.Error("jti should be set and match the issued claims")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 11*time.Hour || ttl > 13*time.Hour {
		t.Errorf("expected ttl of about 12h, got %v", ttl)
	}
}

func TestGenerateAccessToken_UniqueJTI(t *testing.T) {
	m := newTestManager()
	_, a, _ := m.GenerateAccessToken("1", "admin", "A")
	_, b, _ := m.GenerateAccessToken("1", "admin", "A")
	if a.ID == b.ID {
		t.Error("every token needs its own jti")
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := newTestManager()

	if _, err := m.ParseToken("invalid.token.string"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-key-entirely",
		AccessTokenTTL: time.Hour,
	})

	token, _, _ := m1.GenerateAccessToken("1", "admin", "A")
	if _, err := m2.ParseToken(token); err == nil {
		t.Error("token signed with another secret must not verify")
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing",
		AccessTokenTTL: time.Millisecond,
	})

	token, _, _ := m.GenerateAccessToken("1", "admin", "A")
	time.Sleep(10 * time.Millisecond)

	_, err := m.ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}
