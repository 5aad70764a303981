package jwt

import (
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func mintToken(t *testing.T, secret string, tokenType string, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now().UTC()
	c := Claims{
		UserID:    uuid.New(),
		TokenType: tokenType,
		IssuedAt:  now,
		ExpiredAt: now.Add(expiresIn),
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(expiresIn)),
		},
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return tok
}

func TestValidateToken_Valid(t *testing.T) {
	svc := NewHMACService("secret")
	tok := mintToken(t, "secret", TokenTypeAccess, time.Hour)

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.UserID == uuid.Nil {
		t.Fatalf("expected user id carried through")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewHMACService("secret")
	tok := mintToken(t, "secret", TokenTypeAccess, -time.Hour)

	_, err := svc.ValidateToken(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := NewHMACService("secret")
	tok := mintToken(t, "other", TokenTypeAccess, time.Hour)

	_, err := svc.ValidateToken(tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateToken_RejectsNonAccessType(t *testing.T) {
	svc := NewHMACService("secret")
	tok := mintToken(t, "secret", "refresh", time.Hour)

	_, err := svc.ValidateToken(tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for refresh token, got %v", err)
	}
}
