package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chatapp/chat-api/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       42,
		Username: "alice",
		Email:    "alice@example.com",
	}
}

func TestTokenService_IssueValidate_Roundtrip(t *testing.T) {
	svc := NewTokenService("secret", "chat-api", "chat-client", time.Hour)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Fatalf("expected username alice, got %s", claims.Username)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("expected email alice@example.com, got %s", claims.Email)
	}
	if !claims.Expiry.After(time.Now()) {
		t.Fatalf("expected expiry in the future, got %v", claims.Expiry)
	}
}

func TestTokenService_Validate_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret", "chat-api", "chat-client", time.Hour)
	verifier := NewTokenService("other-secret", "chat-api", "chat-client", time.Hour)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Validate(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Validate_Expired(t *testing.T) {
	svc := NewTokenService("secret", "chat-api", "chat-client", time.Nanosecond)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := svc.Validate(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_Validate_Malformed(t *testing.T) {
	svc := NewTokenService("secret", "chat-api", "chat-client", time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.Validate(token); err != domain.ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}

func TestTokenService_Validate_WrongIssuerOrAudience(t *testing.T) {
	svc := NewTokenService("secret", "chat-api", "chat-client", time.Hour)

	other := NewTokenService("secret", "other-issuer", "chat-client", time.Hour)
	token, _ := other.Issue(testUser())
	if _, err := svc.Validate(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong issuer, got %v", err)
	}

	other = NewTokenService("secret", "chat-api", "other-audience", time.Hour)
	token, _ = other.Issue(testUser())
	if _, err := svc.Validate(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong audience, got %v", err)
	}
}

func TestTokenService_Validate_MissingSubject(t *testing.T) {
	svc := NewTokenService("secret", "chat-api", "chat-client", time.Hour)

	claims := sessionClaims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "chat-api",
			Audience:  jwt.ClaimStrings{"chat-client"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Validate(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for missing subject, got %v", err)
	}
}

func TestTokenService_Validate_RejectsOtherAlgorithms(t *testing.T) {
	svc := NewTokenService("secret", "chat-api", "chat-client", time.Hour)

	claims := sessionClaims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    "chat-api",
			Audience:  jwt.ClaimStrings{"chat-client"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Validate(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for HS512 token, got %v", err)
	}
}
