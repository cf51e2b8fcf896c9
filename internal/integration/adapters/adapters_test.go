package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenService_GenerateAndValidate(t *testing.T) {
	service := NewTokenService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := service.GenerateAccessToken(context.Background(), userID, "ada@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateAccessToken() returned empty token")
	}

	claims, err := service.ValidateAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Email != "ada@example.com" {
		t.Errorf("claims.Email = %q, want %q", claims.Email, "ada@example.com")
	}
}

func TestTokenService_RejectsTamperedToken(t *testing.T) {
	service := NewTokenService("test-secret", time.Hour)

	token, err := service.GenerateAccessToken(context.Background(), uuid.New(), "ada@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	tampered := token[:len(token)-4] + "xxxx"
	if _, err := service.ValidateAccessToken(context.Background(), tampered); err == nil {
		t.Error("ValidateAccessToken() accepted a tampered token")
	}
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.GenerateAccessToken(context.Background(), uuid.New(), "ada@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := verifier.ValidateAccessToken(context.Background(), token); err == nil {
		t.Error("ValidateAccessToken() accepted a token signed with a different secret")
	}
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	// Issue a token that expired a minute ago
	service := &tokenService{secret: []byte("test-secret"), expiry: -time.Minute}

	token, err := service.GenerateAccessToken(context.Background(), uuid.New(), "ada@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := service.ValidateAccessToken(context.Background(), token); err == nil {
		t.Error("ValidateAccessToken() accepted an expired token")
	}
}

func TestPasswordService_HashAndVerify(t *testing.T) {
	service := NewPasswordService()

	hash, err := service.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("Hash() returned the plaintext password")
	}

	if !service.Verify(hash, "correct horse battery staple") {
		t.Error("Verify() rejected the correct password")
	}
	if service.Verify(hash, "wrong password") {
		t.Error("Verify() accepted a wrong password")
	}
}
