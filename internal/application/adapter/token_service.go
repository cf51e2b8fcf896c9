// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// TokenClaims holds the identity carried by an access token.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

// TokenService defines the interface for issuing and validating access tokens.
type TokenService interface {
	// GenerateAccessToken issues a signed access token for the user.
	GenerateAccessToken(ctx context.Context, userID uuid.UUID, email string) (string, error)

	// ValidateAccessToken validates a token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}

// PasswordService defines the interface for password hashing.
type PasswordService interface {
	// Hash derives a storable hash from a plaintext password.
	Hash(password string) (string, error)

	// Verify reports whether the plaintext password matches the hash.
	Verify(hash, password string) bool
}
