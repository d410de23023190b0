// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenClaims represents the claims contained in a session token.
type TokenClaims struct {
	UserID     uuid.UUID
	TelegramID int64
	ExpiresAt  time.Time
}

// TokenService defines the interface for session token operations.
type TokenService interface {
	// GenerateToken mints a session token for the given user.
	GenerateToken(ctx context.Context, userID uuid.UUID, telegramID int64) (string, error)

	// ValidateToken validates a session token and returns its claims.
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
}
