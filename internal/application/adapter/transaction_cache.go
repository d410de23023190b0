// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/spaarbot/backend/internal/domain/entity"
)

// TransactionCache caches raw per-user transaction snapshots for the
// dashboard's fetch layer. Only the raw input is ever cached; derived
// analytics are recomputed on every call.
type TransactionCache interface {
	// Get returns the cached snapshot for a user, or ok=false on a miss.
	// Cache failures degrade to a miss, never to an error for the caller.
	Get(ctx context.Context, userID uuid.UUID) (transactions []*entity.Transaction, ok bool)

	// Set stores a snapshot for a user.
	Set(ctx context.Context, userID uuid.UUID, transactions []*entity.Transaction)

	// Invalidate drops the snapshot for a user. Called on every write path.
	Invalidate(ctx context.Context, userID uuid.UUID)
}
