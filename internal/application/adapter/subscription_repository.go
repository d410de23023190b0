// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spaarbot/backend/internal/domain/entity"
)

// SubscriptionRepository defines the interface for subscription persistence operations.
type SubscriptionRepository interface {
	// Create creates a new subscription in the database.
	Create(ctx context.Context, subscription *entity.Subscription) error

	// FindByID retrieves a subscription by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error)

	// FindByUser retrieves all subscriptions for a given user, ordered by next renewal.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Subscription, error)

	// FindDueBefore retrieves active subscriptions across all users whose next
	// renewal falls on or before the given date. Used by the reminder worker.
	FindDueBefore(ctx context.Context, date time.Time) ([]*entity.Subscription, error)

	// Update updates an existing subscription in the database.
	Update(ctx context.Context, subscription *entity.Subscription) error

	// Delete soft-deletes a subscription from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
