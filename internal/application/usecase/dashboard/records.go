// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spaarbot/backend/internal/application/adapter"
	"github.com/spaarbot/backend/internal/domain/analytics"
)

// recordLoader fetches a user's raw transactions (through the snapshot cache)
// and normalizes them into analytics records with resolved category labels.
// Derived series are never cached; only this raw input is.
type recordLoader struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	cache           adapter.TransactionCache
}

func (l *recordLoader) load(ctx context.Context, userID uuid.UUID) ([]analytics.Record, error) {
	transactions, ok := l.cache.Get(ctx, userID)
	if !ok {
		var err error
		transactions, err = l.transactionRepo.FindByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load transactions: %w", err)
		}
		l.cache.Set(ctx, userID, transactions)
	}

	categories, err := l.categoryRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	labels := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		labels[c.ID] = c.Name
	}

	records := make([]analytics.Record, 0, len(transactions))
	for _, t := range transactions {
		var label string
		if t.CategoryID != nil {
			label = labels[*t.CategoryID]
		}
		records = append(records, analytics.Record{
			ID:       t.ID.String(),
			Date:     t.Date,
			Kind:     t.Kind,
			Amount:   t.Amount,
			Category: label,
		})
	}

	return records, nil
}
