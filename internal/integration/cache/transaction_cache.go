// Package cache implements the Redis-backed transaction snapshot cache.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/spaarbot/backend/internal/application/adapter"
	"github.com/spaarbot/backend/internal/domain/entity"
)

// DefaultTTL bounds staleness if an invalidation is ever missed.
const DefaultTTL = 10 * time.Minute

// cachedTransaction is the msgpack wire form of a transaction. Amounts are
// carried as strings so no precision is lost in transit.
type cachedTransaction struct {
	ID          string `msgpack:"id"`
	UserID      string `msgpack:"uid"`
	Date        int64  `msgpack:"d"` // unix seconds, UTC
	Description string `msgpack:"de"`
	Amount      string `msgpack:"a"`
	Kind        string `msgpack:"k"`
	CategoryID  string `msgpack:"c,omitempty"`
	Source      string `msgpack:"s"`
}

// transactionCache implements adapter.TransactionCache on Redis. Every cache
// failure degrades to a miss so the database stays the source of truth.
type transactionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTransactionCache creates a new Redis-backed transaction cache.
func NewTransactionCache(client *redis.Client, ttl time.Duration) adapter.TransactionCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &transactionCache{
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(userID uuid.UUID) string {
	return "txns:" + userID.String()
}

// Get returns the cached snapshot for a user, or ok=false on a miss.
func (c *transactionCache) Get(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, bool) {
	payload, err := c.client.Get(ctx, cacheKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("Transaction cache read failed", "userID", userID, "error", err)
		}
		return nil, false
	}

	var cached []cachedTransaction
	if err := msgpack.Unmarshal(payload, &cached); err != nil {
		slog.Warn("Transaction cache payload corrupt, dropping", "userID", userID, "error", err)
		c.Invalidate(ctx, userID)
		return nil, false
	}

	transactions := make([]*entity.Transaction, 0, len(cached))
	for _, ct := range cached {
		transaction, err := decodeTransaction(ct)
		if err != nil {
			slog.Warn("Transaction cache entry corrupt, dropping snapshot", "userID", userID, "error", err)
			c.Invalidate(ctx, userID)
			return nil, false
		}
		transactions = append(transactions, transaction)
	}

	return transactions, true
}

// Set stores a snapshot for a user.
func (c *transactionCache) Set(ctx context.Context, userID uuid.UUID, transactions []*entity.Transaction) {
	cached := make([]cachedTransaction, 0, len(transactions))
	for _, t := range transactions {
		cached = append(cached, encodeTransaction(t))
	}

	payload, err := msgpack.Marshal(cached)
	if err != nil {
		slog.Warn("Transaction cache encode failed", "userID", userID, "error", err)
		return
	}

	if err := c.client.Set(ctx, cacheKey(userID), payload, c.ttl).Err(); err != nil {
		slog.Warn("Transaction cache write failed", "userID", userID, "error", err)
	}
}

// Invalidate drops the snapshot for a user.
func (c *transactionCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := c.client.Del(ctx, cacheKey(userID)).Err(); err != nil {
		slog.Warn("Transaction cache invalidation failed", "userID", userID, "error", err)
	}
}

func encodeTransaction(t *entity.Transaction) cachedTransaction {
	ct := cachedTransaction{
		ID:          t.ID.String(),
		UserID:      t.UserID.String(),
		Date:        t.Date.UTC().Unix(),
		Description: t.Description,
		Amount:      t.Amount.String(),
		Kind:        string(t.Kind),
		Source:      string(t.Source),
	}
	if t.CategoryID != nil {
		ct.CategoryID = t.CategoryID.String()
	}
	return ct
}

func decodeTransaction(ct cachedTransaction) (*entity.Transaction, error) {
	id, err := uuid.Parse(ct.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(ct.UserID)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(ct.Amount)
	if err != nil {
		return nil, err
	}

	transaction := &entity.Transaction{
		ID:          id,
		UserID:      userID,
		Date:        time.Unix(ct.Date, 0).UTC(),
		Description: ct.Description,
		Amount:      amount,
		Kind:        entity.TransactionKind(ct.Kind),
		Source:      entity.TransactionSource(ct.Source),
	}
	if ct.CategoryID != "" {
		categoryID, err := uuid.Parse(ct.CategoryID)
		if err != nil {
			return nil, err
		}
		transaction.CategoryID = &categoryID
	}

	return transaction, nil
}
