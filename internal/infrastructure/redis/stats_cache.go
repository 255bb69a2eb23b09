package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"stockrates-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Cache stores computed statistics keyed by the query parameters. Entries
// expire after TTL; a miss just recomputes.
type Cache struct {
	Client *redis.Client
	TTL    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{Client: client, TTL: ttl}
}

func (c *Cache) Get(ctx context.Context, key string) ([]domain.StatRow, bool, error) {
	val, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var rows []domain.StatRow
	if err := json.Unmarshal(val, &rows); err != nil {
		return nil, false, err
	}
	return rows, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, rows []domain.StatRow) error {
	b, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, b, c.TTL).Err()
}
