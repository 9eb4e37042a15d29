package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

const defaultSearchTTL = 30 * time.Second

// SearchCache keeps recent user search results in Redis.
// Key format: search:<lower-cased query>
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSearchCache creates a SearchCache whose entries expire after ttl.
func NewSearchCache(client *redis.Client, ttl time.Duration) *SearchCache {
	if ttl <= 0 {
		ttl = defaultSearchTTL
	}
	return &SearchCache{client: client, ttl: ttl}
}

// Get returns the cached result for query. A missing key is a miss, not an error.
func (c *SearchCache) Get(ctx context.Context, query string) ([]domain.UserSummary, bool, error) {
	raw, err := c.client.Get(ctx, searchKey(query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("search cache get: %w", err)
	}

	users, err := decodeSummaries(raw)
	if err != nil {
		return nil, false, err
	}
	return users, true, nil
}

// Set stores the result for query.
func (c *SearchCache) Set(ctx context.Context, query string, users []domain.UserSummary) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("search cache encode: %w", err)
	}
	return c.client.Set(ctx, searchKey(query), raw, c.ttl).Err()
}

func decodeSummaries(raw []byte) ([]domain.UserSummary, error) {
	users := []domain.UserSummary{}
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("search cache decode: %w", err)
	}
	return users, nil
}

func searchKey(query string) string {
	return "search:" + strings.ToLower(strings.TrimSpace(query))
}
