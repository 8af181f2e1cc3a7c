package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheTTL is how long a cached character bundle survives without being
// refreshed by another save.
const CacheTTL = time.Hour

// Cache is a short-TTL read-through cache over Redis, refreshed on every
// character save so a reconnecting session never waits on PostgreSQL for
// the common case.
type Cache struct {
	client *redis.Client
}

// NewCache dials addr and returns a Cache handle. Connection failures
// surface lazily on the first Get/Set call, matching go-redis's lazy-
// dial convention.
func NewCache(addr, password string, db int) *Cache {
	return &Cache{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

func bundleKey(characterID int64) string {
	return fmt.Sprintf("character:%d", characterID)
}

// Get returns the cached bundle for characterID, (zero, false, nil) on a
// cache miss, or an error for anything else.
func (c *Cache) Get(ctx context.Context, characterID int64) (CharacterBundle, bool, error) {
	raw, err := c.client.Get(ctx, bundleKey(characterID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return CharacterBundle{}, false, nil
		}
		return CharacterBundle{}, false, fmt.Errorf("reading cached character %d: %w", characterID, err)
	}
	var bundle CharacterBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return CharacterBundle{}, false, fmt.Errorf("decoding cached character %d: %w", characterID, err)
	}
	return bundle, true, nil
}

// Set writes bundle with a fresh CacheTTL (SETEX semantics).
func (c *Cache) Set(ctx context.Context, bundle CharacterBundle) error {
	raw, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("encoding character %d for cache: %w", bundle.Character.CharacterID, err)
	}
	if err := c.client.Set(ctx, bundleKey(bundle.Character.CharacterID), raw, CacheTTL).Err(); err != nil {
		return fmt.Errorf("caching character %d: %w", bundle.Character.CharacterID, err)
	}
	return nil
}

// Invalidate drops a cached bundle, used when a character is deleted.
func (c *Cache) Invalidate(ctx context.Context, characterID int64) error {
	if err := c.client.Del(ctx, bundleKey(characterID)).Err(); err != nil {
		return fmt.Errorf("invalidating cached character %d: %w", characterID, err)
	}
	return nil
}
