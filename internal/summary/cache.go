package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Cache wraps Redis based caching of computed summaries with per-owner
// versioning. Mutating an owner's expenses or salary bumps their version,
// orphaning every cached window at once.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func versionKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("summary:ver:%s", ownerID)
}

// version returns the owner's current cache version, initialising when missing.
func (c *Cache) version(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	ver, err := c.client.Get(ctx, versionKey(ownerID)).Int64()
	if err == redis.Nil {
		if err := c.client.Set(ctx, versionKey(ownerID), 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// FetchJSON loads a cached summary or populates it using the loader. A nil
// cache or nil client always calls through, and any cache failure degrades
// to a direct load so summaries never depend on Redis health. Time-relative
// windows carry a day bucket in the key, so a cached entry cannot outlive
// the day (or month) boundary it was computed against.
func (c *Cache) FetchJSON(ctx context.Context, ownerID uuid.UUID, window Window, now time.Time, dest *Summary, loader func(context.Context) (Summary, error)) error {
	if loader == nil {
		return errors.New("summary: cache loader required")
	}
	if c == nil || c.client == nil {
		return loadInto(ctx, dest, loader)
	}

	ver, err := c.version(ctx, ownerID)
	if err != nil {
		return loadInto(ctx, dest, loader)
	}

	bucket := "all"
	if window != WindowAll {
		bucket = now.Format("2006-01-02")
	}
	key := fmt.Sprintf("summary:%s:%s:%s:%d", ownerID, window, bucket, ver)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		if json.Unmarshal(payload, dest) == nil {
			return nil
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}
	if raw, err := json.Marshal(value); err == nil {
		_ = c.client.Set(ctx, key, raw, c.ttl).Err()
	}
	*dest = value
	return nil
}

func loadInto(ctx context.Context, dest *Summary, loader func(context.Context) (Summary, error)) error {
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	*dest = value
	return nil
}

// Invalidate bumps the owner's version, invalidating all their cached windows.
func (c *Cache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, versionKey(ownerID)).Err()
}
