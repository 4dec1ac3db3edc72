// Package cache provides a Redis read-through cache for region-officer
// bindings. Region lookups guard every lifecycle transition, while bindings
// themselves change only through owner-gated BindRegion calls, so a short
// TTL keeps the hot path off the database without risking stale authority.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"civreg/internal/registry/models"
	id "civreg/pkg/domain"
)

// RegionCache caches region bindings keyed by region id and by officer
// identity. A nil RegionCache is valid and always misses.
type RegionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRegionCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RegionCache {
	if client == nil {
		return nil
	}
	return &RegionCache{client: client, ttl: ttl, logger: logger}
}

func regionKey(regionID id.RegionID) string {
	return fmt.Sprintf("civreg:region:%s", regionID)
}

func officerKey(officer id.Identity) string {
	return fmt.Sprintf("civreg:region_officer:%s", officer)
}

// GetByRegion returns the cached binding for a region, or (nil, false) on miss.
func (c *RegionCache) GetByRegion(ctx context.Context, regionID id.RegionID) (*models.RegionBinding, bool) {
	return c.get(ctx, regionKey(regionID))
}

// GetByOfficer returns the cached binding for an officer, or (nil, false) on miss.
func (c *RegionCache) GetByOfficer(ctx context.Context, officer id.Identity) (*models.RegionBinding, bool) {
	return c.get(ctx, officerKey(officer))
}

func (c *RegionCache) get(ctx context.Context, key string) (*models.RegionBinding, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) && c.logger != nil {
			c.logger.Warn("region cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var binding models.RegionBinding
	if err := json.Unmarshal(raw, &binding); err != nil {
		if c.logger != nil {
			c.logger.Warn("region cache entry corrupt", "key", key, "error", err)
		}
		return nil, false
	}
	return &binding, true
}

// Put stores a binding under both keys. Failures are logged and ignored;
// the store remains authoritative.
func (c *RegionCache) Put(ctx context.Context, binding *models.RegionBinding) {
	if c == nil || binding == nil {
		return
	}
	raw, err := json.Marshal(binding)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, regionKey(binding.RegionID), raw, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.Warn("region cache write failed", "region_id", binding.RegionID, "error", err)
	}
	if err := c.client.Set(ctx, officerKey(binding.Officer), raw, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.Warn("region cache write failed", "officer", binding.Officer, "error", err)
	}
}
