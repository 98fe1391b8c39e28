package usecase

import (
	"context"
	"encoding/json"
	"time"

	"horeca-board/pkg/logger"
	"horeca-board/services/banner/internal/entity"

	"github.com/redis/go-redis/v9"
)

const activeBannersKey = "banners:active"

// ActiveCache holds the last public banner list. Readers re-filter by time,
// so a cached entry never shows a banner past its window.
type ActiveCache interface {
	Get(ctx context.Context) ([]*entity.Banner, bool)
	Set(ctx context.Context, banners []*entity.Banner)
	Invalidate(ctx context.Context)
}

type redisActiveCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

func NewRedisActiveCache(client *redis.Client, ttl time.Duration, log *logger.Logger) ActiveCache {
	return &redisActiveCache{client: client, ttl: ttl, logger: log}
}

func (c *redisActiveCache) Get(ctx context.Context) ([]*entity.Banner, bool) {
	data, err := c.client.Get(ctx, activeBannersKey).Bytes()
	if err != nil {
		return nil, false
	}
	var banners []*entity.Banner
	if err := json.Unmarshal(data, &banners); err != nil {
		c.logger.Warn("Dropping unreadable banner cache entry: %v", err)
		return nil, false
	}
	return banners, true
}

func (c *redisActiveCache) Set(ctx context.Context, banners []*entity.Banner) {
	data, err := json.Marshal(banners)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, activeBannersKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache active banners: %v", err)
	}
}

func (c *redisActiveCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, activeBannersKey).Err(); err != nil {
		c.logger.Warn("Failed to invalidate banner cache: %v", err)
	}
}

type noCache struct{}

func (noCache) Get(context.Context) ([]*entity.Banner, bool) { return nil, false }
func (noCache) Set(context.Context, []*entity.Banner)       {}
func (noCache) Invalidate(context.Context)                  {}
