package cache

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/locale"
	"github.com/fekuna/omnipos-catalog-service/internal/metrics"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/cache"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

const keyPrefix = "categories:tree:"

// RedisTreeCache keeps one rendered tree per locale.
type RedisTreeCache struct {
	client  *cache.RedisClient
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  logger.ZapLogger
}

func NewRedisTreeCache(client *cache.RedisClient, ttl time.Duration, m *metrics.Metrics, log logger.ZapLogger) *RedisTreeCache {
	return &RedisTreeCache{client: client, ttl: ttl, metrics: m, logger: log}
}

func (c *RedisTreeCache) Get(ctx context.Context, l locale.Locale) ([]*model.CategoryNode, bool) {
	var nodes []*model.CategoryNode
	err := c.client.GetJSON(ctx, keyPrefix+string(l), &nodes)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			c.logger.Warn("category tree cache read failed", zap.Error(err))
		}
		c.metrics.RecordCache(false)
		return nil, false
	}
	c.metrics.RecordCache(true)
	return nodes, true
}

func (c *RedisTreeCache) Set(ctx context.Context, l locale.Locale, nodes []*model.CategoryNode) {
	if err := c.client.SetJSON(ctx, keyPrefix+string(l), nodes, c.ttl); err != nil {
		c.logger.Warn("category tree cache write failed", zap.Error(err))
	}
}

func (c *RedisTreeCache) Invalidate(ctx context.Context) {
	if err := c.client.DeletePattern(ctx, keyPrefix+"*"); err != nil {
		c.logger.Warn("category tree cache invalidation failed", zap.Error(err))
	}
}
