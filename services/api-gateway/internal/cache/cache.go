package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"maas-platform/services/api-gateway/internal/config"
	"maas-platform/shared/proto"
)

// ModelCache is a read-through cache for model lookups. A nil *ModelCache is
// valid and disables caching, so call sites never branch on configuration.
type ModelCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New connects to redis, or returns nil when caching is disabled.
func New(cfg config.RedisConfig, logger *zap.Logger) (*ModelCache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &ModelCache{client: client, ttl: cfg.TTL, logger: logger}, nil
}

func modelKey(id string) string {
	return "maas:model:" + id
}

// Get returns the cached model, or nil on miss. Cache failures degrade to a
// miss rather than failing the request.
func (c *ModelCache) Get(ctx context.Context, id string) *proto.Model {
	if c == nil {
		return nil
	}

	data, err := c.client.Get(ctx, modelKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("model cache read failed", zap.String("model_id", id), zap.Error(err))
		}
		return nil
	}

	var model proto.Model
	if err := json.Unmarshal(data, &model); err != nil {
		c.logger.Warn("model cache entry corrupt", zap.String("model_id", id), zap.Error(err))
		return nil
	}
	return &model
}

// Set stores a model under its id.
func (c *ModelCache) Set(ctx context.Context, model *proto.Model) {
	if c == nil || model == nil {
		return
	}

	data, err := json.Marshal(model)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, modelKey(model.Id), data, c.ttl).Err(); err != nil {
		c.logger.Warn("model cache write failed", zap.String("model_id", model.Id), zap.Error(err))
	}
}

// Invalidate drops the cached entry after a mutation.
func (c *ModelCache) Invalidate(ctx context.Context, id string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, modelKey(id)).Err(); err != nil {
		c.logger.Warn("model cache invalidation failed", zap.String("model_id", id), zap.Error(err))
	}
}

// Close releases the redis connection.
func (c *ModelCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
