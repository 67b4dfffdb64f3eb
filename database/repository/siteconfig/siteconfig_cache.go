package siteconfigRepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/KevinDarioIguaran/LCLGSC/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const siteConfigCacheKey = "gate:siteconfig"

// cachedAbsent marks a confirmed-missing configuration so the gate does not
// hit mongo on every request of an unconfigured deployment.
const cachedAbsent = "absent"

// CachedRepository decorates a Repository with a short-TTL redis cache.
// The gate runs on every request, so reads must not reach mongo each time.
type CachedRepository struct {
	inner  Repository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRepository wraps inner with a redis cache.
func NewCachedRepository(inner Repository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedRepository {
	return &CachedRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (r *CachedRepository) Get(ctx context.Context) (*models.SiteConfig, error) {
	data, err := r.client.Get(ctx, siteConfigCacheKey).Result()
	if err == nil {
		if data == cachedAbsent {
			return nil, nil
		}
		var cfg models.SiteConfig
		if err := json.Unmarshal([]byte(data), &cfg); err == nil {
			return &cfg, nil
		}
		r.logger.Warn("corrupt site config cache entry, refetching")
	} else if !errors.Is(err, redis.Nil) {
		// Cache trouble is not a gate error; fall through to mongo.
		r.logger.Warn("site config cache read failed", zap.Error(err))
	}

	cfg, err := r.inner.Get(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, cfg)
	return cfg, nil
}

func (r *CachedRepository) store(ctx context.Context, cfg *models.SiteConfig) {
	payload := cachedAbsent
	if cfg != nil {
		data, err := json.Marshal(cfg)
		if err != nil {
			r.logger.Warn("failed to marshal site config for cache", zap.Error(err))
			return
		}
		payload = string(data)
	}
	if err := r.client.Set(ctx, siteConfigCacheKey, payload, r.ttl).Err(); err != nil {
		r.logger.Warn("site config cache write failed", zap.Error(err))
	}
}

// Put writes through and invalidates the cached snapshot.
func (r *CachedRepository) Put(ctx context.Context, cfg *models.SiteConfig) error {
	if err := r.inner.Put(ctx, cfg); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// Delete removes the configuration and invalidates the cached snapshot.
func (r *CachedRepository) Delete(ctx context.Context) error {
	if err := r.inner.Delete(ctx); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedRepository) invalidate(ctx context.Context) {
	if err := r.client.Del(ctx, siteConfigCacheKey).Err(); err != nil {
		r.logger.Warn("site config cache invalidation failed", zap.Error(err))
	}
}
