package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/domain/integration"
)

// summaryKeyPrefix namespaces progress summary keys in Redis
const summaryKeyPrefix = "lms:progress_summary:"

// defaultSummaryTTL bounds staleness when an invalidation is missed
const defaultSummaryTTL = 15 * time.Minute

// RedisConfig holds Redis connection settings for caches
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisSummaryCache caches per-tenant progress summaries in Redis. Cache
// failures degrade to a repository read, never to a request failure.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// RedisSummaryCacheOption is a functional option for configuring the cache
type RedisSummaryCacheOption func(*RedisSummaryCache)

// WithSummaryTTL sets the cache entry lifetime
func WithSummaryTTL(ttl time.Duration) RedisSummaryCacheOption {
	return func(c *RedisSummaryCache) {
		c.ttl = ttl
	}
}

// WithSummaryCacheLogger sets the logger for the cache
func WithSummaryCacheLogger(logger *zap.Logger) RedisSummaryCacheOption {
	return func(c *RedisSummaryCache) {
		c.logger = logger
	}
}

// NewRedisSummaryCache creates a Redis-backed summary cache and verifies
// the connection.
func NewRedisSummaryCache(cfg RedisConfig, opts ...RedisSummaryCacheOption) (*RedisSummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := &RedisSummaryCache{
		client: client,
		ttl:    defaultSummaryTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get returns the cached summary for a tenant, if present.
func (c *RedisSummaryCache) Get(ctx context.Context, tenantID uuid.UUID) (*integration.ProgressSummary, bool) {
	data, err := c.client.Get(ctx, summaryKey(tenantID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("summary cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var summary integration.ProgressSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		c.logger.Warn("summary cache entry corrupt, dropping", zap.Error(err))
		c.client.Del(ctx, summaryKey(tenantID))
		return nil, false
	}
	return &summary, true
}

// Set stores the summary for a tenant with the configured TTL.
func (c *RedisSummaryCache) Set(ctx context.Context, tenantID uuid.UUID, summary *integration.ProgressSummary) {
	data, err := json.Marshal(summary)
	if err != nil {
		c.logger.Warn("summary cache marshal failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, summaryKey(tenantID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("summary cache write failed", zap.Error(err))
	}
}

// Invalidate drops the tenant's cached summary. Called after every
// successful sync.
func (c *RedisSummaryCache) Invalidate(ctx context.Context, tenantID uuid.UUID) {
	if err := c.client.Del(ctx, summaryKey(tenantID)).Err(); err != nil {
		c.logger.Warn("summary cache invalidation failed", zap.Error(err))
	}
}

// Close releases the Redis connection.
func (c *RedisSummaryCache) Close() error {
	return c.client.Close()
}

func summaryKey(tenantID uuid.UUID) string {
	return summaryKeyPrefix + tenantID.String()
}
