package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/domain/integration"
)

// SummaryCacheFactory creates summary caches based on configuration.
type SummaryCacheFactory struct {
	redisConfig           RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SummaryCacheFactoryOption is a functional option for configuring the factory
type SummaryCacheFactoryOption func(*SummaryCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SummaryCacheFactoryOption {
	return func(f *SummaryCacheFactory) {
		f.logger = logger
	}
}

// WithTTL sets the cache entry lifetime
func WithTTL(ttl time.Duration) SummaryCacheFactoryOption {
	return func(f *SummaryCacheFactory) {
		f.ttl = ttl
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory
// cache when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) SummaryCacheFactoryOption {
	return func(f *SummaryCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSummaryCacheFactory creates a new factory
func NewSummaryCacheFactory(cfg RedisConfig, opts ...SummaryCacheFactoryOption) *SummaryCacheFactory {
	f := &SummaryCacheFactory{
		redisConfig:           cfg,
		ttl:                   defaultSummaryTTL,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisCache creates a Redis-backed summary cache
func (f *SummaryCacheFactory) CreateRedisCache() (*RedisSummaryCache, error) {
	return NewRedisSummaryCache(f.redisConfig,
		WithSummaryTTL(f.ttl),
		WithSummaryCacheLogger(f.logger),
	)
}

// CreateInMemoryCache creates a process-local summary cache. State is not
// shared across instances; invalidations from one replica are invisible
// to another.
func (f *SummaryCacheFactory) CreateInMemoryCache() *InMemorySummaryCache {
	return NewInMemorySummaryCache(f.ttl)
}

// SummaryCache is the common shape of both cache implementations.
type SummaryCache interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*integration.ProgressSummary, bool)
	Set(ctx context.Context, tenantID uuid.UUID, summary *integration.ProgressSummary)
	Invalidate(ctx context.Context, tenantID uuid.UUID)
}

// CreateCache tries Redis first and falls back to the in-memory cache
// when Redis is unavailable and fallback is allowed.
func (f *SummaryCacheFactory) CreateCache() (SummaryCache, error) {
	redisCache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis progress summary cache")
		return redisCache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for summary cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory summary cache",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
