package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lms/backend/internal/domain/integration"
)

// InMemorySummaryCache is a process-local summary cache for
// single-instance deployments and tests. Entries expire lazily on read.
type InMemorySummaryCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]inMemorySummaryEntry
	ttl     time.Duration
}

type inMemorySummaryEntry struct {
	summary   integration.ProgressSummary
	expiresAt time.Time
}

// NewInMemorySummaryCache creates an in-memory summary cache. A zero ttl
// uses the same default as the Redis cache.
func NewInMemorySummaryCache(ttl time.Duration) *InMemorySummaryCache {
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	return &InMemorySummaryCache{
		entries: make(map[uuid.UUID]inMemorySummaryEntry),
		ttl:     ttl,
	}
}

// Get returns the cached summary for a tenant, if present and fresh.
func (c *InMemorySummaryCache) Get(_ context.Context, tenantID uuid.UUID) (*integration.ProgressSummary, bool) {
	c.mu.RLock()
	entry, ok := c.entries[tenantID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, tenantID)
		c.mu.Unlock()
		return nil, false
	}
	summary := entry.summary
	return &summary, true
}

// Set stores the summary for a tenant.
func (c *InMemorySummaryCache) Set(_ context.Context, tenantID uuid.UUID, summary *integration.ProgressSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[tenantID] = inMemorySummaryEntry{
		summary:   *summary,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate drops the tenant's cached summary.
func (c *InMemorySummaryCache) Invalidate(_ context.Context, tenantID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, tenantID)
}
