package cache

import (
	"context"
	"sync"
	"time"

	"github.com/auralabs/aura/internal/models"
)

type memoryEntry struct {
	batch     *models.AnalysisBatch
	expiresAt time.Time
}

// MemoryCache is the in-process fallback for deployments without a Valkey
// instance. Safe under concurrent lookups.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, community string, limit int) (*models.AnalysisBatch, bool) {
	key := batchKey(community, limit)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.batch, true
}

func (c *MemoryCache) Set(_ context.Context, community string, limit int, batch *models.AnalysisBatch) {
	key := batchKey(community, limit)

	c.mu.Lock()
	c.entries[key] = memoryEntry{
		batch:     batch,
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
}
