package cache

import (
	"context"
	"sync"
	"time"

	"dropship-dashboard/internal/models"
)

type memoryEntry struct {
	product   models.Product
	expiresAt time.Time
}

// MemoryCache é um SearchCache mantido na memória do processo
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache cria um cache cujas entradas expiram após ttl
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Put grava os produtos e descarta as entradas expiradas
func (c *MemoryCache) Put(_ context.Context, products []models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for id, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, id)
		}
	}
	for _, p := range products {
		c.entries[Key(p.Platform, p.ID)] = memoryEntry{product: p, expiresAt: now.Add(c.ttl)}
	}
	return nil
}

func (c *MemoryCache) Get(_ context.Context, platform, id string) (models.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[Key(platform, id)]
	if !ok || c.now().After(e.expiresAt) {
		return models.Product{}, ErrNotCached
	}
	return e.product, nil
}

// Len retorna o número de entradas, incluindo as expiradas ainda não descartadas
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
