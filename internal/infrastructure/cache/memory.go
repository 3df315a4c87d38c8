// Package cache кэширует результаты поиска продуктов в Redis или в памяти.
package cache

import (
	"context"
	"sync"
	"time"

	"fitbalance-bot/internal/domain/entity"
	"fitbalance-bot/internal/domain/port"
)

type memoryItem struct {
	info    entity.FoodInfo
	expires time.Time
}

// MemoryCache in-memory кэш с TTL
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryCache создаёт кэш. ttl <= 0 отключает истечение записей.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		items: make(map[string]memoryItem),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (*entity.FoodInfo, bool, error) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !item.expires.IsZero() && c.now().After(item.expires) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false, nil
	}

	info := item.info
	return &info, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, info *entity.FoodInfo) error {
	item := memoryItem{info: *info}
	if c.ttl > 0 {
		item.expires = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	c.items[key] = item
	c.mu.Unlock()

	return nil
}

var _ port.LookupCache = (*MemoryCache)(nil)
