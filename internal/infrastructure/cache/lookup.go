package cache

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"fitbalance-bot/internal/domain/entity"
	"fitbalance-bot/internal/domain/port"
)

// FoodLookup оборачивает поиск продуктов кэшем.
// Кэшируются только успешные ответы, ошибки кэша не мешают поиску.
type FoodLookup struct {
	next   port.FoodLookup
	cache  port.LookupCache
	logger *zap.Logger
}

// NewFoodLookup создаёт кэширующий поиск
func NewFoodLookup(next port.FoodLookup, cache port.LookupCache, logger *zap.Logger) *FoodLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FoodLookup{next: next, cache: cache, logger: logger}
}

func (l *FoodLookup) Lookup(ctx context.Context, query string) (*entity.FoodInfo, error) {
	key := strings.ToLower(strings.TrimSpace(query))

	info, ok, err := l.cache.Get(ctx, key)
	if err != nil {
		l.logger.Warn("food cache read failed", zap.String("query", query), zap.Error(err))
	}
	if ok {
		return info, nil
	}

	info, err = l.next.Lookup(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := l.cache.Set(ctx, key, info); err != nil {
		l.logger.Warn("food cache write failed", zap.String("query", query), zap.Error(err))
	}
	return info, nil
}

var _ port.FoodLookup = (*FoodLookup)(nil)
