package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fitbalance-bot/internal/domain/entity"
)

// Порт 1 на localhost закрыт, поэтому Redis недоступен
func TestRedisCache_Unreachable(t *testing.T) {
	client := NewRedisClient(RedisOptions{Address: "127.0.0.1:1"})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.Error(t, Ping(ctx, client))

	c := NewRedisCache(client, time.Hour)
	_, ok, err := c.Get(ctx, "banana")
	require.Error(t, err)
	require.False(t, ok)
	require.Error(t, c.Set(ctx, "banana", &entity.FoodInfo{KcalPer100g: 89}))

	next := &countingLookup{info: &entity.FoodInfo{KcalPer100g: 89}}
	info, err := NewFoodLookup(next, c, nil).Lookup(ctx, "banana")
	require.NoError(t, err)
	require.Equal(t, 89.0, info.KcalPer100g)
}
