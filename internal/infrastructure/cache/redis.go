package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fitbalance-bot/internal/domain/entity"
	"fitbalance-bot/internal/domain/port"
)

const keyPrefix = "fitbalance:food:"

// RedisOptions параметры подключения к Redis
type RedisOptions struct {
	Address  string
	Password string
	DB       int
	PoolSize int
}

// NewRedisClient создаёт клиент Redis
func NewRedisClient(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: opts.PoolSize,
	})
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// RedisCache кэш продуктов в Redis, значения хранятся в JSON
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache создаёт кэш поверх клиента Redis
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*entity.FoodInfo, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}

	var info entity.FoodInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, false, fmt.Errorf("decode cached %q: %w", key, err)
	}
	return &info, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, info *entity.FoodInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

var _ port.LookupCache = (*RedisCache)(nil)
