package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dropship-dashboard/internal/models"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "search:product:"

// RedisCache é um SearchCache compartilhado entre instâncias via Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache conecta em addr e verifica a conexão
func NewRedisCache(addr string, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisCacheWithClient(client, ttl), nil
}

// NewRedisCacheWithClient usa um cliente já existente
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Put(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	pipe := c.client.Pipeline()
	for _, p := range products {
		blob, err := json.Marshal(p)
		if err != nil {
			return err
		}
		pipe.Set(ctx, productKey(p.Platform, p.ID), blob, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache search results: %w", err)
	}
	return nil
}

func (c *RedisCache) Get(ctx context.Context, platform, id string) (models.Product, error) {
	var p models.Product
	blob, err := c.client.Get(ctx, productKey(platform, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return p, ErrNotCached
	}
	if err != nil {
		return p, fmt.Errorf("failed to read cached product: %w", err)
	}
	if err := json.Unmarshal(blob, &p); err != nil {
		return p, fmt.Errorf("failed to decode cached product: %w", err)
	}
	return p, nil
}

// Close fecha o cliente Redis
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func productKey(platform, id string) string {
	return keyPrefix + Key(platform, id)
}

var (
	_ SearchCache = (*RedisCache)(nil)
	_ SearchCache = (*MemoryCache)(nil)
)
