package cache

import (
	"context"
	"testing"
	"time"

	"dropship-dashboard/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestProductKey(t *testing.T) {
	assert.Equal(t, "search:product:dsers:1001", productKey("dsers", "1001"))
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisCacheWithClient(client, time.Minute)
	defer c.Close()

	ctx := context.Background()
	assert.Error(t, c.Put(ctx, []models.Product{{ID: "1", Platform: "dsers"}}))

	_, err := c.Get(ctx, "dsers", "1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotCached)

	assert.NoError(t, c.Put(ctx, nil))
}
