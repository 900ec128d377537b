package redis

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const limiterPrefix = "ratelimit"

// NewLimiterStore returns a rate limiter store sharing counters across instances.
func NewLimiterStore(client *redis.Client) (limiter.Store, error) {
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: limiterPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("limiter store: %w", err)
	}
	return store, nil
}
