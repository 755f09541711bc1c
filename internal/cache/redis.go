package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/skybook/config"
	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetFlights returns nil, nil on a cache miss.
func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

// AcquireRequestLock claims a client-supplied booking request key. It
// returns false when the key is already held.
func (c *RedisCache) AcquireRequestLock(ctx context.Context, requestKey string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, requestLockKey(requestKey), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseRequestLock(ctx context.Context, requestKey string) error {
	return c.client.Del(ctx, requestLockKey(requestKey)).Err()
}

func flightsKey() string {
	return "cache:catalog:flights"
}

func requestLockKey(requestKey string) string {
	return "lock:booking:request:" + requestKey
}
