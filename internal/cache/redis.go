// Package cache keeps raw provider responses in Redis between fetches.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"weather-backend/pkg/logger"
)

var ErrMiss = errors.New("cache miss")

// ForecastCache stores raw forecast payloads keyed by provider location id.
// Entries expire at the next half-hour boundary so every client sees the same
// snapshot until the provider publishes new observations.
type ForecastCache struct {
	client *redis.Client
	l      *logger.Logger
}

func NewForecastCache(addr string, db int, l *logger.Logger) (*ForecastCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &ForecastCache{client: client, l: l}, nil
}

func (c *ForecastCache) Close() error {
	return c.client.Close()
}

func (c *ForecastCache) Get(ctx context.Context, locationID int) ([]byte, error) {
	payload, err := c.client.Get(ctx, key(locationID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}
	return payload, nil
}

func (c *ForecastCache) Set(ctx context.Context, locationID int, payload []byte) error {
	ttl := TTLUntilHalfHour(time.Now())
	if err := c.client.Set(ctx, key(locationID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

func key(locationID int) string {
	return fmt.Sprintf("forecast:%d", locationID)
}

// TTLUntilHalfHour returns the time left until the next :00 or :30 mark.
func TTLUntilHalfHour(now time.Time) time.Duration {
	minute := now.Minute()
	boundary := 60
	if minute < 30 {
		boundary = 30
	}
	return time.Duration(boundary-minute) * time.Minute
}
