package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phase2-labs/demo-api/pkg/logger"
)

// ErrDisabled is returned when a client is requested for a disabled dependency.
var ErrDisabled = errors.New("redis storage is disabled")

// RedisClient wraps the connection to the Redis dependency. The service only
// needs it to report readiness.
type RedisClient struct {
	client  *redis.Client
	address string
}

// NewRedisClient creates a Redis client with the provided configuration.
// Connecting is lazy; reachability is reported by Check.
func NewRedisClient(config RedisConfig) (*RedisClient, error) {
	if !config.Enabled {
		return nil, ErrDisabled
	}

	if config.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         config.Address,
		Password:     config.Password,
		DB:           config.Database,
		PoolSize:     4,
		MinIdleConns: 0,
		MaxRetries:   1,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	logger.Infof("Redis dependency configured at %s (database %d)", config.Address, config.Database)

	return &RedisClient{
		client:  rdb,
		address: config.Address,
	}, nil
}

// Name identifies the dependency in readiness reports.
func (r *RedisClient) Name() string {
	return "redis"
}

// Check pings the server.
func (r *RedisClient) Check(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis at %s: %w", r.address, err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *RedisClient) Close() error {
	return r.client.Close()
}
