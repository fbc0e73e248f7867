package storage

import (
	"errors"

	"github.com/phase2-labs/demo-api/internal/config"
)

// NewFromConfig returns the Redis client described by the application
// configuration, or nil when Redis is not enabled.
func NewFromConfig(cfg config.StorageConfig) (*RedisClient, error) {
	client, err := NewRedisClient(RedisConfig{
		Enabled:  cfg.Redis.Enabled,
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		Database: cfg.Redis.Database,
	})
	if errors.Is(err, ErrDisabled) {
		return nil, nil
	}
	return client, err
}
