package storage

// RedisConfig holds the connection settings of the optional Redis dependency.
type RedisConfig struct {
	// Whether the Redis dependency is enabled
	Enabled bool

	// Redis server address (e.g., "localhost:6379")
	Address string

	// Redis password for authentication
	Password string

	// Redis database number (0-15)
	Database int
}
