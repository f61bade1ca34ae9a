package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ternoa-network/faucetx/pkg/utils"
	"go.uber.org/zap"
)

const cooldownKeyPrefix = "faucet:cooldown:"

// Client wraps the Redis client used as a fast-path cooldown cache in
// front of the claim store. The store stays authoritative: a cache miss
// always falls through to the database.
type Client struct {
	client *redis.Client
	logger *zap.Logger
}

// NewClient creates a new Redis client using environment variables for configuration.
// Environment variables:
//   - REDIS_HOST: Redis host (default: "localhost")
//   - REDIS_PORT: Redis port (default: "6379")
//   - REDIS_PASSWORD: Redis password (default: "")
//   - REDIS_DB: Redis database number (default: "0")
func NewClient(ctx context.Context, logger *zap.Logger) (*Client, error) {
	host := utils.Env("REDIS_HOST", "localhost")
	port := utils.Env("REDIS_PORT", "6379")
	password := utils.Env("REDIS_PASSWORD", "")
	db := utils.EnvInt("REDIS_DB", 0)

	addr := fmt.Sprintf("%s:%s", host, port)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,

		// Connection pool
		PoolSize:     10,
		MinIdleConns: 2,

		// Timeouts
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	logger.Info("Connected to Redis",
		zap.String("addr", addr),
		zap.Int("db", db))

	return &Client{
		client: rdb,
		logger: logger,
	}, nil
}

// SetCooldown records that a wallet claimed just now; the key expires
// when the cooldown window does.
func (c *Client) SetCooldown(ctx context.Context, wallet string, window time.Duration) error {
	return c.client.Set(ctx, cooldownKeyPrefix+wallet, time.Now().UTC().Format(time.RFC3339), window).Err()
}

// CooldownRemaining returns how long the wallet still has to wait, or
// zero when no cooldown key exists.
func (c *Client) CooldownRemaining(ctx context.Context, wallet string) (time.Duration, error) {
	ttl, err := c.client.PTTL(ctx, cooldownKeyPrefix+wallet).Result()
	if err != nil {
		return 0, err
	}
	// PTTL returns negative durations for missing keys or keys without expiry.
	if ttl <= 0 {
		return 0, nil
	}
	return ttl, nil
}

// Close closes the underlying Redis connection.
func (c *Client) Close() error {
	return c.client.Close()
}
