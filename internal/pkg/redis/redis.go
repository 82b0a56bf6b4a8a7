package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eapache/go-resiliency/retrier"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// MaxHealthCheckRetries is the maximum number of retries for the health check.
	MaxHealthCheckRetries = 3

	// healthCheckBackoff is the initial backoff between health check retries.
	healthCheckBackoff = 100 * time.Millisecond
)

// Config is the configuration for the Redis store.
type Config struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Store is a Redis-backed key/value store with pub/sub support.
type Store struct {
	client *redis.Client
}

// New creates a new Redis store instance.
func New(ctx context.Context, cfg *Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to instrument redis tracing: %v", err)
	}
	if err := redisotel.InstrumentMetrics(client); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to instrument redis metrics: %v", err)
	}

	r := retrier.New(retrier.ExponentialBackoff(MaxHealthCheckRetries, healthCheckBackoff), nil)
	if err := r.RunCtx(ctx, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}); err != nil {
		return nil, status.Errorf(codes.Unavailable, "failed to connect to redis: %v", err)
	}

	return &Store{client: client}, nil
}

// NewWithClient wraps an existing Redis client. Used by tests to inject a
// mocked client.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Close closes the Redis store.
func (rs *Store) Close() error {
	return rs.client.Close()
}

// Set stores a value with optional expiration.
func (rs *Store) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return status.Errorf(codes.Internal, "failed to marshal value: %v", err)
	}

	if err := rs.client.Set(ctx, key, data, expiration).Err(); err != nil {
		return status.Errorf(codes.Internal, "failed to set value in redis: %v", err)
	}

	return nil
}

// Get retrieves a value by key.
func (rs *Store) Get(ctx context.Context, key string, dest any) error {
	data, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return status.Errorf(codes.NotFound, "key not found: %s", key)
		}
		return status.Errorf(codes.Internal, "failed to get value from redis: %v", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return status.Errorf(codes.Internal, "failed to unmarshal value: %v", err)
	}

	return nil
}

// Delete removes a key.
func (rs *Store) Delete(ctx context.Context, key string) error {
	if err := rs.client.Del(ctx, key).Err(); err != nil {
		return status.Errorf(codes.Internal, "failed to delete key: %v", err)
	}
	return nil
}

// Exists checks if a key exists.
func (rs *Store) Exists(ctx context.Context, key string) (bool, error) {
	result, err := rs.client.Exists(ctx, key).Result()
	if err != nil {
		return false, status.Errorf(codes.Internal, "failed to check if key exists: %v", err)
	}
	return result > 0, nil
}

// SetNX sets a value if it does not exist (atomic operation).
func (rs *Store) SetNX(ctx context.Context, key string, value any, expiration time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, status.Errorf(codes.Internal, "failed to marshal value: %v", err)
	}

	success, err := rs.client.SetNX(ctx, key, data, expiration).Result()
	if err != nil {
		return false, status.Errorf(codes.Internal, "failed to set value in redis: %v", err)
	}

	return success, nil
}

// Publish publishes a payload to a channel.
func (rs *Store) Publish(ctx context.Context, channel string, payload any) error {
	if err := rs.client.Publish(ctx, channel, payload).Err(); err != nil {
		return status.Errorf(codes.Internal, "failed to publish to channel %s: %v", channel, err)
	}
	return nil
}

// Subscribe subscribes to the given channels. The caller owns the
// returned subscription and must close it.
func (rs *Store) Subscribe(ctx context.Context, channels ...string) *redis.PubSub {
	return rs.client.Subscribe(ctx, channels...)
}
