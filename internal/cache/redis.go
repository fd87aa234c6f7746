package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"tmcalc/pkg/api"
)

// Redis implements Cache on a Redis server.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Redis)

// WithTTL sets the expiration of stored results (0: never).
func WithTTL(ttl time.Duration) Option {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// NewRedis connects to the server at address.
func NewRedis(address, password string, db int, opts ...Option) *Redis {
	return NewFromClient(backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Redis {
	r := &Redis{
		client: client,
		prefix: "tmcalc:result:",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) key(k string) string { return r.prefix + k }

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Get loads a stored result.
func (r *Redis) Get(ctx context.Context, key string) (api.ResultV1, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return api.ResultV1{}, false, nil
		}
		return api.ResultV1{}, false, fmt.Errorf("failed to load from redis: %w", err)
	}
	var v api.ResultV1
	if err := json.Unmarshal(val, &v); err != nil {
		return api.ResultV1{}, false, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return v, true, nil
}

// Put stores a result with the configured TTL.
func (r *Redis) Put(ctx context.Context, key string, v api.ResultV1) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := r.client.Set(ctx, r.key(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Close closes the client.
func (r *Redis) Close() error { return r.client.Close() }
