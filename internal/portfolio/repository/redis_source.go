package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces dataset keys: portfolio:dataset:{name}.
const DefaultRedisPrefix = "portfolio:dataset:"

// RedisSource keeps each dataset as one string value.
type RedisSource struct {
	client *redis.Client
	prefix string
}

func NewRedisSource(client *redis.Client, prefix string) *RedisSource {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisSource{client: client, prefix: prefix}
}

func (s *RedisSource) Name() string { return "redis" }

func (s *RedisSource) key(dataset string) string {
	return s.prefix + dataset
}

func (s *RedisSource) Fetch(ctx context.Context, dataset string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(dataset)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, s.key(dataset))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}
	return data, nil
}

// Put replaces the whole document in one SET, so readers never see a
// partial write.
func (s *RedisSource) Put(ctx context.Context, dataset string, doc []byte) error {
	if !knownDataset(dataset) {
		return fmt.Errorf("%w: %s", ErrDatasetNotFound, dataset)
	}
	if err := s.client.Set(ctx, s.key(dataset), doc, 0).Err(); err != nil {
		return fmt.Errorf("failed to store dataset: %w", err)
	}
	return nil
}
