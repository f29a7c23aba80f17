package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/ukaji3/recetario-go/internal/config"
	"github.com/ukaji3/recetario-go/pkg/recetario/models"
)

// RedisStore keeps the family list under Key in Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects and pings the server.
func NewRedisStore(ctx context.Context, cfg config.StoreConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: cfg.Timeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Save replaces the stored families. They never expire.
func (s *RedisStore) Save(ctx context.Context, families []models.Family) error {
	data, err := encode(families)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, Key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save families: %w", err)
	}
	return nil
}

// Load reads the stored families.
func (s *RedisStore) Load(ctx context.Context) ([]models.Family, error) {
	data, err := s.client.Get(ctx, Key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load families: %w", err)
	}
	return decode(data)
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
