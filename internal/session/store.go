// Package session stores operator sessions in Redis: one backend bearer
// token per session ID, expiring with the session TTL.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/visionhub/console/internal/config"
)

// ErrNotFound is returned when a session ID is unknown or expired.
var ErrNotFound = errors.New("session not found")

const keyPrefix = "console:session:"

// Store wraps the go-redis client with session helpers.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a Redis-backed session store from config.
func NewStore(cfg *config.RedisConfig, ttl time.Duration) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Store{client: client, ttl: ttl}, nil
}

// Create stores token under a fresh session ID and returns the ID.
func (s *Store) Create(ctx context.Context, token string) (string, error) {
	id := uuid.New().String()
	if err := s.client.Set(ctx, keyPrefix+id, token, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Token returns the backend token for a session ID, refreshing its TTL.
func (s *Store) Token(ctx context.Context, id string) (string, error) {
	token, err := s.client.GetEx(ctx, keyPrefix+id, s.ttl).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// Exists reports whether a session ID is still live, without refreshing
// its TTL the way Token does.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+id).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes a session.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}
