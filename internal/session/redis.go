package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis with a TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, data Data, ttl time.Duration) (string, error) {
	id := uuid.NewString()

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+id, payload, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Data, error) {
	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return Data{}, ErrNotFound
		}
		return Data{}, fmt.Errorf("failed to load session: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return Data{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return data, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}
