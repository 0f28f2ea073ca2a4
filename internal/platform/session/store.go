package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Session is server-tracked authentication state. Tokens are opaque and
// revocable; deleting the key logs the admin out everywhere immediately.
type Session struct {
	Token     string    `json:"token"`
	AdminID   int64     `json:"admin_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Store interface {
	Create(ctx context.Context, adminID int64, email string, ttl time.Duration) (*Session, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

type RedisStore struct{ client *redis.Client }

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func key(token string) string { return "session:" + token }

func (s *RedisStore) Create(ctx context.Context, adminID int64, email string, ttl time.Duration) (*Session, error) {
	sess := &Session{
		Token:     uuid.NewString(),
		AdminID:   adminID,
		Email:     email,
		ExpiresAt: time.Now().Add(ttl),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := s.client.Set(ctx, key(sess.Token), payload, ttl).Err(); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get returns nil, nil for unknown or expired tokens.
func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	payload, err := s.client.Get(ctx, key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return s.client.Del(ctx, key(token)).Err()
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
