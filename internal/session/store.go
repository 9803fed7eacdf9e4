// Package session owns the authenticated-identity record: an opaque bearer
// token mapped to the user and role. Everything else reads sessions through
// this store; only login, logout and invalidation write to it.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned for unknown, expired and unreadable tokens alike.
// Anything that cannot be parsed back into a session counts as logged out;
// corruption must never resolve to an authenticated identity.
var ErrNotFound = errors.New("session not found")

type Store interface {
	Create(ctx context.Context, user domain.User) (*domain.Session, error)
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func key(token string) string {
	return "session:" + token
}

// NewToken returns a 40-character hex bearer token.
func NewToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Create issues a token and persists token + identity as a single value under
// a single key, so no reader can ever observe one without the other.
func (s *redisStore) Create(ctx context.Context, user domain.User) (*domain.Session, error) {
	token, err := NewToken()
	if err != nil {
		return nil, err
	}
	sess := &domain.Session{
		Token:     token,
		User:      user,
		CreatedOn: time.Now().UTC(),
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, key(token), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return sess, nil
}

func (s *redisStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	val, err := s.client.Get(ctx, key(token)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		// Corrupt or partially written value: fail open to "logged out",
		// and drop the key so the bad value cannot linger.
		logger.Warn("Discarding unreadable session value", "error", err)
		_ = s.client.Del(ctx, key(token)).Err()
		return nil, ErrNotFound
	}
	if sess.Token == "" || sess.User.ID == 0 {
		logger.Warn("Discarding incomplete session value")
		_ = s.client.Del(ctx, key(token)).Err()
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Delete removes a session. Deleting a token that no longer exists is not an
// error: logout must succeed locally regardless of remote state.
func (s *redisStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.client.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
