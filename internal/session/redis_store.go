package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:v1:"

// RedisStore keeps sessions in Redis so they survive process restarts.
type RedisStore struct {
	cache *redis.Client
	ttl   time.Duration
}

// NewRedisStore builds a session store with the provided time-to-live.
func NewRedisStore(cache *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{cache: cache, ttl: ttl}
}

// Set registers a freshly issued token under the handle, replacing any
// previous session including its PIN.
func (s *RedisStore) Set(ctx context.Context, handle, token string) error {
	return s.write(ctx, handle, Session{Token: token})
}

// Get loads the session for the handle.
func (s *RedisStore) Get(ctx context.Context, handle string) (Session, error) {
	raw, err := s.cache.Get(ctx, sessionPrefix+handle).Result()
	if err == redis.Nil {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// Clear removes the session, ending it for all purposes.
func (s *RedisStore) Clear(ctx context.Context, handle string) error {
	return s.cache.Del(ctx, sessionPrefix+handle).Err()
}

// SetPIN hashes and stores the transaction PIN on an existing session.
func (s *RedisStore) SetPIN(ctx context.Context, handle, pin string) error {
	sess, err := s.Get(ctx, handle)
	if err != nil {
		return err
	}
	hash, err := hashPIN(pin)
	if err != nil {
		return err
	}
	sess.PINHash = hash
	return s.write(ctx, handle, sess)
}

// VerifyPIN checks the supplied PIN against the stored hash.
func (s *RedisStore) VerifyPIN(ctx context.Context, handle, pin string) error {
	sess, err := s.Get(ctx, handle)
	if err != nil {
		return err
	}
	return comparePIN(sess.PINHash, pin)
}

func (s *RedisStore) write(ctx context.Context, handle string, sess Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.cache.Set(ctx, sessionPrefix+handle, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}
