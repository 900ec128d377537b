package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
)

// SessionStore keeps sessions as JSON values that expire with the session.
// Key format: session:<id>
type SessionStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

// Save writes s with a TTL matching its remaining lifetime.
func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	ttl := sessionTTL(sess, s.now())
	if ttl <= 0 {
		return fmt.Errorf("save session: already expired")
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Find returns the live session for id, or domain.ErrSessionNotFound.
func (s *SessionStore) Find(ctx context.Context, id string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if !sess.ExpiresAt.After(s.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

// Delete removes the session. Missing keys are not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}

func sessionTTL(sess *domain.Session, now time.Time) time.Duration {
	return sess.ExpiresAt.Sub(now)
}
