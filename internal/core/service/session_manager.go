package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

const (
	DefaultSessionTTL = 24 * time.Hour
	sessionIDBytes    = 32
)

// sessionClaims is the signed envelope handed to clients. It carries only
// the opaque session id; identity and role stay on the server.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionManager issues, resolves and destroys server-side sessions.
type SessionManager struct {
	store  ports.SessionStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionManager(store ports.SessionStore, secret string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// TTL is the lifetime of newly issued sessions.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Create binds a fresh session id to userID and returns the signed token.
func (m *SessionManager) Create(ctx context.Context, userID uuid.UUID) (string, *domain.Session, error) {
	id, err := newSessionID()
	if err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	now := m.now()
	meta := domain.ClientMetaFrom(ctx)
	sess := &domain.Session{
		ID:        id,
		UserID:    userID,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SessionID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("create session: sign: %w", err)
	}

	return token, sess, nil
}

// Resolve returns the live session behind token or domain.ErrUnauthenticated.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	sid, err := m.parse(token, true)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	sess, err := m.store.Find(ctx, sid)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return sess, nil
}

// Destroy removes the binding behind token and returns the session it held,
// if any. Destroying an absent or malformed session is not an error.
func (m *SessionManager) Destroy(ctx context.Context, token string) (*domain.Session, error) {
	sid, err := m.parse(token, false)
	if err != nil {
		return nil, nil
	}

	sess, err := m.store.Find(ctx, sid)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("destroy session: %w", err)
	}
	if err := m.store.Delete(ctx, sid); err != nil {
		return nil, fmt.Errorf("destroy session: %w", err)
	}
	return sess, nil
}

// parse verifies the signature and returns the session id. Expiry is only
// enforced when validate is set, so expired tokens can still be logged out.
func (m *SessionManager) parse(token string, validate bool) (string, error) {
	if token == "" {
		return "", errors.New("empty token")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	}
	if !validate {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil || !tkn.Valid {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if claims.SessionID == "" {
		return "", errors.New("token missing session id")
	}
	return claims.SessionID, nil
}

// newSessionID returns 32 random bytes encoded as unpadded base64url.
func newSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
