package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session binds an opaque session id to a user on the server side.
type Session struct {
	ID        string    `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	IPAddress string    `json:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type clientMetaKey struct{}

// ClientMeta carries request-origin details that audit and session records keep.
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

// WithClientMeta returns ctx carrying meta.
func WithClientMeta(ctx context.Context, meta ClientMeta) context.Context {
	return context.WithValue(ctx, clientMetaKey{}, meta)
}

// ClientMetaFrom returns the ClientMeta stored in ctx, or the zero value.
func ClientMetaFrom(ctx context.Context) ClientMeta {
	meta, _ := ctx.Value(clientMetaKey{}).(ClientMeta)
	return meta
}
