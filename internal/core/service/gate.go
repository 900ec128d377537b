package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

// Gate is the authorization gate: session token plus optional role in, user out.
type Gate struct {
	sessions *SessionManager
	users    ports.UserRepository
}

func NewGate(sessions *SessionManager, users ports.UserRepository) *Gate {
	return &Gate{sessions: sessions, users: users}
}

// Authorize resolves token into the current user. With a non-empty
// requiredRole the user's role must match it exactly; there is no hierarchy.
func (g *Gate) Authorize(ctx context.Context, token, requiredRole string) (*domain.User, error) {
	sess, err := g.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := g.users.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("authorize: %w", err)
	}

	if requiredRole != "" && user.Role != requiredRole {
		return nil, domain.ErrForbidden
	}
	return user, nil
}
