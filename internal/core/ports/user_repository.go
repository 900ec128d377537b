package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
)

// UserRepository defines the credential store persistence operations.
// Lookups that miss return domain.ErrUserNotFound; unique violations on
// username or email return domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// ExistsByUsernameOrEmail reports whether any user already holds username or email.
	// Empty arguments are ignored.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateProfile(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// SessionStore persists server-side session bindings.
// Find returns domain.ErrSessionNotFound when the binding is absent or expired.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
