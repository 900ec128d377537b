package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
)

// RegisterInput carries the public registration form. Role is never part of it.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token string
	User  *domain.User
}

// AuthService covers the credential store and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Verify(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Logout destroys the session behind token. It never fails for an unknown token.
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error
}

// Authorizer resolves a session token into a user, optionally requiring a role.
// It returns domain.ErrUnauthenticated or domain.ErrForbidden.
type Authorizer interface {
	Authorize(ctx context.Context, token, requiredRole string) (*domain.User, error)
}

// ProfileInput carries a partial profile update; nil fields are left unchanged.
type ProfileInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Position  *string
	Age       *int
	Phone     *string
}

// UserService covers profile maintenance and manager user administration.
type UserService interface {
	UpdateProfile(ctx context.Context, actor *domain.User, input ProfileInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ChangeRole(ctx context.Context, actor *domain.User, userID uuid.UUID, role string) (*domain.User, error)
}
