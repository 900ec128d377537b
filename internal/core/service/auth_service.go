package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

// DefaultBcryptCost keeps a single hash comparison at roughly 100ms or more.
const DefaultBcryptCost = 12

// AuthService implements registration, credential checks and the session lifecycle.
type AuthService struct {
	users    ports.UserRepository
	sessions *SessionManager
	activity ports.ActivityService
	cost     int
	log      zerolog.Logger

	// dummyHash is compared against when the username is unknown so that
	// Verify takes the same time whether or not the account exists.
	dummyHash []byte
}

func NewAuthService(
	users ports.UserRepository,
	sessions *SessionManager,
	activity ports.ActivityService,
	cost int,
	log zerolog.Logger,
) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("cargo-desk-dummy-password"), cost)
	return &AuthService{
		users:     users,
		sessions:  sessions,
		activity:  activity,
		cost:      cost,
		log:       log,
		dummyHash: dummy,
	}
}

// Register creates an employee account. The role is never taken from input.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" {
		return nil, domain.NewValidationError("username", "is required")
	}
	if len(in.Password) < domain.MinPasswordLength {
		return nil, domain.NewValidationError("password", fmt.Sprintf("must be at least %d characters", domain.MinPasswordLength))
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleEmployee,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.activity.Record(ctx, uuid.NullUUID{UUID: user.ID, Valid: true}, domain.ActionRegister, domain.Details{
		"username": user.Username,
	})
	s.log.Info().Str("username", user.Username).Msg("user registered")

	return user, nil
}

// Verify returns the user iff password matches the stored hash for username.
func (s *AuthService) Verify(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("verify: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login verifies credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	user, err := s.Verify(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, _, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.activity.Record(ctx, uuid.NullUUID{UUID: user.ID, Valid: true}, domain.ActionLogin, nil)
	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("user logged in")

	return &ports.LoginResult{Token: token, User: user}, nil
}

// Logout destroys the session behind token. Unknown or malformed tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sess, err := s.sessions.Destroy(ctx, token)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if sess != nil {
		s.activity.Record(ctx, uuid.NullUUID{UUID: sess.UserID, Valid: true}, domain.ActionLogout, nil)
	}
	return nil
}

// ChangePassword replaces the hash after checking the current password.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return domain.ErrInvalidCredentials
	}
	if len(next) < domain.MinPasswordLength {
		return domain.NewValidationError("newPassword", fmt.Sprintf("must be at least %d characters", domain.MinPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cost)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.activity.Record(ctx, uuid.NullUUID{UUID: userID, Valid: true}, domain.ActionPasswordChanged, nil)
	return nil
}
