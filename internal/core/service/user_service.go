package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

// UserService handles profile maintenance and manager user administration.
type UserService struct {
	users    ports.UserRepository
	activity ports.ActivityService
	log      zerolog.Logger
}

func NewUserService(users ports.UserRepository, activity ports.ActivityService, log zerolog.Logger) *UserService {
	return &UserService{users: users, activity: activity, log: log}
}

// UpdateProfile applies the non-nil fields of in to the actor's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, actor *domain.User, in ports.ProfileInput) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	changed := make([]string, 0, 6)
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != user.Email {
			if email != "" {
				exists, err := s.users.ExistsByUsernameOrEmail(ctx, "", email)
				if err != nil {
					return nil, fmt.Errorf("update profile: %w", err)
				}
				if exists {
					return nil, domain.ErrUserExists
				}
			}
			user.Email = email
			changed = append(changed, "email")
		}
	}
	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
		changed = append(changed, "firstName")
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
		changed = append(changed, "lastName")
	}
	if in.Position != nil {
		user.Position = strings.TrimSpace(*in.Position)
		changed = append(changed, "position")
	}
	if in.Age != nil {
		if *in.Age < 0 || *in.Age > 150 {
			return nil, domain.NewValidationError("age", "must be between 0 and 150")
		}
		user.Age = *in.Age
		changed = append(changed, "age")
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
		changed = append(changed, "phone")
	}

	updated, err := s.users.UpdateProfile(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.activity.Record(ctx, actorID(actor), domain.ActionProfileUpdated, domain.Details{"fields": changed})
	return updated, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// ChangeRole sets another user's role. Only managers may do this, and a
// manager cannot demote themselves.
func (s *UserService) ChangeRole(ctx context.Context, actor *domain.User, userID uuid.UUID, role string) (*domain.User, error) {
	if !actor.IsManager() {
		return nil, domain.ErrForbidden
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}
	if actor.ID == userID && role != domain.RoleManager {
		return nil, domain.NewValidationError("role", "managers cannot demote themselves")
	}

	updated, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, fmt.Errorf("change role: %w", err)
	}

	s.activity.Record(ctx, actorID(actor), domain.ActionUserRoleChanged, domain.Details{
		"user_id": userID.String(),
		"role":    role,
	})
	s.log.Info().Str("username", updated.Username).Str("role", role).Msg("user role changed")
	return updated, nil
}
