package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

func strPtr(s string) *string { return &s }

func TestUserService_UpdateProfile(t *testing.T) {
	users := newStubUserRepo()
	activity := &stubActivity{}
	svc := NewUserService(users, activity, discardLogger)
	ctx := context.Background()

	alice := users.put(&domain.User{Username: "alice", Email: "alice@example.com", Role: domain.RoleEmployee})
	users.put(&domain.User{Username: "bob", Email: "bob@example.com", Role: domain.RoleEmployee})

	age := 31
	updated, err := svc.UpdateProfile(ctx, alice, ports.ProfileInput{
		FirstName: strPtr(" Alice "),
		Position:  strPtr("Dispatcher"),
		Age:       &age,
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.FirstName != "Alice" || updated.Position != "Dispatcher" || updated.Age != 31 {
		t.Fatalf("profile not updated: %+v", updated)
	}
	if updated.Role != domain.RoleEmployee {
		t.Fatalf("profile update must not touch the role")
	}

	if _, err := svc.UpdateProfile(ctx, alice, ports.ProfileInput{Email: strPtr("bob@example.com")}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for a taken email, got %v", err)
	}

	// Re-submitting one's own email is not a conflict.
	if _, err := svc.UpdateProfile(ctx, alice, ports.ProfileInput{Email: strPtr("alice@example.com")}); err != nil {
		t.Fatalf("unexpected error for unchanged email: %v", err)
	}

	bad := -4
	if _, err := svc.UpdateProfile(ctx, alice, ports.ProfileInput{Age: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for negative age, got %v", err)
	}

	if _, err := svc.UpdateProfile(ctx, nil, ports.ProfileInput{}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for nil actor, got %v", err)
	}
}

func TestUserService_ChangeRole(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, &stubActivity{}, discardLogger)
	ctx := context.Background()

	manager := users.put(&domain.User{Username: "boss", Role: domain.RoleManager})
	employee := users.put(&domain.User{Username: "emp", Role: domain.RoleEmployee})

	tests := []struct {
		name    string
		actor   *domain.User
		target  uuid.UUID
		role    string
		wantErr error
	}{
		{"employee cannot change roles", employee, employee.ID, domain.RoleManager, domain.ErrForbidden},
		{"unknown role", manager, employee.ID, "admin", domain.ErrInvalidRole},
		{"manager cannot demote self", manager, manager.ID, domain.RoleEmployee, domain.ErrValidation},
		{"unknown user", manager, uuid.New(), domain.RoleManager, domain.ErrUserNotFound},
		{"promote employee", manager, employee.ID, domain.RoleManager, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.ChangeRole(ctx, tt.actor, tt.target, tt.role)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Role != tt.role {
				t.Fatalf("expected role %q, got %q", tt.role, user.Role)
			}
		})
	}
}

func TestUserService_List(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), &stubActivity{}, discardLogger)
	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", users)
	}
}
