package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
)

func TestGate_Authorize(t *testing.T) {
	users := newStubUserRepo()
	store := newStubSessionStore()
	sessions := NewSessionManager(store, "secret", time.Hour)
	gate := NewGate(sessions, users)
	ctx := context.Background()

	employee := users.put(&domain.User{Username: "emp", Role: domain.RoleEmployee})
	manager := users.put(&domain.User{Username: "boss", Role: domain.RoleManager})

	empToken, _, err := sessions.Create(ctx, employee.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	mgrToken, _, err := sessions.Create(ctx, manager.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	tests := []struct {
		name     string
		token    string
		role     string
		wantUser string
		wantErr  error
	}{
		{"employee, no role required", empToken, "", "emp", nil},
		{"employee, employee required", empToken, domain.RoleEmployee, "emp", nil},
		{"employee, manager required", empToken, domain.RoleManager, "", domain.ErrForbidden},
		{"manager, manager required", mgrToken, domain.RoleManager, "boss", nil},
		{"manager, employee required", mgrToken, domain.RoleEmployee, "", domain.ErrForbidden},
		{"missing session, no role", "", "", "", domain.ErrUnauthenticated},
		{"invalid session, manager required", "bogus", domain.RoleManager, "", domain.ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := gate.Authorize(ctx, tt.token, tt.role)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Username != tt.wantUser {
				t.Fatalf("expected user %q, got %q", tt.wantUser, user.Username)
			}
		})
	}
}

func TestGate_Authorize_RoleLoadedFresh(t *testing.T) {
	users := newStubUserRepo()
	sessions := NewSessionManager(newStubSessionStore(), "secret", time.Hour)
	gate := NewGate(sessions, users)
	ctx := context.Background()

	u := users.put(&domain.User{Username: "emp", Role: domain.RoleEmployee})
	token, _, err := sessions.Create(ctx, u.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := gate.Authorize(ctx, token, domain.RoleManager); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden before promotion, got %v", err)
	}
	if _, err := users.UpdateRole(ctx, u.ID, domain.RoleManager); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if _, err := gate.Authorize(ctx, token, domain.RoleManager); err != nil {
		t.Fatalf("expected promotion to take effect on the live session, got %v", err)
	}
}

func TestGate_Authorize_UserGone(t *testing.T) {
	users := newStubUserRepo()
	sessions := NewSessionManager(newStubSessionStore(), "secret", time.Hour)
	gate := NewGate(sessions, users)

	u := users.put(&domain.User{Username: "ghost", Role: domain.RoleEmployee})
	token, _, err := sessions.Create(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	delete(users.users, u.ID)

	if _, err := gate.Authorize(context.Background(), token, ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
