package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

type stubUserService struct {
	updateProfileFn func(ctx context.Context, actor *domain.User, in ports.ProfileInput) (*domain.User, error)
	listFn          func(ctx context.Context) ([]domain.User, error)
	changeRoleFn    func(ctx context.Context, actor *domain.User, id uuid.UUID, role string) (*domain.User, error)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, actor *domain.User, in ports.ProfileInput) (*domain.User, error) {
	return s.updateProfileFn(ctx, actor, in)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) ChangeRole(ctx context.Context, actor *domain.User, id uuid.UUID, role string) (*domain.User, error) {
	return s.changeRoleFn(ctx, actor, id, role)
}

func TestProfileHandler_Update(t *testing.T) {
	e := newTestEcho()
	users := &stubUserService{
		updateProfileFn: func(ctx context.Context, actor *domain.User, in ports.ProfileInput) (*domain.User, error) {
			if in.Age == nil || *in.Age != 31 || in.Position == nil || *in.Position != "Dispatcher" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Email != nil {
				t.Fatalf("absent email must stay nil")
			}
			updated := *actor
			updated.Age, updated.Position = *in.Age, *in.Position
			return &updated, nil
		},
	}
	handler := NewProfileHandler(users, &stubAuthService{})

	rec := httptest.NewRecorder()
	c, _ := staffContext(e, jsonRequest(http.MethodPut, "/api/profile", `{"age":31,"position":"Dispatcher"}`), rec)
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	user, _ := decodeEnvelope(t, rec)["user"].(map[string]any)
	if user["position"] != "Dispatcher" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestProfileHandler_Update_RejectsAge(t *testing.T) {
	e := newTestEcho()
	handler := NewProfileHandler(&stubUserService{}, &stubAuthService{})

	c, _ := staffContext(e, jsonRequest(http.MethodPut, "/api/profile", `{"age":200}`), httptest.NewRecorder())
	if err := handler.Update(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProfileHandler_ChangePassword(t *testing.T) {
	e := newTestEcho()
	var called bool
	auth := &stubAuthService{
		changePasswordFn: func(ctx context.Context, id uuid.UUID, current, next string) error {
			called = true
			if current != "old-pass" || next != "new-pass" {
				t.Fatalf("unexpected args %q %q", current, next)
			}
			return nil
		},
	}
	handler := NewProfileHandler(&stubUserService{}, auth)

	c, _ := staffContext(e, jsonRequest(http.MethodPut, "/api/profile/password", `{"currentPassword":"old-pass","newPassword":"new-pass"}`), httptest.NewRecorder())
	if err := handler.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("ChangePassword not called")
	}
}

func TestUserHandler_ChangeRole(t *testing.T) {
	e := newTestEcho()
	target := uuid.New()
	users := &stubUserService{
		changeRoleFn: func(ctx context.Context, actor *domain.User, id uuid.UUID, role string) (*domain.User, error) {
			if id != target || role != domain.RoleManager {
				t.Fatalf("unexpected args %s %s", id, role)
			}
			return &domain.User{ID: id, Role: role}, nil
		},
	}
	handler := NewUserHandler(users)

	rec := httptest.NewRecorder()
	c, _ := staffContext(e, jsonRequest(http.MethodPatch, "/api/users/"+target.String()+"/role", `{"role":"manager"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues(target.String())

	if err := handler.ChangeRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_ChangeRole_UnknownRole(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubUserService{})

	target := uuid.New()
	c, _ := staffContext(e, jsonRequest(http.MethodPatch, "/api/users/"+target.String()+"/role", `{"role":"admin"}`), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(target.String())

	if err := handler.ChangeRole(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserHandler_List_EmptyIsArray(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubUserService{
		listFn: func(context.Context) ([]domain.User, error) { return nil, nil },
	})

	rec := httptest.NewRecorder()
	c, _ := staffContext(e, httptest.NewRequest(http.MethodGet, "/api/users", nil), rec)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if users, ok := decodeEnvelope(t, rec)["users"].([]any); !ok || len(users) != 0 {
		t.Fatalf("expected empty array, got %v", users)
	}
}
