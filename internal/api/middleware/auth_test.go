package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
)

type stubAuthorizer struct {
	gotToken string
	gotRole  string
	user     *domain.User
	err      error
}

func (s *stubAuthorizer) Authorize(_ context.Context, token, role string) (*domain.User, error) {
	s.gotToken, s.gotRole = token, role
	return s.user, s.err
}

func TestAuthenticate_BearerToken(t *testing.T) {
	e := echo.New()
	authz := &stubAuthorizer{user: &domain.User{ID: uuid.New(), Username: "alice", Role: domain.RoleEmployee}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Authenticate(authz, "cargo_sid", "")(func(c echo.Context) error {
		called = true
		user, _ := c.Get("user").(*domain.User)
		if user == nil || user.Username != "alice" {
			t.Fatalf("user not set: %+v", user)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if authz.gotToken != "tok123" || authz.gotRole != "" {
		t.Fatalf("unexpected authorize args: %q %q", authz.gotToken, authz.gotRole)
	}
}

func TestAuthenticate_CookieToken(t *testing.T) {
	e := echo.New()
	authz := &stubAuthorizer{user: &domain.User{ID: uuid.New(), Role: domain.RoleManager}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "cargo_sid", Value: "cookie-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Authenticate(authz, "cargo_sid", domain.RoleManager)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if authz.gotToken != "cookie-token" || authz.gotRole != domain.RoleManager {
		t.Fatalf("unexpected authorize args: %q %q", authz.gotToken, authz.gotRole)
	}
}

func TestAuthenticate_MissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Authenticate(&stubAuthorizer{}, "cargo_sid", "")(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthenticate_Forbidden(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Authenticate(&stubAuthorizer{err: domain.ErrForbidden}, "cargo_sid", domain.RoleManager)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSessionToken_PrefersBearer(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer header-token")
	req.AddCookie(&http.Cookie{Name: "cargo_sid", Value: "cookie-token"})
	c := e.NewContext(req, httptest.NewRecorder())

	if got := SessionToken(c, "cargo_sid"); got != "header-token" {
		t.Fatalf("expected header-token, got %q", got)
	}
}

func TestSessionToken_IgnoresOtherSchemes(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	c := e.NewContext(req, httptest.NewRecorder())

	if got := SessionToken(c, "cargo_sid"); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}
