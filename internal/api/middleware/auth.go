package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

// Authenticate resolves the session token through authz and stores the user
// under "user". A non-empty role restricts the route to users holding
// exactly that role.
func Authenticate(authz ports.Authorizer, cookieName, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := SessionToken(c, cookieName)
			if token == "" {
				return domain.ErrUnauthenticated
			}

			user, err := authz.Authorize(c.Request().Context(), token, role)
			if err != nil {
				return err
			}

			c.Set("user", user)
			return next(c)
		}
	}
}

// SessionToken returns the bearer token if present, otherwise the session
// cookie value. It returns "" when neither is set.
func SessionToken(c echo.Context, cookieName string) string {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}
