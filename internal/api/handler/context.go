package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
)

// userKey is where the session middleware stores the resolved *domain.User.
const userKey = "user"

// currentUser returns the user resolved by the session middleware. Its absence
// means the route was mounted without authentication, which is treated as 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(userKey).(*domain.User)
	if !ok || user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// bind decodes the request into dst and runs struct validation.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return domain.NewValidationError("", "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(dst)
}
