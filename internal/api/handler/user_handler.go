package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

// UserHandler serves manager user administration.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=employee manager"`
}

type usersResponse struct {
	Users []domain.User `json:"users"`
}

// List handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  envelope{data=usersResponse}
// @Failure      403  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.User{}
	}
	return success(c, "", usersResponse{Users: users})
}

// ChangeRole handles PATCH /api/users/:id/role.
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string       true  "User id"
// @Param        body  body      roleRequest  true  "New role"
// @Success      200   {object}  envelope{data=userResponse}
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/users/{id}/role [patch]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domain.ErrUserNotFound
	}

	var req roleRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.service.ChangeRole(c.Request().Context(), actor, id, req.Role)
	if err != nil {
		return err
	}
	return success(c, "role updated", userResponse{User: user})
}
