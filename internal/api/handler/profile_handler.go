package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

// ProfileHandler serves self-service profile maintenance.
type ProfileHandler struct {
	users ports.UserService
	auth  ports.AuthService
}

func NewProfileHandler(users ports.UserService, auth ports.AuthService) *ProfileHandler {
	return &ProfileHandler{users: users, auth: auth}
}

type profileRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	Position  *string `json:"position" validate:"omitempty,max=100"`
	Age       *int    `json:"age" validate:"omitempty,gte=0,lte=150"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// Update applies a partial profile update to the current user.
//
// @Summary      Update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      profileRequest  true  "Fields to change"
// @Success      200   {object}  envelope{data=userResponse}
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), actor, ports.ProfileInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Position:  req.Position,
		Age:       req.Age,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}
	return success(c, "profile updated", userResponse{User: user})
}

// ChangePassword replaces the current user's password.
//
// @Summary      Change password
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      passwordRequest  true  "Current and new password"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/profile/password [put]
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req passwordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.auth.ChangePassword(c.Request().Context(), actor.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return success(c, "password changed", nil)
}
