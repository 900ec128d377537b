package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

// ActivityHandler exposes the audit trail to managers.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

type listActivityQuery struct {
	UserID string `query:"userId" validate:"omitempty,uuid"`
	Action string `query:"action"`
	Page   int    `query:"page" validate:"gte=0"`
	Limit  int    `query:"limit" validate:"gte=0"`
}

// List handles GET /api/activity-logs.
//
// @Summary      List activity log entries
// @Tags         activity
// @Produce      json
// @Security     SessionCookie
// @Param        userId  query     string  false  "Only entries for this user"
// @Param        action  query     string  false  "Exact action tag"
// @Param        page    query     int     false  "1-based page"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  envelope
// @Failure      401     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Router       /api/activity-logs [get]
func (h *ActivityHandler) List(c echo.Context) error {
	var q listActivityQuery
	if err := bind(c, &q); err != nil {
		return err
	}

	filter := ports.ActivityFilter{Action: q.Action, Page: q.Page, Limit: q.Limit}
	if q.UserID != "" {
		id, err := uuid.Parse(q.UserID)
		if err != nil {
			return domain.NewValidationError("userId", "must be a valid id")
		}
		filter.UserID = uuid.NullUUID{UUID: id, Valid: true}
	}

	result, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return success(c, "", toPage(result.Items, result.Total, result.Page, result.Limit, result.TotalPages))
}
