package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/astana-logistics/cargo-desk/internal/api/metrics"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

// PublicHandler serves the unauthenticated submission form and tracking view.
// Every response goes through toPublicView.
type PublicHandler struct {
	service ports.ShipmentService
}

func NewPublicHandler(service ports.ShipmentService) *PublicHandler {
	return &PublicHandler{service: service}
}

type trackByPhoneQuery struct {
	Phone string `query:"phone" validate:"required"`
}

// Submit handles POST /api/public/requests.
//
// @Summary      Submit a request without an account
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        body  body      publicRequestPayload  true  "Request details"
// @Success      200   {object}  envelope{data=submittedResponse}
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/public/requests [post]
func (h *PublicHandler) Submit(c echo.Context) error {
	var req publicRequestPayload
	if err := bind(c, &req); err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), toPublicCreateInput(req), nil)
	if err != nil {
		return err
	}

	metrics.RequestsCreatedTotal.WithLabelValues(string(created.Category), "public").Inc()
	return success(c, "request submitted", submittedResponse{RequestNumber: created.RequestNumber})
}

// Track handles GET /api/public/track/:number.
//
// @Summary      Track a request by number
// @Tags         public
// @Produce      json
// @Param        number  path      string  true  "Request number (e.g. AST-2025-001)"
// @Success      200     {object}  envelope{data=publicRequestView}
// @Failure      404     {object}  map[string]string
// @Failure      429     {object}  map[string]string
// @Router       /api/public/track/{number} [get]
func (h *PublicHandler) Track(c echo.Context) error {
	req, err := h.service.GetByNumber(c.Request().Context(), c.Param("number"))
	if err != nil {
		return err
	}
	return success(c, "", toPublicView(req))
}

// TrackByPhone handles GET /api/public/track?phone=.
//
// @Summary      Track requests by client phone
// @Tags         public
// @Produce      json
// @Param        phone  query     string  true  "Client phone used on submission"
// @Success      200    {object}  envelope{data=[]publicRequestView}
// @Failure      400    {object}  map[string]string
// @Failure      429    {object}  map[string]string
// @Router       /api/public/track [get]
func (h *PublicHandler) TrackByPhone(c echo.Context) error {
	var q trackByPhoneQuery
	if err := bind(c, &q); err != nil {
		return err
	}

	items, err := h.service.ListByClientPhone(c.Request().Context(), q.Phone)
	if err != nil {
		return err
	}

	views := make([]publicRequestView, 0, len(items))
	for i := range items {
		views = append(views, toPublicView(&items[i]))
	}
	return success(c, "", views)
}
