package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/astana-logistics/cargo-desk/internal/api/metrics"
	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

// RequestHandler handles staff operations on shipment requests.
type RequestHandler struct {
	service ports.ShipmentService
}

func NewRequestHandler(service ports.ShipmentService) *RequestHandler {
	return &RequestHandler{service: service}
}

// List handles GET /api/requests.
//
// @Summary      List shipment requests
// @Tags         requests
// @Produce      json
// @Security     SessionCookie
// @Param        status    query     string  false  "Exact status"
// @Param        category  query     string  false  "astana or intercity"
// @Param        search    query     string  false  "Matches number, cargo or client name"
// @Param        dateFrom  query     string  false  "YYYY-MM-DD"
// @Param        dateTo    query     string  false  "YYYY-MM-DD (inclusive)"
// @Param        mine      query     bool    false  "Only requests created by the caller"
// @Param        page      query     int     false  "1-based page"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  envelope
// @Failure      400       {object}  map[string]string
// @Failure      401       {object}  map[string]string
// @Router       /api/requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var q listRequestsQuery
	if err := bind(c, &q); err != nil {
		return err
	}

	in := ports.ListRequestsInput{
		Status:   q.Status,
		Category: q.Category,
		Search:   q.Search,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
		Page:     q.Page,
		Limit:    q.Limit,
	}
	if q.Mine {
		in.CreatedBy = uuid.NullUUID{UUID: user.ID, Valid: true}
	}

	result, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return success(c, "", toPage(result.Items, result.Total, result.Page, result.Limit, result.TotalPages))
}

// Create handles POST /api/requests.
//
// @Summary      Create a shipment request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      createRequestPayload  true  "Request details"
// @Success      200   {object}  envelope{data=requestResponse}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createRequestPayload
	if err := bind(c, &req); err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), toCreateInput(req), user)
	if err != nil {
		return err
	}

	metrics.RequestsCreatedTotal.WithLabelValues(string(created.Category), "staff").Inc()
	return success(c, "request created", requestResponse{Request: created})
}

// Stats handles GET /api/requests/stats.
//
// @Summary      Request counts per status
// @Tags         requests
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  envelope{data=statsResponse}
// @Failure      401  {object}  map[string]string
// @Router       /api/requests/stats [get]
func (h *RequestHandler) Stats(c echo.Context) error {
	counts, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	var total int64
	for _, n := range counts {
		total += n
	}
	return success(c, "", statsResponse{Counts: counts, Total: total})
}

// Get handles GET /api/requests/:id.
//
// @Summary      Get a shipment request
// @Tags         requests
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  envelope{data=requestResponse}
// @Failure      404  {object}  map[string]string
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) Get(c echo.Context) error {
	id, err := requestID(c)
	if err != nil {
		return err
	}

	req, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, "", requestResponse{Request: req})
}

// Update handles PUT /api/requests/:id.
//
// @Summary      Update a shipment request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string                true  "Request id"
// @Param        body  body      updateRequestPayload  true  "Fields to change"
// @Success      200   {object}  envelope{data=requestResponse}
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/requests/{id} [put]
func (h *RequestHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := requestID(c)
	if err != nil {
		return err
	}

	var req updateRequestPayload
	if err := bind(c, &req); err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), id, toUpdateInput(req), user)
	if err != nil {
		return err
	}
	return success(c, "request updated", requestResponse{Request: updated})
}

// UpdateStatus handles PATCH /api/requests/:id/status.
//
// @Summary      Change request status
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string         true  "Request id"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  envelope{data=requestResponse}
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/requests/{id}/status [patch]
func (h *RequestHandler) UpdateStatus(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := requestID(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	updated, err := h.service.UpdateStatus(c.Request().Context(), id, req.Status, user)
	if err != nil {
		return err
	}

	metrics.StatusChangesTotal.WithLabelValues(string(updated.Status)).Inc()
	return success(c, "status updated", requestResponse{Request: updated})
}

// requestID parses the :id path parameter. Malformed ids cannot match a request.
func requestID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domain.ErrRequestNotFound
	}
	return id, nil
}
