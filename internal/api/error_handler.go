package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// errorStatus maps a domain sentinel to its HTTP status. An empty message
// renders the sentinel's own text.
type errorStatus struct {
	target error
	code   int
	msg    string
}

// First match wins.
var errorStatuses = []errorStatus{
	{domain.ErrInvalidCategory, http.StatusBadRequest, ""},
	{domain.ErrInvalidStatus, http.StatusBadRequest, ""},
	{domain.ErrInvalidRole, http.StatusBadRequest, ""},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, ""},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, ""},
	{domain.ErrSessionNotFound, http.StatusUnauthorized, "authentication required"},
	{domain.ErrForbidden, http.StatusForbidden, ""},
	{domain.ErrRequestNotFound, http.StatusNotFound, "request not found"},
	{domain.ErrUserNotFound, http.StatusNotFound, ""},
	{domain.ErrUserExists, http.StatusConflict, ""},
}

// NewHTTPErrorHandler renders every error as {"error": "..."}. Errors it
// does not recognise are logged and reported as a bare 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, known := statusFor(err)
		if !known {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func statusFor(err error) (int, string, bool) {
	// Router 404/405 and the limiter's 429 arrive as echo errors.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), true
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error(), true
	}

	for _, s := range errorStatuses {
		if errors.Is(err, s.target) {
			msg := s.msg
			if msg == "" {
				msg = s.target.Error()
			}
			return s.code, msg, true
		}
	}
	return http.StatusInternalServerError, "internal server error", false
}
