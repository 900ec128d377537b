package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// envelope is the canonical success body. Errors use {"error": "..."}.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type pagedData[T any] struct {
	Items      []T        `json:"items"`
	Pagination pagination `json:"pagination"`
}

func success(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Message: message, Data: data})
}
