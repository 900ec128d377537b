package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
)

func TestClientMeta(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:4000"
	req.Header.Set("User-Agent", "curl/8.0")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := ClientMeta()(func(c echo.Context) error {
		meta := domain.ClientMetaFrom(c.Request().Context())
		if meta.IPAddress != "192.0.2.10" || meta.UserAgent != "curl/8.0" {
			t.Fatalf("unexpected meta %+v", meta)
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
