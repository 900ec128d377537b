package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

type stubActivityService struct {
	listFn func(ctx context.Context, f ports.ActivityFilter) (*ports.ActivityListResult, error)
}

func (s *stubActivityService) Record(context.Context, uuid.NullUUID, string, domain.Details) {}

func (s *stubActivityService) List(ctx context.Context, f ports.ActivityFilter) (*ports.ActivityListResult, error) {
	return s.listFn(ctx, f)
}

func TestActivityHandler_List(t *testing.T) {
	e := newTestEcho()
	userID := uuid.New()
	stub := &stubActivityService{
		listFn: func(ctx context.Context, f ports.ActivityFilter) (*ports.ActivityListResult, error) {
			if !f.UserID.Valid || f.UserID.UUID != userID || f.Action != domain.ActionLogin {
				t.Fatalf("unexpected filter %+v", f)
			}
			return &ports.ActivityListResult{
				Items: []domain.ActivityLog{{ID: uuid.New(), Action: domain.ActionLogin}},
				Total: 1, Page: 1, Limit: 20, TotalPages: 1,
			}, nil
		},
	}
	handler := NewActivityHandler(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/activity-logs?userId="+userID.String()+"&action=login", nil)
	if err := handler.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if items, _ := decodeEnvelope(t, rec)["items"].([]any); len(items) != 1 {
		t.Fatalf("expected 1 item")
	}
}

func TestActivityHandler_List_BadUserID(t *testing.T) {
	e := newTestEcho()
	handler := NewActivityHandler(&stubActivityService{})

	req := httptest.NewRequest(http.MethodGet, "/api/activity-logs?userId=42", nil)
	if err := handler.List(e.NewContext(req, httptest.NewRecorder())); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
