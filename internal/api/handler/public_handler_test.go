package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

func TestPublicHandler_Submit(t *testing.T) {
	e := newTestEcho()
	stub := &stubShipmentService{
		createFn: func(ctx context.Context, in ports.CreateRequestInput, creator *domain.User) (*domain.ShipmentRequest, error) {
			if creator != nil {
				t.Fatalf("public submission must have no creator")
			}
			if in.ClientPhone != "+77010000000" || in.Price != nil || in.TransportInfo != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			r := sampleRequest()
			r.RequestNumber = "INT-2025-004"
			return r, nil
		},
	}
	handler := NewPublicHandler(stub)

	body := `{"category":"intercity","cargoName":"Boxes","loadingAddress":"Almaty","unloadingAddress":"Astana","clientName":"Dana","clientPhone":"+77010000000","price":1}`
	rec := httptest.NewRecorder()
	if err := handler.Submit(e.NewContext(jsonRequest(http.MethodPost, "/api/public/requests", body), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := decodeEnvelope(t, rec)["requestNumber"]; got != "INT-2025-004" {
		t.Fatalf("unexpected request number %v", got)
	}
}

func TestPublicHandler_Submit_RequiresPhone(t *testing.T) {
	e := newTestEcho()
	handler := NewPublicHandler(&stubShipmentService{})

	body := `{"category":"astana","cargoName":"Boxes","loadingAddress":"A","unloadingAddress":"B","clientName":"Dana"}`
	err := handler.Submit(e.NewContext(jsonRequest(http.MethodPost, "/api/public/requests", body), httptest.NewRecorder()))

	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "clientPhone" {
		t.Fatalf("expected clientPhone validation error, got %v", err)
	}
}

func TestPublicHandler_Submit_NameOptional(t *testing.T) {
	e := newTestEcho()
	stub := &stubShipmentService{
		createFn: func(ctx context.Context, in ports.CreateRequestInput, creator *domain.User) (*domain.ShipmentRequest, error) {
			if in.ClientName != "" {
				t.Fatalf("unexpected client name %q", in.ClientName)
			}
			r := sampleRequest()
			r.RequestNumber = "AST-2025-007"
			return r, nil
		},
	}
	handler := NewPublicHandler(stub)

	body := `{"category":"astana","cargoName":"Boxes","loadingAddress":"A","unloadingAddress":"B","clientPhone":"+77010000000"}`
	rec := httptest.NewRecorder()
	if err := handler.Submit(e.NewContext(jsonRequest(http.MethodPost, "/api/public/requests", body), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := decodeEnvelope(t, rec)["requestNumber"]; got != "AST-2025-007" {
		t.Fatalf("unexpected request number %v", got)
	}
}

func TestPublicHandler_Track_Redacts(t *testing.T) {
	e := newTestEcho()
	stub := &stubShipmentService{
		getByNumberFn: func(ctx context.Context, number string) (*domain.ShipmentRequest, error) {
			if number != "AST-2025-001" {
				t.Fatalf("unexpected number %q", number)
			}
			return sampleRequest(), nil
		},
	}
	handler := NewPublicHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/public/track/AST-2025-001", nil), rec)
	c.SetParamNames("number")
	c.SetParamValues("AST-2025-001")

	if err := handler.Track(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	view := decodeEnvelope(t, rec)
	if view["status"] != "new" || view["vehiclePlate"] != "123ABC01" {
		t.Fatalf("unexpected view %+v", view)
	}
	for _, field := range []string{"price", "notes", "clientPhone", "createdBy", "transportInfo", "id"} {
		if _, leaked := view[field]; leaked {
			t.Fatalf("field %q must not be disclosed publicly", field)
		}
	}
}

func TestPublicHandler_Track_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubShipmentService{
		getByNumberFn: func(context.Context, string) (*domain.ShipmentRequest, error) {
			return nil, domain.ErrRequestNotFound
		},
	}
	handler := NewPublicHandler(stub)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/public/track/X", nil), httptest.NewRecorder())
	if err := handler.Track(c); !errors.Is(err, domain.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestPublicHandler_TrackByPhone(t *testing.T) {
	e := newTestEcho()
	stub := &stubShipmentService{
		listByPhoneFn: func(ctx context.Context, phone string) ([]domain.ShipmentRequest, error) {
			if phone != "+77010000000" {
				t.Fatalf("unexpected phone %q", phone)
			}
			return []domain.ShipmentRequest{*sampleRequest(), *sampleRequest()}, nil
		},
	}
	handler := NewPublicHandler(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/public/track?phone=%2B77010000000", nil)
	if err := handler.TrackByPhone(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPublicHandler_TrackByPhone_Missing(t *testing.T) {
	e := newTestEcho()
	handler := NewPublicHandler(&stubShipmentService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/public/track", nil), httptest.NewRecorder())
	if err := handler.TrackByPhone(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
