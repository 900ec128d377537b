package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
)

// ListRequestsFilter carries all query parameters for listing shipment requests.
type ListRequestsFilter struct {
	Status    string        // optional: exact status
	Category  string        // optional: exact category
	CreatedBy uuid.NullUUID // optional: creator
	Search    string        // optional: partial match on request_number, cargo_name, client_name
	DateFrom  time.Time     // optional: created_at >= DateFrom
	DateTo    time.Time     // optional: created_at <= DateTo
	Page      int           // 1-based
	Limit     int           // max rows per page (capped at 100 by service)
}

// ShipmentRequestRepository defines persistence operations for shipment requests.
type ShipmentRequestRepository interface {
	// Create allocates the next sequence for (prefix, year), stamps the
	// request number on r and persists it, all in one transaction.
	Create(ctx context.Context, r *domain.ShipmentRequest, prefix string, year int) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ShipmentRequest, error)
	FindByNumber(ctx context.Context, number string) (*domain.ShipmentRequest, error)
	ListByClientPhone(ctx context.Context, phone string) ([]domain.ShipmentRequest, error)
	// Update writes every mutable field of r. Number, category and creator are immutable.
	Update(ctx context.Context, r *domain.ShipmentRequest) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (*domain.ShipmentRequest, error)
	// List returns a page of requests matching filter and the total count.
	List(ctx context.Context, filter ListRequestsFilter) ([]domain.ShipmentRequest, int64, error)
	CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error)
}
