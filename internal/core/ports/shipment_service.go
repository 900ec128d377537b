package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
)

// CreateRequestInput carries all data needed to create a shipment request.
type CreateRequestInput struct {
	Category        string
	CargoName       string
	CargoWeight     *decimal.Decimal
	CargoVolume     *decimal.Decimal
	CargoDimensions string
	Photos          []string

	LoadingAddress   string
	LoadingContact   string
	UnloadingAddress string
	UnloadingContact string

	TransportInfo *domain.TransportInfo
	Price         *decimal.Decimal
	Notes         string

	ClientName  string
	ClientPhone string
	ClientEmail string
}

// UpdateRequestInput carries a partial update; nil fields are left unchanged.
type UpdateRequestInput struct {
	CargoName       *string
	CargoWeight     *decimal.Decimal
	CargoVolume     *decimal.Decimal
	CargoDimensions *string
	Photos          []string

	LoadingAddress   *string
	LoadingContact   *string
	UnloadingAddress *string
	UnloadingContact *string

	TransportInfo *domain.TransportInfo
	Price         *decimal.Decimal
	Notes         *string

	ClientName  *string
	ClientPhone *string
	ClientEmail *string
}

// ListRequestsInput carries all parameters for the list endpoint.
type ListRequestsInput struct {
	Status    string
	Category  string
	CreatedBy uuid.NullUUID
	Search    string
	DateFrom  string // YYYY-MM-DD
	DateTo    string // YYYY-MM-DD
	Page      int
	Limit     int
}

// ListRequestsResult is returned by List.
type ListRequestsResult struct {
	Items      []domain.ShipmentRequest
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ShipmentService defines use-case operations for shipment requests.
// A nil creator on Create marks a public submission.
type ShipmentService interface {
	Create(ctx context.Context, input CreateRequestInput, creator *domain.User) (*domain.ShipmentRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.ShipmentRequest, error)
	GetByNumber(ctx context.Context, number string) (*domain.ShipmentRequest, error)
	ListByClientPhone(ctx context.Context, phone string) ([]domain.ShipmentRequest, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateRequestInput, actor *domain.User) (*domain.ShipmentRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, actor *domain.User) (*domain.ShipmentRequest, error)
	List(ctx context.Context, input ListRequestsInput) (*ListRequestsResult, error)
	Stats(ctx context.Context) (map[domain.RequestStatus]int64, error)
}
