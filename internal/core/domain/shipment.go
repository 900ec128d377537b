package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// RequestStatus represents the lifecycle state of a shipment request.
type RequestStatus string

const (
	StatusNew        RequestStatus = "new"
	StatusProcessing RequestStatus = "processing"
	StatusAssigned   RequestStatus = "assigned"
	StatusInTransit  RequestStatus = "in_transit"
	StatusDelivered  RequestStatus = "delivered"
	StatusCancelled  RequestStatus = "cancelled"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []RequestStatus{
	StatusNew,
	StatusProcessing,
	StatusAssigned,
	StatusInTransit,
	StatusDelivered,
	StatusCancelled,
}

// Valid reports whether s is a known status.
func (s RequestStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether a request in status s may move to next.
// Staff may move a request between any two known statuses.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	return s.Valid() && next.Valid()
}

// TransportInfo describes the vehicle and driver assigned to a request.
type TransportInfo struct {
	DriverName   string `json:"driverName,omitempty"`
	DriverPhone  string `json:"driverPhone,omitempty"`
	VehicleModel string `json:"vehicleModel,omitempty"`
	VehiclePlate string `json:"vehiclePlate,omitempty"`
}

// IsZero reports whether no transport field is set.
func (t TransportInfo) IsZero() bool {
	return t == TransportInfo{}
}

// Value stores TransportInfo as a JSONB document.
func (t TransportInfo) Value() (driver.Value, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads a JSONB document into TransportInfo.
func (t *TransportInfo) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = TransportInfo{}
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("transport_info: unsupported type %T", src)
	}
}

// ShipmentRequest is the core aggregate root: one cargo request.
type ShipmentRequest struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	RequestNumber string        `json:"requestNumber" db:"request_number"`
	Category      Category      `json:"category" db:"category"`
	Status        RequestStatus `json:"status" db:"status"`
	CreatedBy     uuid.NullUUID `json:"createdBy" db:"created_by"`

	CargoName       string              `json:"cargoName" db:"cargo_name"`
	CargoWeight     decimal.NullDecimal `json:"cargoWeight" db:"cargo_weight"`
	CargoVolume     decimal.NullDecimal `json:"cargoVolume" db:"cargo_volume"`
	CargoDimensions string              `json:"cargoDimensions,omitempty" db:"cargo_dimensions"`
	Photos          pq.StringArray      `json:"photos" db:"photos"`

	LoadingAddress   string `json:"loadingAddress" db:"loading_address"`
	LoadingContact   string `json:"loadingContact,omitempty" db:"loading_contact"`
	UnloadingAddress string `json:"unloadingAddress" db:"unloading_address"`
	UnloadingContact string `json:"unloadingContact,omitempty" db:"unloading_contact"`

	TransportInfo *TransportInfo      `json:"transportInfo,omitempty" db:"transport_info"`
	Price         decimal.NullDecimal `json:"price" db:"price"`
	Notes         string              `json:"notes,omitempty" db:"notes"`

	ClientName  string `json:"clientName,omitempty" db:"client_name"`
	ClientPhone string `json:"clientPhone,omitempty" db:"client_phone"`
	ClientEmail string `json:"clientEmail,omitempty" db:"client_email"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// IsPublicSubmission reports whether the request came through the public form.
func (r *ShipmentRequest) IsPublicSubmission() bool {
	return !r.CreatedBy.Valid
}
