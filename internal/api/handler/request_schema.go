package handler

import (
	"github.com/shopspring/decimal"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
)

// --- Request / Response types ---

type transportRequest struct {
	DriverName   string `json:"driverName"`
	DriverPhone  string `json:"driverPhone"`
	VehicleModel string `json:"vehicleModel"`
	VehiclePlate string `json:"vehiclePlate"`
}

type createRequestPayload struct {
	Category        string           `json:"category" validate:"required,oneof=astana intercity"`
	CargoName       string           `json:"cargoName" validate:"required,max=255"`
	CargoWeight     *decimal.Decimal `json:"cargoWeight" swaggertype:"number"`
	CargoVolume     *decimal.Decimal `json:"cargoVolume" swaggertype:"number"`
	CargoDimensions string           `json:"cargoDimensions"`
	Photos          []string         `json:"photos"`

	LoadingAddress   string `json:"loadingAddress" validate:"required"`
	LoadingContact   string `json:"loadingContact"`
	UnloadingAddress string `json:"unloadingAddress" validate:"required"`
	UnloadingContact string `json:"unloadingContact"`

	TransportInfo *transportRequest `json:"transportInfo"`
	Price         *decimal.Decimal  `json:"price" swaggertype:"number"`
	Notes         string            `json:"notes"`

	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`
	ClientEmail string `json:"clientEmail" validate:"omitempty,email"`
}

type updateRequestPayload struct {
	CargoName       *string          `json:"cargoName" validate:"omitempty,max=255"`
	CargoWeight     *decimal.Decimal `json:"cargoWeight" swaggertype:"number"`
	CargoVolume     *decimal.Decimal `json:"cargoVolume" swaggertype:"number"`
	CargoDimensions *string          `json:"cargoDimensions"`
	Photos          []string         `json:"photos"`

	LoadingAddress   *string `json:"loadingAddress"`
	LoadingContact   *string `json:"loadingContact"`
	UnloadingAddress *string `json:"unloadingAddress"`
	UnloadingContact *string `json:"unloadingContact"`

	TransportInfo *transportRequest `json:"transportInfo"`
	Price         *decimal.Decimal  `json:"price" swaggertype:"number"`
	Notes         *string           `json:"notes"`

	ClientName  *string `json:"clientName"`
	ClientPhone *string `json:"clientPhone"`
	ClientEmail *string `json:"clientEmail" validate:"omitempty,email"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type listRequestsQuery struct {
	Status   string `query:"status"`
	Category string `query:"category"`
	Search   string `query:"search"`
	DateFrom string `query:"dateFrom"`
	DateTo   string `query:"dateTo"`
	Mine     bool   `query:"mine"`
	Page     int    `query:"page" validate:"gte=0"`
	Limit    int    `query:"limit" validate:"gte=0"`
}

// publicRequestPayload is what the unauthenticated form may submit.
// Price, notes and transport assignment are staff-only.
type publicRequestPayload struct {
	Category        string           `json:"category" validate:"required,oneof=astana intercity"`
	CargoName       string           `json:"cargoName" validate:"required,max=255"`
	CargoWeight     *decimal.Decimal `json:"cargoWeight" swaggertype:"number"`
	CargoVolume     *decimal.Decimal `json:"cargoVolume" swaggertype:"number"`
	CargoDimensions string           `json:"cargoDimensions"`

	LoadingAddress   string `json:"loadingAddress" validate:"required"`
	LoadingContact   string `json:"loadingContact"`
	UnloadingAddress string `json:"unloadingAddress" validate:"required"`
	UnloadingContact string `json:"unloadingContact"`

	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone" validate:"required"`
	ClientEmail string `json:"clientEmail" validate:"omitempty,email"`
}

type requestResponse struct {
	Request *domain.ShipmentRequest `json:"request"`
}

type submittedResponse struct {
	RequestNumber string `json:"requestNumber"`
}

type statsResponse struct {
	Counts map[domain.RequestStatus]int64 `json:"counts"`
	Total  int64                          `json:"total"`
}

// publicRequestView is the subset of a request disclosed without a session.
type publicRequestView struct {
	RequestNumber    string               `json:"requestNumber"`
	Category         domain.Category      `json:"category"`
	Status           domain.RequestStatus `json:"status"`
	CargoName        string               `json:"cargoName"`
	LoadingAddress   string               `json:"loadingAddress"`
	UnloadingAddress string               `json:"unloadingAddress"`
	VehicleModel     string               `json:"vehicleModel,omitempty"`
	VehiclePlate     string               `json:"vehiclePlate,omitempty"`
	CreatedAt        string               `json:"createdAt"`
	UpdatedAt        string               `json:"updatedAt"`
}
