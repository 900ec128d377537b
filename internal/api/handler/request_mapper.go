package handler

import (
	"time"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(p createRequestPayload) ports.CreateRequestInput {
	return ports.CreateRequestInput{
		Category:         p.Category,
		CargoName:        p.CargoName,
		CargoWeight:      p.CargoWeight,
		CargoVolume:      p.CargoVolume,
		CargoDimensions:  p.CargoDimensions,
		Photos:           p.Photos,
		LoadingAddress:   p.LoadingAddress,
		LoadingContact:   p.LoadingContact,
		UnloadingAddress: p.UnloadingAddress,
		UnloadingContact: p.UnloadingContact,
		TransportInfo:    toTransportInfo(p.TransportInfo),
		Price:            p.Price,
		Notes:            p.Notes,
		ClientName:       p.ClientName,
		ClientPhone:      p.ClientPhone,
		ClientEmail:      p.ClientEmail,
	}
}

func toPublicCreateInput(p publicRequestPayload) ports.CreateRequestInput {
	return ports.CreateRequestInput{
		Category:         p.Category,
		CargoName:        p.CargoName,
		CargoWeight:      p.CargoWeight,
		CargoVolume:      p.CargoVolume,
		CargoDimensions:  p.CargoDimensions,
		LoadingAddress:   p.LoadingAddress,
		LoadingContact:   p.LoadingContact,
		UnloadingAddress: p.UnloadingAddress,
		UnloadingContact: p.UnloadingContact,
		ClientName:       p.ClientName,
		ClientPhone:      p.ClientPhone,
		ClientEmail:      p.ClientEmail,
	}
}

func toUpdateInput(p updateRequestPayload) ports.UpdateRequestInput {
	return ports.UpdateRequestInput{
		CargoName:        p.CargoName,
		CargoWeight:      p.CargoWeight,
		CargoVolume:      p.CargoVolume,
		CargoDimensions:  p.CargoDimensions,
		Photos:           p.Photos,
		LoadingAddress:   p.LoadingAddress,
		LoadingContact:   p.LoadingContact,
		UnloadingAddress: p.UnloadingAddress,
		UnloadingContact: p.UnloadingContact,
		TransportInfo:    toTransportInfo(p.TransportInfo),
		Price:            p.Price,
		Notes:            p.Notes,
		ClientName:       p.ClientName,
		ClientPhone:      p.ClientPhone,
		ClientEmail:      p.ClientEmail,
	}
}

func toTransportInfo(t *transportRequest) *domain.TransportInfo {
	if t == nil {
		return nil
	}
	return &domain.TransportInfo{
		DriverName:   t.DriverName,
		DriverPhone:  t.DriverPhone,
		VehicleModel: t.VehicleModel,
		VehiclePlate: t.VehiclePlate,
	}
}

// --- Service result → HTTP response ---

// toPublicView strips price, notes, contacts and the creator reference.
func toPublicView(r *domain.ShipmentRequest) publicRequestView {
	v := publicRequestView{
		RequestNumber:    r.RequestNumber,
		Category:         r.Category,
		Status:           r.Status,
		CargoName:        r.CargoName,
		LoadingAddress:   r.LoadingAddress,
		UnloadingAddress: r.UnloadingAddress,
		CreatedAt:        r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        r.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if r.TransportInfo != nil {
		v.VehicleModel = r.TransportInfo.VehicleModel
		v.VehiclePlate = r.TransportInfo.VehiclePlate
	}
	return v
}

func toPage[T any](items []T, total int64, page, limit, totalPages int) pagedData[T] {
	return pagedData[T]{
		Items: items,
		Pagination: pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
