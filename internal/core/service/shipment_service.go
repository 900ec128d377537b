package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	dateLayout       = "2006-01-02"
)

type ShipmentService struct {
	repo     ports.ShipmentRequestRepository
	activity ports.ActivityService
	logger   zerolog.Logger
	now      func() time.Time
}

func NewShipmentService(repo ports.ShipmentRequestRepository, activity ports.ActivityService, logger zerolog.Logger) *ShipmentService {
	return &ShipmentService{
		repo:     repo,
		activity: activity,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create validates and persists a new request with status new. The request
// number year is taken from the creation instant. A nil creator marks a
// public submission, which must carry the client's phone.
func (s *ShipmentService) Create(ctx context.Context, in ports.CreateRequestInput, creator *domain.User) (*domain.ShipmentRequest, error) {
	category := domain.Category(strings.TrimSpace(in.Category))
	prefix, err := category.Prefix()
	if err != nil {
		return nil, err
	}

	r := &domain.ShipmentRequest{
		ID:               uuid.New(),
		Category:         category,
		Status:           domain.StatusNew,
		CargoName:        strings.TrimSpace(in.CargoName),
		CargoWeight:      nullDecimal(in.CargoWeight),
		CargoVolume:      nullDecimal(in.CargoVolume),
		CargoDimensions:  strings.TrimSpace(in.CargoDimensions),
		Photos:           in.Photos,
		LoadingAddress:   strings.TrimSpace(in.LoadingAddress),
		LoadingContact:   strings.TrimSpace(in.LoadingContact),
		UnloadingAddress: strings.TrimSpace(in.UnloadingAddress),
		UnloadingContact: strings.TrimSpace(in.UnloadingContact),
		TransportInfo:    nonZeroTransport(in.TransportInfo),
		Price:            nullDecimal(in.Price),
		Notes:            strings.TrimSpace(in.Notes),
		ClientName:       strings.TrimSpace(in.ClientName),
		ClientPhone:      strings.TrimSpace(in.ClientPhone),
		ClientEmail:      strings.TrimSpace(in.ClientEmail),
	}
	if creator != nil {
		r.CreatedBy = uuid.NullUUID{UUID: creator.ID, Valid: true}
	}
	if r.Photos == nil {
		r.Photos = []string{}
	}

	if err := validateRequest(r); err != nil {
		return nil, err
	}

	year := s.now().Year()
	if err := s.repo.Create(ctx, r, prefix, year); err != nil {
		s.logger.Error().Err(err).Str("category", string(category)).Msg("failed to create shipment request")
		return nil, fmt.Errorf("create request: %w", err)
	}

	action := domain.ActionRequestCreated
	if creator == nil {
		action = domain.ActionPublicSubmission
	}
	s.activity.Record(ctx, r.CreatedBy, action, domain.Details{
		"request_id":     r.ID.String(),
		"request_number": r.RequestNumber,
		"category":       string(r.Category),
	})

	s.logger.Info().
		Str("request_number", r.RequestNumber).
		Bool("public", creator == nil).
		Msg("shipment request created")

	return r, nil
}

func (s *ShipmentService) Get(ctx context.Context, id uuid.UUID) (*domain.ShipmentRequest, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ShipmentService) GetByNumber(ctx context.Context, number string) (*domain.ShipmentRequest, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return nil, domain.ErrRequestNotFound
	}
	return s.repo.FindByNumber(ctx, number)
}

func (s *ShipmentService) ListByClientPhone(ctx context.Context, phone string) ([]domain.ShipmentRequest, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, domain.NewValidationError("phone", "is required")
	}
	items, err := s.repo.ListByClientPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.ShipmentRequest{}
	}
	return items, nil
}

// Update applies a partial update. The request number and category never change.
func (s *ShipmentService) Update(ctx context.Context, id uuid.UUID, in ports.UpdateRequestInput, actor *domain.User) (*domain.ShipmentRequest, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyString(&r.CargoName, in.CargoName)
	applyString(&r.CargoDimensions, in.CargoDimensions)
	applyString(&r.LoadingAddress, in.LoadingAddress)
	applyString(&r.LoadingContact, in.LoadingContact)
	applyString(&r.UnloadingAddress, in.UnloadingAddress)
	applyString(&r.UnloadingContact, in.UnloadingContact)
	applyString(&r.Notes, in.Notes)
	applyString(&r.ClientName, in.ClientName)
	applyString(&r.ClientPhone, in.ClientPhone)
	applyString(&r.ClientEmail, in.ClientEmail)
	if in.CargoWeight != nil {
		r.CargoWeight = nullDecimal(in.CargoWeight)
	}
	if in.CargoVolume != nil {
		r.CargoVolume = nullDecimal(in.CargoVolume)
	}
	if in.Price != nil {
		r.Price = nullDecimal(in.Price)
	}
	if in.Photos != nil {
		r.Photos = in.Photos
	}
	if in.TransportInfo != nil {
		r.TransportInfo = nonZeroTransport(in.TransportInfo)
	}

	if err := validateRequest(r); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("update request: %w", err)
	}

	s.activity.Record(ctx, actorID(actor), domain.ActionRequestUpdated, domain.Details{
		"request_id":     r.ID.String(),
		"request_number": r.RequestNumber,
	})
	return r, nil
}

// UpdateStatus moves a request to status. Any known status may follow any other.
func (s *ShipmentService) UpdateStatus(ctx context.Context, id uuid.UUID, status string, actor *domain.User) (*domain.ShipmentRequest, error) {
	next := domain.RequestStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidStatus, current.Status, next)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	s.activity.Record(ctx, actorID(actor), domain.ActionStatusChanged, domain.Details{
		"request_id":     updated.ID.String(),
		"request_number": updated.RequestNumber,
		"from":           string(current.Status),
		"to":             string(next),
	})
	s.logger.Info().
		Str("request_number", updated.RequestNumber).
		Str("from", string(current.Status)).
		Str("to", string(next)).
		Msg("status changed")

	return updated, nil
}

// List returns a filtered page of requests.
func (s *ShipmentService) List(ctx context.Context, in ports.ListRequestsInput) (*ports.ListRequestsResult, error) {
	if in.Status != "" && !domain.RequestStatus(in.Status).Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
	}
	if in.Category != "" {
		if _, err := domain.Category(in.Category).Prefix(); err != nil {
			return nil, err
		}
	}

	filter := ports.ListRequestsFilter{
		Status:    in.Status,
		Category:  in.Category,
		CreatedBy: in.CreatedBy,
		Search:    strings.TrimSpace(in.Search),
	}
	filter.Page, filter.Limit = normalizePage(in.Page, in.Limit)

	if in.DateFrom != "" {
		from, err := time.Parse(dateLayout, in.DateFrom)
		if err != nil {
			return nil, domain.NewValidationError("dateFrom", "must be YYYY-MM-DD")
		}
		filter.DateFrom = from
	}
	if in.DateTo != "" {
		to, err := time.Parse(dateLayout, in.DateTo)
		if err != nil {
			return nil, domain.NewValidationError("dateTo", "must be YYYY-MM-DD")
		}
		// inclusive: through the end of that day
		filter.DateTo = to.Add(24*time.Hour - time.Nanosecond)
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	if items == nil {
		items = []domain.ShipmentRequest{}
	}

	return &ports.ListRequestsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// Stats returns request counts for every status, zero-filled.
func (s *ShipmentService) Stats(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("request stats: %w", err)
	}
	out := make(map[domain.RequestStatus]int64, len(domain.AllStatuses))
	for _, st := range domain.AllStatuses {
		out[st] = counts[st]
	}
	return out, nil
}

func validateRequest(r *domain.ShipmentRequest) error {
	if r.CargoName == "" {
		return domain.NewValidationError("cargoName", "is required")
	}
	if r.LoadingAddress == "" {
		return domain.NewValidationError("loadingAddress", "is required")
	}
	if r.UnloadingAddress == "" {
		return domain.NewValidationError("unloadingAddress", "is required")
	}
	if r.IsPublicSubmission() && r.ClientPhone == "" {
		return domain.NewValidationError("clientPhone", "is required")
	}
	return nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func nonZeroTransport(t *domain.TransportInfo) *domain.TransportInfo {
	if t == nil || t.IsZero() {
		return nil
	}
	clone := *t
	return &clone
}

func actorID(u *domain.User) uuid.NullUUID {
	if u == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: u.ID, Valid: true}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 || total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
