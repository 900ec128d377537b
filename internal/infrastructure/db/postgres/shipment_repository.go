package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

const requestColumns = `id, request_number, category, status, created_by,
	cargo_name, cargo_weight, cargo_volume, cargo_dimensions, photos,
	loading_address, loading_contact, unloading_address, unloading_contact,
	transport_info, price, notes, client_name, client_phone, client_email,
	created_at, updated_at`

// allocateSequenceSQL hands out the next value for (prefix, year). The first
// allocation of a pair is seeded from the requests already numbered under it;
// later ones serialize on the sequence row lock.
const allocateSequenceSQL = `
	INSERT INTO request_number_sequences (prefix, year, last_value)
	VALUES ($1, $2, (SELECT COUNT(*) FROM shipment_requests WHERE request_number LIKE $3) + 1)
	ON CONFLICT (prefix, year)
	DO UPDATE SET last_value = request_number_sequences.last_value + 1
	RETURNING last_value`

// ShipmentRequestRepository implements ports.ShipmentRequestRepository on PostgreSQL.
type ShipmentRequestRepository struct {
	db *sqlx.DB
}

func NewShipmentRequestRepository(db *sqlx.DB) *ShipmentRequestRepository {
	return &ShipmentRequestRepository{db: db}
}

// Create allocates the request number and inserts r in one transaction.
func (r *ShipmentRequestRepository) Create(ctx context.Context, req *domain.ShipmentRequest, prefix string, year int) (err error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var seq int
	pattern := fmt.Sprintf("%s-%d-%%", prefix, year)
	if err = tx.GetContext(ctx, &seq, allocateSequenceSQL, prefix, year, pattern); err != nil {
		return fmt.Errorf("allocate request number: %w", err)
	}
	number := domain.FormatRequestNumber(prefix, year, seq)

	query := `
		INSERT INTO shipment_requests (
			id, request_number, category, status, created_by,
			cargo_name, cargo_weight, cargo_volume, cargo_dimensions, photos,
			loading_address, loading_contact, unloading_address, unloading_contact,
			transport_info, price, notes, client_name, client_phone, client_email
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING created_at, updated_at`

	row := tx.QueryRowxContext(ctx, query,
		req.ID, number, req.Category, req.Status, req.CreatedBy,
		req.CargoName, req.CargoWeight, req.CargoVolume, req.CargoDimensions, req.Photos,
		req.LoadingAddress, req.LoadingContact, req.UnloadingAddress, req.UnloadingContact,
		req.TransportInfo, req.Price, req.Notes, req.ClientName, req.ClientPhone, req.ClientEmail,
	)
	if err = row.Scan(&req.CreatedAt, &req.UpdatedAt); err != nil {
		return fmt.Errorf("insert request: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit request: %w", err)
	}
	req.RequestNumber = number
	return nil
}

func (r *ShipmentRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ShipmentRequest, error) {
	return r.findOne(ctx, `SELECT `+requestColumns+` FROM shipment_requests WHERE id = $1`, id)
}

func (r *ShipmentRequestRepository) FindByNumber(ctx context.Context, number string) (*domain.ShipmentRequest, error) {
	return r.findOne(ctx, `SELECT `+requestColumns+` FROM shipment_requests WHERE request_number = $1`, number)
}

func (r *ShipmentRequestRepository) findOne(ctx context.Context, query string, arg any) (*domain.ShipmentRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.ShipmentRequest
	if err := r.db.GetContext(ctx, &req, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return &req, nil
}

func (r *ShipmentRequestRepository) ListByClientPhone(ctx context.Context, phone string) ([]domain.ShipmentRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `SELECT ` + requestColumns + ` FROM shipment_requests WHERE client_phone = $1 ORDER BY created_at DESC LIMIT 50`

	var items []domain.ShipmentRequest
	if err := r.db.SelectContext(ctx, &items, query, phone); err != nil {
		return nil, fmt.Errorf("list requests by phone: %w", err)
	}
	return items, nil
}

// Update writes every mutable column. Number, category and creator are left alone.
func (r *ShipmentRequestRepository) Update(ctx context.Context, req *domain.ShipmentRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		UPDATE shipment_requests SET
			cargo_name = $2, cargo_weight = $3, cargo_volume = $4, cargo_dimensions = $5, photos = $6,
			loading_address = $7, loading_contact = $8, unloading_address = $9, unloading_contact = $10,
			transport_info = $11, price = $12, notes = $13,
			client_name = $14, client_phone = $15, client_email = $16,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		req.ID,
		req.CargoName, req.CargoWeight, req.CargoVolume, req.CargoDimensions, req.Photos,
		req.LoadingAddress, req.LoadingContact, req.UnloadingAddress, req.UnloadingContact,
		req.TransportInfo, req.Price, req.Notes,
		req.ClientName, req.ClientPhone, req.ClientEmail,
	).Scan(&req.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrRequestNotFound
		}
		return fmt.Errorf("update request: %w", err)
	}
	return nil
}

func (r *ShipmentRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (*domain.ShipmentRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `UPDATE shipment_requests SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + requestColumns

	var req domain.ShipmentRequest
	if err := r.db.GetContext(ctx, &req, query, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("update status: %w", err)
	}
	return &req, nil
}

// List returns one page of requests, newest first, and the total match count.
func (r *ShipmentRequestRepository) List(ctx context.Context, f ports.ListRequestsFilter) ([]domain.ShipmentRequest, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	where, args := buildRequestFilter(f)

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM shipment_requests`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count requests: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`SELECT %s FROM shipment_requests%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		requestColumns, where, len(args)-1, len(args))

	var items []domain.ShipmentRequest
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list requests: %w", err)
	}
	return items, total, nil
}

func (r *ShipmentRequestRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []struct {
		Status domain.RequestStatus `db:"status"`
		Count  int64                `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, `SELECT status, COUNT(*) AS count FROM shipment_requests GROUP BY status`); err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	out := make(map[domain.RequestStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// buildRequestFilter renders the WHERE clause (with leading space) and its args.
func buildRequestFilter(f ports.ListRequestsFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.CreatedBy.Valid {
		add("created_by = $%d", f.CreatedBy.UUID)
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(request_number ILIKE $%d OR cargo_name ILIKE $%d OR client_name ILIKE $%d)", n, n, n))
	}
	if !f.DateFrom.IsZero() {
		add("created_at >= $%d", f.DateFrom)
	}
	if !f.DateTo.IsZero() {
		add("created_at <= $%d", f.DateTo)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
