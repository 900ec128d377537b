package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
)

// ActivityFilter carries query parameters for the audit trail.
type ActivityFilter struct {
	UserID uuid.NullUUID // optional
	Action string        // optional
	Page   int           // 1-based
	Limit  int
}

// ActivityRepository is the append-only audit sink.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityLog) error
	List(ctx context.Context, filter ActivityFilter) ([]domain.ActivityLog, int64, error)
}
