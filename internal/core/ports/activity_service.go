package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
)

// ActivityListResult is returned by ActivityService.List.
type ActivityListResult struct {
	Items      []domain.ActivityLog
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ActivityService records and lists audit entries.
type ActivityService interface {
	// Record appends an entry. Failures are logged and never surfaced.
	Record(ctx context.Context, userID uuid.NullUUID, action string, details domain.Details)
	List(ctx context.Context, filter ActivityFilter) (*ActivityListResult, error)
}
