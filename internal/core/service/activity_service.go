package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

type activityService struct {
	repo     ports.ActivityRepository
	failures prometheus.Counter
	log      zerolog.Logger
	now      func() time.Time
}

// NewActivityService returns an ActivityService writing to repo. failures,
// when non-nil, is incremented for every entry that could not be written.
func NewActivityService(repo ports.ActivityRepository, failures prometheus.Counter, log zerolog.Logger) ports.ActivityService {
	return &activityService{
		repo:     repo,
		failures: failures,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Record appends an audit entry. A failed write is logged and dropped.
func (s *activityService) Record(ctx context.Context, userID uuid.NullUUID, action string, details domain.Details) {
	if details == nil {
		details = domain.Details{}
	}
	entry := &domain.ActivityLog{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: domain.ClientMetaFrom(ctx).IPAddress,
		CreatedAt: s.now(),
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		if s.failures != nil {
			s.failures.Inc()
		}
		s.log.Warn().Err(err).Str("action", action).Msg("failed to record activity")
	}
}

func (s *activityService) List(ctx context.Context, f ports.ActivityFilter) (*ports.ActivityListResult, error) {
	f.Page, f.Limit = normalizePage(f.Page, f.Limit)

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.ActivityLog{}
	}

	return &ports.ActivityListResult{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: totalPages(total, f.Limit),
	}, nil
}
