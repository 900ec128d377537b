package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

func TestActivityRepository_Insert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActivityRepository(db)

	entry := &domain.ActivityLog{
		ID:        uuid.New(),
		Action:    domain.ActionPublicSubmission,
		Details:   domain.Details{"request_number": "INT-2025-003"},
		IPAddress: "10.1.1.1",
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO activity_logs`).
		WithArgs(entry.ID.String(), nil, entry.Action, `{"request_number":"INT-2025-003"}`, "10.1.1.1", entry.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Insert(context.Background(), entry); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestActivityRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActivityRepository(db)
	userID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM activity_logs WHERE user_id = $1 AND action = $2`)).
		WithArgs(userID.String(), domain.ActionLogin).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`LIMIT $3 OFFSET $4`)).
		WithArgs(userID.String(), domain.ActionLogin, 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "action", "details", "ip_address", "created_at"}).
			AddRow(uuid.New().String(), userID.String(), domain.ActionLogin, []byte(`{}`), "127.0.0.1", now))

	items, total, err := repo.List(context.Background(), ports.ActivityFilter{
		UserID: uuid.NullUUID{UUID: userID, Valid: true},
		Action: domain.ActionLogin,
		Page:   1,
		Limit:  20,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected 1 item, got %d (total %d)", len(items), total)
	}
	if !items[0].UserID.Valid || items[0].UserID.UUID != userID {
		t.Fatalf("unexpected user id %+v", items[0].UserID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
