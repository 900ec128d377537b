package mongo

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

func TestActivityDocument_PreservesAnonymousEntries(t *testing.T) {
	entry := &domain.ActivityLog{
		ID:        uuid.New(),
		Action:    domain.ActionPublicSubmission,
		CreatedAt: time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC),
	}

	doc := toActivityDocument(entry)
	if doc.UserID != nil {
		t.Fatalf("expected nil user id, got %v", *doc.UserID)
	}
	if doc.Details == nil {
		t.Fatal("expected empty details map")
	}

	back := fromActivityDocument(doc)
	if back.ID != entry.ID || back.UserID.Valid || !back.CreatedAt.Equal(entry.CreatedAt) {
		t.Fatalf("unexpected entry %+v", back)
	}
}

func TestActivityDocument_WithUser(t *testing.T) {
	userID := uuid.New()
	entry := &domain.ActivityLog{
		ID:      uuid.New(),
		UserID:  uuid.NullUUID{UUID: userID, Valid: true},
		Action:  domain.ActionLogin,
		Details: domain.Details{"username": "alice"},
	}

	back := fromActivityDocument(toActivityDocument(entry))
	if !back.UserID.Valid || back.UserID.UUID != userID {
		t.Fatalf("unexpected user id %+v", back.UserID)
	}
	if back.Details["username"] != "alice" {
		t.Fatalf("unexpected details %v", back.Details)
	}
}

func TestActivityFilter(t *testing.T) {
	userID := uuid.New()
	f := activityFilter(ports.ActivityFilter{
		UserID: uuid.NullUUID{UUID: userID, Valid: true},
		Action: domain.ActionLogout,
	})
	if f["user_id"] != userID.String() || f["action"] != domain.ActionLogout {
		t.Fatalf("unexpected filter %v", f)
	}
	if len(activityFilter(ports.ActivityFilter{})) != 0 {
		t.Fatal("expected empty filter")
	}
}
