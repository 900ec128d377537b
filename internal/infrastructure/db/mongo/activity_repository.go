package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/astana-logistics/cargo-desk/internal/core/domain"
	"github.com/astana-logistics/cargo-desk/internal/core/ports"
)

const activityCollection = "activity_logs"

// activityDocument is the stored shape of an activity entry.
type activityDocument struct {
	ID        string         `bson:"_id"`
	UserID    *string        `bson:"user_id"`
	Action    string         `bson:"action"`
	Details   map[string]any `bson:"details"`
	IPAddress string         `bson:"ip_address,omitempty"`
	CreatedAt int64          `bson:"created_at"`
}

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	db *mongo.Database
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Insert appends entry to the activity_logs collection.
func (r *ActivityRepository) Insert(ctx context.Context, entry *domain.ActivityLog) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.db.Collection(activityCollection).InsertOne(ctx, toActivityDocument(entry)); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// List returns one page of entries, newest first.
func (r *ActivityRepository) List(ctx context.Context, f ports.ActivityFilter) ([]domain.ActivityLog, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	coll := r.db.Collection(activityCollection)
	filter := activityFilter(f)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count activity: %w", err)
	}

	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list activity: %w", err)
	}
	defer cur.Close(ctx)

	var docs []activityDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode activity: %w", err)
	}

	items := make([]domain.ActivityLog, 0, len(docs))
	for _, d := range docs {
		items = append(items, fromActivityDocument(d))
	}
	return items, total, nil
}

func activityFilter(f ports.ActivityFilter) bson.M {
	filter := bson.M{}
	if f.UserID.Valid {
		filter["user_id"] = f.UserID.UUID.String()
	}
	if f.Action != "" {
		filter["action"] = f.Action
	}
	return filter
}

func toActivityDocument(e *domain.ActivityLog) activityDocument {
	doc := activityDocument{
		ID:        e.ID.String(),
		Action:    e.Action,
		Details:   map[string]any(e.Details),
		IPAddress: e.IPAddress,
		CreatedAt: e.CreatedAt.UTC().UnixMilli(),
	}
	if doc.Details == nil {
		doc.Details = map[string]any{}
	}
	if e.UserID.Valid {
		id := e.UserID.UUID.String()
		doc.UserID = &id
	}
	return doc
}

func fromActivityDocument(d activityDocument) domain.ActivityLog {
	e := domain.ActivityLog{
		Action:    d.Action,
		Details:   domain.Details(d.Details),
		IPAddress: d.IPAddress,
		CreatedAt: time.UnixMilli(d.CreatedAt).UTC(),
	}
	e.ID, _ = uuid.Parse(d.ID)
	if d.UserID != nil {
		if id, err := uuid.Parse(*d.UserID); err == nil {
			e.UserID = uuid.NullUUID{UUID: id, Valid: true}
		}
	}
	return e
}
