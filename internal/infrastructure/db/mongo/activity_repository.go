package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/supplyline/scm-console/internal/core/domain"
	"github.com/supplyline/scm-console/internal/core/ports"
)

const activityCollection = "activity_log"

// ActivityRepository stores the append-only audit trail. There are no update
// or delete operations here and none should ever be added.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

func (r *ActivityRepository) Append(ctx context.Context, entry *domain.ActivityEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) List(ctx context.Context, filter ports.ListActivityFilter) ([]*domain.ActivityEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.ActorID != "" {
		query["actor_id"] = filter.ActorID
	}
	if filter.Action != "" {
		query["action"] = filter.Action
	}
	if !filter.Since.IsZero() {
		query["timestamp"] = bson.M{"$gte": filter.Since}
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer cur.Close(ctx)

	var entries []*domain.ActivityEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode activity: %w", err)
	}
	return entries, nil
}

// EnsureIndexes creates the query indexes on the activity log collection.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "actor_id", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
