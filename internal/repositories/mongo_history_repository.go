package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"melodex/internal/models"
)

// mongoHistoryRepository implements HistoryRepository using MongoDB
type mongoHistoryRepository struct {
	collection *mongo.Collection
}

// NewMongoHistoryRepository creates a new MongoDB-backed history repository
func NewMongoHistoryRepository(db *models.Database) HistoryRepository {
	return &mongoHistoryRepository{
		collection: db.DB.Collection(models.CollectionPlayHistory),
	}
}

// RecordPlay upserts the (listener, track) entry in one atomic update:
// $inc bumps the count, $setOnInsert fills the fixed fields on first
// play. The unique compound index keeps concurrent first plays from
// inserting twice.
func (r *mongoHistoryRepository) RecordPlay(ctx context.Context, listenerID, trackID primitive.ObjectID) error {
	now := time.Now().UTC()

	filter := bson.M{
		"listener_id": listenerID,
		"track_id":    trackID,
	}
	update := bson.M{
		"$inc": bson.M{"play_count": 1},
		"$set": bson.M{"last_played_at": now},
		"$setOnInsert": bson.M{
			"listener_id": listenerID,
			"track_id":    trackID,
			"created_at":  now,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to record play: %w", err)
	}
	return nil
}

// ListByListener returns all history entries for a listener
func (r *mongoHistoryRepository) ListByListener(ctx context.Context, listenerID primitive.ObjectID) ([]*models.PlayHistoryEntry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"listener_id": listenerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list play history: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*models.PlayHistoryEntry
	for cursor.Next(ctx) {
		var entry models.PlayHistoryEntry
		if err := cursor.Decode(&entry); err != nil {
			slog.Error("Failed to decode history entry", "error", err)
			continue
		}
		entries = append(entries, &entry)
	}

	return entries, cursor.Err()
}
