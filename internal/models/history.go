package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlayHistoryEntry records how often a listener has played a track.
// One document exists per (listener, track) pair; the compound unique
// index in CreateIndexes enforces that, and RecordPlay's upsert keeps
// concurrent plays from losing increments or duplicating entries.
type PlayHistoryEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ListenerID   primitive.ObjectID `bson:"listener_id" json:"listener_id"`
	TrackID      primitive.ObjectID `bson:"track_id" json:"track_id"`
	PlayCount    int64              `bson:"play_count" json:"play_count"`
	LastPlayedAt time.Time          `bson:"last_played_at" json:"last_played_at"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
