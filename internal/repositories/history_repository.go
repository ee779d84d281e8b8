package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"melodex/internal/models"
)

// HistoryRepository defines access to per-listener play history
type HistoryRepository interface {
	// RecordPlay increments the play count for the (listener, track)
	// pair, creating the entry on first play. The operation is a single
	// atomic upsert: concurrent plays never lose an increment or create
	// a duplicate entry.
	RecordPlay(ctx context.Context, listenerID, trackID primitive.ObjectID) error

	// ListByListener returns every history entry for a listener. Order
	// is unspecified; an unknown listener yields an empty slice.
	ListByListener(ctx context.Context, listenerID primitive.ObjectID) ([]*models.PlayHistoryEntry, error)
}
