package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"melodex/internal/models"
)

// TrackFilter carries the match predicate for a track search: the
// free-text term plus optional exact-membership facet filters. All
// supplied parts combine with logical AND; only public tracks match.
type TrackFilter struct {
	Term     string
	Genre    string
	Language string
	Tag      string
}

// CatalogRepository defines read access to the track/album/performer catalog
type CatalogRepository interface {
	// Paginated search operations (term matched case-insensitively
	// against each entity's full searchable surface)
	SearchTracks(ctx context.Context, filter TrackFilter, skip, limit int64) ([]*models.TrackResult, error)
	CountTracks(ctx context.Context, filter TrackFilter) (int64, error)
	SearchAlbums(ctx context.Context, term string, skip, limit int64) ([]*models.AlbumResult, error)
	CountAlbums(ctx context.Context, term string) (int64, error)
	SearchPerformers(ctx context.Context, term string, skip, limit int64) ([]*models.Performer, error)
	CountPerformers(ctx context.Context, term string) (int64, error)

	// Single-field lookups backing the quick track search
	FindTracksByTitle(ctx context.Context, term string, limit int64) ([]*models.Track, error)
	FindTracksByPerformerName(ctx context.Context, term string, limit int64) ([]*models.Track, error)
	FindTracksByLyrics(ctx context.Context, term string, limit int64) ([]*models.Track, error)
	FindTracksByGenre(ctx context.Context, genre string, limit int64) ([]*models.Track, error)

	// Recommendation support
	FindTracksByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Track, error)
	FindPreferenceCandidates(ctx context.Context, exclude []primitive.ObjectID, genres []string, performerIDs []primitive.ObjectID, tags []string, limit int64) ([]*models.Track, error)
	SampleExploreTracks(ctx context.Context, exclude []primitive.ObjectID, size int64) ([]*models.Track, error)

	CountPublicTracks(ctx context.Context) (int64, error)
}
