package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"melodex/internal/models"
)

// mongoCatalogRepository implements CatalogRepository using MongoDB
type mongoCatalogRepository struct {
	tracks     *mongo.Collection
	albums     *mongo.Collection
	performers *mongo.Collection
}

// NewMongoCatalogRepository creates a new MongoDB-backed catalog repository
func NewMongoCatalogRepository(db *models.Database) CatalogRepository {
	return &mongoCatalogRepository{
		tracks:     db.DB.Collection(models.CollectionTracks),
		albums:     db.DB.Collection(models.CollectionAlbums),
		performers: db.DB.Collection(models.CollectionPerformers),
	}
}

// containsPattern builds a case-insensitive substring regex for a term
func containsPattern(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

// trackMatchStages builds the shared join-then-filter prefix of the
// track search pipeline: resolve performer/album/uploader names, then
// match public tracks against the term across every searchable surface,
// ANDed with any exact-membership facet filters.
func trackMatchStages(filter TrackFilter) []bson.M {
	stages := []bson.M{
		{"$lookup": bson.M{
			"from":         models.CollectionPerformers,
			"localField":   "performers",
			"foreignField": "_id",
			"as":           "performer_docs",
		}},
		{"$lookup": bson.M{
			"from":         models.CollectionAlbums,
			"localField":   "album",
			"foreignField": "_id",
			"as":           "album_doc",
		}},
		{"$lookup": bson.M{
			"from":         models.CollectionUsers,
			"localField":   "uploaded_by",
			"foreignField": "_id",
			"as":           "uploader_doc",
		}},
		{"$unwind": bson.M{"path": "$album_doc", "preserveNullAndEmptyArrays": true}},
		{"$unwind": bson.M{"path": "$uploader_doc", "preserveNullAndEmptyArrays": true}},
	}

	and := []bson.M{{"status": models.StatusPublic}}
	if filter.Term != "" {
		pattern := containsPattern(filter.Term)
		and = append(and, bson.M{"$or": []bson.M{
			{"title": pattern},
			{"performer_docs.name": pattern},
			{"album_doc.title": pattern},
			{"tags": pattern},
		}})
	}
	if filter.Genre != "" {
		and = append(and, bson.M{"genres": filter.Genre})
	}
	if filter.Language != "" {
		and = append(and, bson.M{"language": filter.Language})
	}
	if filter.Tag != "" {
		and = append(and, bson.M{"tags": filter.Tag})
	}
	stages = append(stages, bson.M{"$match": bson.M{"$and": and}})

	return stages
}

// SearchTracks returns one page of public tracks matching the filter,
// joined with performer, album, and uploader display names
func (r *mongoCatalogRepository) SearchTracks(ctx context.Context, filter TrackFilter, skip, limit int64) ([]*models.TrackResult, error) {
	pipeline := trackMatchStages(filter)
	pipeline = append(pipeline,
		bson.M{"$addFields": bson.M{
			"performer_names": "$performer_docs.name",
			"album_title":     bson.M{"$ifNull": []interface{}{"$album_doc.title", ""}},
			"uploader_name":   bson.M{"$ifNull": []interface{}{"$uploader_doc.username", ""}},
		}},
		bson.M{"$project": bson.M{"performer_docs": 0, "album_doc": 0, "uploader_doc": 0}},
		bson.M{"$skip": skip},
		bson.M{"$limit": limit},
	)

	cursor, err := r.tracks.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to search tracks: %w", err)
	}
	defer cursor.Close(ctx)

	var results []*models.TrackResult
	for cursor.Next(ctx) {
		var result models.TrackResult
		if err := cursor.Decode(&result); err != nil {
			slog.Error("Failed to decode track result", "error", err)
			continue
		}
		results = append(results, &result)
	}

	return results, cursor.Err()
}

// CountTracks counts the full match set for the filter, pre-pagination
func (r *mongoCatalogRepository) CountTracks(ctx context.Context, filter TrackFilter) (int64, error) {
	pipeline := append(trackMatchStages(filter), bson.M{"$count": "total"})

	cursor, err := r.tracks.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &counts); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	if len(counts) == 0 {
		return 0, nil
	}
	return counts[0].Total, nil
}

// albumMatchStages joins the album's performer and matches the term
// against the album title or the performer's name
func albumMatchStages(term string) []bson.M {
	pattern := containsPattern(term)
	return []bson.M{
		{"$lookup": bson.M{
			"from":         models.CollectionPerformers,
			"localField":   "performer",
			"foreignField": "_id",
			"as":           "performer_doc",
		}},
		{"$unwind": bson.M{"path": "$performer_doc", "preserveNullAndEmptyArrays": true}},
		{"$match": bson.M{"$or": []bson.M{
			{"title": pattern},
			{"performer_doc.name": pattern},
		}}},
	}
}

// SearchAlbums returns one page of albums whose title or performer name
// contains the term
func (r *mongoCatalogRepository) SearchAlbums(ctx context.Context, term string, skip, limit int64) ([]*models.AlbumResult, error) {
	pipeline := albumMatchStages(term)
	pipeline = append(pipeline,
		bson.M{"$addFields": bson.M{
			"performer_name": bson.M{"$ifNull": []interface{}{"$performer_doc.name", ""}},
		}},
		bson.M{"$project": bson.M{"performer_doc": 0}},
		bson.M{"$skip": skip},
		bson.M{"$limit": limit},
	)

	cursor, err := r.albums.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to search albums: %w", err)
	}
	defer cursor.Close(ctx)

	var results []*models.AlbumResult
	for cursor.Next(ctx) {
		var result models.AlbumResult
		if err := cursor.Decode(&result); err != nil {
			slog.Error("Failed to decode album result", "error", err)
			continue
		}
		results = append(results, &result)
	}

	return results, cursor.Err()
}

// CountAlbums counts the full album match set for the term
func (r *mongoCatalogRepository) CountAlbums(ctx context.Context, term string) (int64, error) {
	pipeline := append(albumMatchStages(term), bson.M{"$count": "total"})

	cursor, err := r.albums.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to count albums: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &counts); err != nil {
		return 0, fmt.Errorf("failed to count albums: %w", err)
	}
	if len(counts) == 0 {
		return 0, nil
	}
	return counts[0].Total, nil
}

// SearchPerformers returns one page of performers whose name contains the term
func (r *mongoCatalogRepository) SearchPerformers(ctx context.Context, term string, skip, limit int64) ([]*models.Performer, error) {
	filter := bson.M{"name": containsPattern(term)}
	opts := options.Find().SetSkip(skip).SetLimit(limit)

	cursor, err := r.performers.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search performers: %w", err)
	}
	defer cursor.Close(ctx)

	var results []*models.Performer
	for cursor.Next(ctx) {
		var performer models.Performer
		if err := cursor.Decode(&performer); err != nil {
			slog.Error("Failed to decode performer", "error", err)
			continue
		}
		results = append(results, &performer)
	}

	return results, cursor.Err()
}

// CountPerformers counts performers whose name contains the term
func (r *mongoCatalogRepository) CountPerformers(ctx context.Context, term string) (int64, error) {
	count, err := r.performers.CountDocuments(ctx, bson.M{"name": containsPattern(term)})
	if err != nil {
		return 0, fmt.Errorf("failed to count performers: %w", err)
	}
	return count, nil
}

// findTracks runs a plain filtered find over the tracks collection
func (r *mongoCatalogRepository) findTracks(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Track, error) {
	cursor, err := r.tracks.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find tracks: %w", err)
	}
	defer cursor.Close(ctx)

	var tracks []*models.Track
	for cursor.Next(ctx) {
		var track models.Track
		if err := cursor.Decode(&track); err != nil {
			slog.Error("Failed to decode track", "error", err)
			continue
		}
		tracks = append(tracks, &track)
	}

	return tracks, cursor.Err()
}

// FindTracksByTitle finds public tracks whose title contains the term,
// most-played first
func (r *mongoCatalogRepository) FindTracksByTitle(ctx context.Context, term string, limit int64) ([]*models.Track, error) {
	filter := bson.M{
		"title":  containsPattern(term),
		"status": models.StatusPublic,
	}
	opts := options.Find().SetSort(bson.M{"play_count": -1}).SetLimit(limit)
	return r.findTracks(ctx, filter, opts)
}

// FindTracksByPerformerName finds public tracks by any of whose
// performers' names contain the term
func (r *mongoCatalogRepository) FindTracksByPerformerName(ctx context.Context, term string, limit int64) ([]*models.Track, error) {
	pipeline := []bson.M{
		{"$lookup": bson.M{
			"from":         models.CollectionPerformers,
			"localField":   "performers",
			"foreignField": "_id",
			"as":           "performer_docs",
		}},
		{"$match": bson.M{
			"status":              models.StatusPublic,
			"performer_docs.name": containsPattern(term),
		}},
		{"$sort": bson.M{"play_count": -1}},
		{"$limit": limit},
		{"$project": bson.M{"performer_docs": 0}},
	}

	cursor, err := r.tracks.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to find tracks by performer: %w", err)
	}
	defer cursor.Close(ctx)

	var tracks []*models.Track
	for cursor.Next(ctx) {
		var track models.Track
		if err := cursor.Decode(&track); err != nil {
			slog.Error("Failed to decode track", "error", err)
			continue
		}
		tracks = append(tracks, &track)
	}

	return tracks, cursor.Err()
}

// FindTracksByLyrics finds public tracks whose lyrics contain the term
func (r *mongoCatalogRepository) FindTracksByLyrics(ctx context.Context, term string, limit int64) ([]*models.Track, error) {
	filter := bson.M{
		"lyrics": containsPattern(term),
		"status": models.StatusPublic,
	}
	opts := options.Find().SetLimit(limit)
	return r.findTracks(ctx, filter, opts)
}

// FindTracksByGenre finds public tracks with a genre containing the
// term, most-played first
func (r *mongoCatalogRepository) FindTracksByGenre(ctx context.Context, genre string, limit int64) ([]*models.Track, error) {
	filter := bson.M{
		"genres": containsPattern(genre),
		"status": models.StatusPublic,
	}
	opts := options.Find().SetSort(bson.M{"play_count": -1}).SetLimit(limit)
	return r.findTracks(ctx, filter, opts)
}

// FindTracksByIDs fetches tracks by id; missing ids are skipped
func (r *mongoCatalogRepository) FindTracksByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Track, error) {
	if len(ids) == 0 {
		return []*models.Track{}, nil
	}
	return r.findTracks(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

// FindPreferenceCandidates selects public, unplayed tracks matching at
// least one of the listener's top facets, capped at limit
func (r *mongoCatalogRepository) FindPreferenceCandidates(ctx context.Context, exclude []primitive.ObjectID, genres []string, performerIDs []primitive.ObjectID, tags []string, limit int64) ([]*models.Track, error) {
	var facets []bson.M
	if len(genres) > 0 {
		facets = append(facets, bson.M{"genres": bson.M{"$in": genres}})
	}
	if len(performerIDs) > 0 {
		facets = append(facets, bson.M{"performers": bson.M{"$in": performerIDs}})
	}
	if len(tags) > 0 {
		facets = append(facets, bson.M{"tags": bson.M{"$in": tags}})
	}
	if len(facets) == 0 {
		return []*models.Track{}, nil
	}

	filter := bson.M{"$and": []bson.M{
		{"status": models.StatusPublic},
		{"_id": bson.M{"$nin": exclude}},
		{"$or": facets},
	}}
	opts := options.Find().SetLimit(limit)
	return r.findTracks(ctx, filter, opts)
}

// SampleExploreTracks draws a uniform random sample of public tracks
// outside the excluded set. Fewer than size documents may come back
// when the eligible pool is small; the pool is never padded.
func (r *mongoCatalogRepository) SampleExploreTracks(ctx context.Context, exclude []primitive.ObjectID, size int64) ([]*models.Track, error) {
	if size <= 0 {
		return []*models.Track{}, nil
	}

	pipeline := []bson.M{
		{"$match": bson.M{
			"status": models.StatusPublic,
			"_id":    bson.M{"$nin": exclude},
		}},
		{"$sample": bson.M{"size": size}},
	}

	cursor, err := r.tracks.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to sample tracks: %w", err)
	}
	defer cursor.Close(ctx)

	var tracks []*models.Track
	for cursor.Next(ctx) {
		var track models.Track
		if err := cursor.Decode(&track); err != nil {
			slog.Error("Failed to decode track", "error", err)
			continue
		}
		tracks = append(tracks, &track)
	}

	return tracks, cursor.Err()
}

// CountPublicTracks counts all publicly visible tracks
func (r *mongoCatalogRepository) CountPublicTracks(ctx context.Context) (int64, error) {
	count, err := r.tracks.CountDocuments(ctx, bson.M{"status": models.StatusPublic})
	if err != nil {
		return 0, fmt.Errorf("failed to count public tracks: %w", err)
	}
	return count, nil
}
