package recommend

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"melodex/internal/models"
	"melodex/internal/repositories"
)

// Origin labels distinguishing preference-derived picks from
// exploration backfill
const (
	OriginRecommended = "recommended"
	OriginExplore     = "explore"
)

// RecommendedTrack is one labeled item in a recommendation result
type RecommendedTrack struct {
	Track  *models.Track `json:"track"`
	Origin string        `json:"origin"`
}

// Result is the ordered recommendation list: preference candidates
// first, exploration backfill after. Built per request, never persisted.
type Result struct {
	Tracks []RecommendedTrack
}

// Split partitions the ordered list back into its labeled groups
func (r *Result) Split() (recommended, explore []*models.Track) {
	recommended = []*models.Track{}
	explore = []*models.Track{}
	for _, item := range r.Tracks {
		if item.Origin == OriginExplore {
			explore = append(explore, item.Track)
		} else {
			recommended = append(recommended, item.Track)
		}
	}
	return recommended, explore
}

// Engine produces personalized recommendations from play history
type Engine struct {
	catalog    repositories.CatalogRepository
	history    repositories.HistoryRepository
	targetSize int64
	topK       int
}

// NewEngine creates a recommendation engine. targetSize caps the result
// length; topK bounds each preference top-list.
func NewEngine(catalog repositories.CatalogRepository, history repositories.HistoryRepository, targetSize int64, topK int) *Engine {
	return &Engine{
		catalog:    catalog,
		history:    history,
		targetSize: targetSize,
		topK:       topK,
	}
}

// Recommend builds the labeled recommendation list for a listener:
// profile the play history, select public unplayed tracks matching the
// top facets, then backfill the remaining slots with a uniform random
// sample of unseen public tracks. A listener with no history gets an
// explore-only result, never an error. When the catalog holds fewer
// eligible tracks than the target, the result is simply shorter.
func (e *Engine) Recommend(ctx context.Context, listenerID primitive.ObjectID) (*Result, error) {
	entries, err := e.history.ListByListener(ctx, listenerID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	playedIDs := make([]primitive.ObjectID, 0, len(entries))
	for _, entry := range entries {
		playedIDs = append(playedIDs, entry.TrackID)
	}

	var candidates []*models.Track
	if len(entries) > 0 {
		// History entries referencing deleted tracks drop out here
		playedTracks, err := e.catalog.FindTracksByIDs(ctx, playedIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve played tracks: %w", err)
		}

		profile := BuildProfile(entries, playedTracks, e.topK)
		if profile.HasSignal() {
			candidates, err = e.catalog.FindPreferenceCandidates(
				ctx, playedIDs,
				profile.TopGenres, profile.TopPerformerIDs, profile.TopTags,
				e.targetSize,
			)
			if err != nil {
				return nil, fmt.Errorf("select candidates: %w", err)
			}
		}
	}

	result := &Result{Tracks: make([]RecommendedTrack, 0, e.targetSize)}
	for _, track := range candidates {
		result.Tracks = append(result.Tracks, RecommendedTrack{Track: track, Origin: OriginRecommended})
	}

	remaining := e.targetSize - int64(len(candidates))
	if remaining > 0 {
		exclude := make([]primitive.ObjectID, 0, len(playedIDs)+len(candidates))
		exclude = append(exclude, playedIDs...)
		for _, track := range candidates {
			exclude = append(exclude, track.ID)
		}

		explore, err := e.catalog.SampleExploreTracks(ctx, exclude, remaining)
		if err != nil {
			return nil, fmt.Errorf("sample explore tracks: %w", err)
		}
		for _, track := range explore {
			result.Tracks = append(result.Tracks, RecommendedTrack{Track: track, Origin: OriginExplore})
		}
	}

	return result, nil
}
