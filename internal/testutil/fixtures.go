package testutil

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"melodex/internal/models"
)

// TrackBuilder provides a fluent interface for creating test tracks
type TrackBuilder struct {
	track *models.Track
}

// NewTrackBuilder creates a track builder with public defaults
func NewTrackBuilder(title string) *TrackBuilder {
	now := time.Now()
	return &TrackBuilder{
		track: &models.Track{
			ID:        primitive.NewObjectID(),
			Title:     title,
			Status:    models.StatusPublic,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithID sets the track ID
func (b *TrackBuilder) WithID(id primitive.ObjectID) *TrackBuilder {
	b.track.ID = id
	return b
}

// WithStatus sets the visibility status
func (b *TrackBuilder) WithStatus(status string) *TrackBuilder {
	b.track.Status = status
	return b
}

// WithGenres sets the genre list
func (b *TrackBuilder) WithGenres(genres ...string) *TrackBuilder {
	b.track.Genres = genres
	return b
}

// WithTags sets the tag list
func (b *TrackBuilder) WithTags(tags ...string) *TrackBuilder {
	b.track.Tags = tags
	return b
}

// WithPerformers sets the performer references
func (b *TrackBuilder) WithPerformers(ids ...primitive.ObjectID) *TrackBuilder {
	b.track.PerformerIDs = ids
	return b
}

// WithAlbum sets the album reference
func (b *TrackBuilder) WithAlbum(id primitive.ObjectID) *TrackBuilder {
	b.track.AlbumID = id
	return b
}

// WithLanguage sets the language
func (b *TrackBuilder) WithLanguage(language string) *TrackBuilder {
	b.track.Language = language
	return b
}

// WithLyrics sets the lyrics text
func (b *TrackBuilder) WithLyrics(lyrics string) *TrackBuilder {
	b.track.Lyrics = lyrics
	return b
}

// Build returns the constructed track
func (b *TrackBuilder) Build() *models.Track {
	return b.track
}

// HistoryEntry creates a play history entry for tests
func HistoryEntry(listenerID, trackID primitive.ObjectID, playCount int64) *models.PlayHistoryEntry {
	now := time.Now()
	return &models.PlayHistoryEntry{
		ID:           primitive.NewObjectID(),
		ListenerID:   listenerID,
		TrackID:      trackID,
		PlayCount:    playCount,
		LastPlayedAt: now,
		CreatedAt:    now,
	}
}
