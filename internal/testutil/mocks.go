package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"melodex/internal/models"
	"melodex/internal/repositories"
)

// MockCatalogRepository is a mock implementation of CatalogRepository for testing
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) SearchTracks(ctx context.Context, filter repositories.TrackFilter, skip, limit int64) ([]*models.TrackResult, error) {
	args := m.Called(ctx, filter, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TrackResult), args.Error(1)
}

func (m *MockCatalogRepository) CountTracks(ctx context.Context, filter repositories.TrackFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) SearchAlbums(ctx context.Context, term string, skip, limit int64) ([]*models.AlbumResult, error) {
	args := m.Called(ctx, term, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AlbumResult), args.Error(1)
}

func (m *MockCatalogRepository) CountAlbums(ctx context.Context, term string) (int64, error) {
	args := m.Called(ctx, term)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) SearchPerformers(ctx context.Context, term string, skip, limit int64) ([]*models.Performer, error) {
	args := m.Called(ctx, term, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Performer), args.Error(1)
}

func (m *MockCatalogRepository) CountPerformers(ctx context.Context, term string) (int64, error) {
	args := m.Called(ctx, term)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) FindTracksByTitle(ctx context.Context, term string, limit int64) ([]*models.Track, error) {
	args := m.Called(ctx, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Track), args.Error(1)
}

func (m *MockCatalogRepository) FindTracksByPerformerName(ctx context.Context, term string, limit int64) ([]*models.Track, error) {
	args := m.Called(ctx, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Track), args.Error(1)
}

func (m *MockCatalogRepository) FindTracksByLyrics(ctx context.Context, term string, limit int64) ([]*models.Track, error) {
	args := m.Called(ctx, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Track), args.Error(1)
}

func (m *MockCatalogRepository) FindTracksByGenre(ctx context.Context, genre string, limit int64) ([]*models.Track, error) {
	args := m.Called(ctx, genre, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Track), args.Error(1)
}

func (m *MockCatalogRepository) FindTracksByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Track, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Track), args.Error(1)
}

func (m *MockCatalogRepository) FindPreferenceCandidates(ctx context.Context, exclude []primitive.ObjectID, genres []string, performerIDs []primitive.ObjectID, tags []string, limit int64) ([]*models.Track, error) {
	args := m.Called(ctx, exclude, genres, performerIDs, tags, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Track), args.Error(1)
}

func (m *MockCatalogRepository) SampleExploreTracks(ctx context.Context, exclude []primitive.ObjectID, size int64) ([]*models.Track, error) {
	args := m.Called(ctx, exclude, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Track), args.Error(1)
}

func (m *MockCatalogRepository) CountPublicTracks(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockHistoryRepository is a mock implementation of HistoryRepository for testing
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) RecordPlay(ctx context.Context, listenerID, trackID primitive.ObjectID) error {
	args := m.Called(ctx, listenerID, trackID)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListByListener(ctx context.Context, listenerID primitive.ObjectID) ([]*models.PlayHistoryEntry, error) {
	args := m.Called(ctx, listenerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PlayHistoryEntry), args.Error(1)
}
