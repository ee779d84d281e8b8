package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"melodex/internal/models"
	"melodex/internal/testutil"
)

func buildTracks(n int, genre string) []*models.Track {
	tracks := make([]*models.Track, 0, n)
	for i := 0; i < n; i++ {
		tracks = append(tracks, testutil.NewTrackBuilder("t").WithGenres(genre).Build())
	}
	return tracks
}

func TestRecommend_NoHistoryIsExploreOnly(t *testing.T) {
	listener := primitive.NewObjectID()
	sampled := buildTracks(3, "any")

	catalog := new(testutil.MockCatalogRepository)
	history := new(testutil.MockHistoryRepository)
	history.On("ListByListener", mock.Anything, listener).
		Return([]*models.PlayHistoryEntry{}, nil)
	catalog.On("SampleExploreTracks", mock.Anything, mock.Anything, int64(5)).
		Return(sampled, nil)

	engine := NewEngine(catalog, history, 5, 2)
	result, err := engine.Recommend(context.Background(), listener)
	require.NoError(t, err)

	require.Len(t, result.Tracks, 3)
	for _, item := range result.Tracks {
		assert.Equal(t, OriginExplore, item.Origin)
	}
	catalog.AssertNotCalled(t, "FindPreferenceCandidates",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecommend_BackfillsToTargetSize(t *testing.T) {
	listener := primitive.NewObjectID()
	played := testutil.NewTrackBuilder("played").WithGenres("jazz").Build()
	entries := []*models.PlayHistoryEntry{
		testutil.HistoryEntry(listener, played.ID, 3),
	}
	candidates := buildTracks(2, "jazz")
	sampled := buildTracks(3, "other")

	catalog := new(testutil.MockCatalogRepository)
	history := new(testutil.MockHistoryRepository)
	history.On("ListByListener", mock.Anything, listener).Return(entries, nil)
	catalog.On("FindTracksByIDs", mock.Anything, []primitive.ObjectID{played.ID}).
		Return([]*models.Track{played}, nil)
	catalog.On("FindPreferenceCandidates", mock.Anything,
		[]primitive.ObjectID{played.ID}, []string{"jazz"}, mock.Anything, mock.Anything, int64(5)).
		Return(candidates, nil)
	catalog.On("SampleExploreTracks", mock.Anything, mock.Anything, int64(3)).
		Return(sampled, nil)

	engine := NewEngine(catalog, history, 5, 2)
	result, err := engine.Recommend(context.Background(), listener)
	require.NoError(t, err)

	require.Len(t, result.Tracks, 5)
	recommended, explore := result.Split()
	assert.Len(t, recommended, 2)
	assert.Len(t, explore, 3)
}

func TestRecommend_SampleExcludesPlayedAndCandidates(t *testing.T) {
	listener := primitive.NewObjectID()
	played := testutil.NewTrackBuilder("played").WithGenres("jazz").Build()
	entries := []*models.PlayHistoryEntry{
		testutil.HistoryEntry(listener, played.ID, 1),
	}
	candidate := testutil.NewTrackBuilder("candidate").WithGenres("jazz").Build()

	catalog := new(testutil.MockCatalogRepository)
	history := new(testutil.MockHistoryRepository)
	history.On("ListByListener", mock.Anything, listener).Return(entries, nil)
	catalog.On("FindTracksByIDs", mock.Anything, mock.Anything).
		Return([]*models.Track{played}, nil)
	catalog.On("FindPreferenceCandidates", mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.Track{candidate}, nil)
	catalog.On("SampleExploreTracks", mock.Anything,
		[]primitive.ObjectID{played.ID, candidate.ID}, int64(1)).
		Return([]*models.Track{}, nil)

	engine := NewEngine(catalog, history, 2, 2)
	_, err := engine.Recommend(context.Background(), listener)
	require.NoError(t, err)

	catalog.AssertExpectations(t)
}

func TestRecommend_NoBackfillWhenCandidatesFillTarget(t *testing.T) {
	listener := primitive.NewObjectID()
	played := testutil.NewTrackBuilder("played").WithGenres("jazz").Build()
	entries := []*models.PlayHistoryEntry{
		testutil.HistoryEntry(listener, played.ID, 1),
	}
	candidates := buildTracks(3, "jazz")

	catalog := new(testutil.MockCatalogRepository)
	history := new(testutil.MockHistoryRepository)
	history.On("ListByListener", mock.Anything, listener).Return(entries, nil)
	catalog.On("FindTracksByIDs", mock.Anything, mock.Anything).
		Return([]*models.Track{played}, nil)
	catalog.On("FindPreferenceCandidates", mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(candidates, nil)

	engine := NewEngine(catalog, history, 3, 2)
	result, err := engine.Recommend(context.Background(), listener)
	require.NoError(t, err)

	require.Len(t, result.Tracks, 3)
	for _, item := range result.Tracks {
		assert.Equal(t, OriginRecommended, item.Origin)
	}
	catalog.AssertNotCalled(t, "SampleExploreTracks", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecommend_HistoryOfDeletedTracksFallsBackToExplore(t *testing.T) {
	listener := primitive.NewObjectID()
	gone := primitive.NewObjectID()
	entries := []*models.PlayHistoryEntry{
		testutil.HistoryEntry(listener, gone, 2),
	}

	catalog := new(testutil.MockCatalogRepository)
	history := new(testutil.MockHistoryRepository)
	history.On("ListByListener", mock.Anything, listener).Return(entries, nil)
	catalog.On("FindTracksByIDs", mock.Anything, []primitive.ObjectID{gone}).
		Return([]*models.Track{}, nil)
	catalog.On("SampleExploreTracks", mock.Anything, []primitive.ObjectID{gone}, int64(4)).
		Return(buildTracks(4, "any"), nil)

	engine := NewEngine(catalog, history, 4, 2)
	result, err := engine.Recommend(context.Background(), listener)
	require.NoError(t, err)

	require.Len(t, result.Tracks, 4)
	for _, item := range result.Tracks {
		assert.Equal(t, OriginExplore, item.Origin)
	}
	catalog.AssertNotCalled(t, "FindPreferenceCandidates",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecommend_SmallCatalogReturnsShortResult(t *testing.T) {
	listener := primitive.NewObjectID()

	catalog := new(testutil.MockCatalogRepository)
	history := new(testutil.MockHistoryRepository)
	history.On("ListByListener", mock.Anything, listener).
		Return([]*models.PlayHistoryEntry{}, nil)
	catalog.On("SampleExploreTracks", mock.Anything, mock.Anything, int64(20)).
		Return(buildTracks(2, "any"), nil)

	engine := NewEngine(catalog, history, 20, 2)
	result, err := engine.Recommend(context.Background(), listener)
	require.NoError(t, err)
	assert.Len(t, result.Tracks, 2)
}

func TestRecommend_HistoryErrorPropagates(t *testing.T) {
	listener := primitive.NewObjectID()

	catalog := new(testutil.MockCatalogRepository)
	history := new(testutil.MockHistoryRepository)
	history.On("ListByListener", mock.Anything, listener).
		Return(nil, errors.New("connection reset"))

	engine := NewEngine(catalog, history, 5, 2)
	result, err := engine.Recommend(context.Background(), listener)
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestResult_SplitGroupsAreNeverNil(t *testing.T) {
	result := &Result{}
	recommended, explore := result.Split()
	assert.NotNil(t, recommended)
	assert.NotNil(t, explore)
}
