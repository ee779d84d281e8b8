package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"melodex/internal/cache"
	"melodex/internal/models"
	"melodex/internal/search"
	"melodex/internal/testutil"
)

func setupSearchRouter(handler *SearchHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	{
		v1.GET("/search", handler.GlobalSearch)
		v1.GET("/search/tracks", handler.QuickSearch)
	}

	return router
}

func stubGlobalSearch(catalog *testutil.MockCatalogRepository, tracks []*models.TrackResult, total int64) {
	catalog.On("SearchTracks", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(tracks, nil)
	catalog.On("CountTracks", mock.Anything, mock.Anything).Return(total, nil)
	catalog.On("SearchAlbums", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*models.AlbumResult{}, nil)
	catalog.On("CountAlbums", mock.Anything, mock.Anything).Return(int64(0), nil)
	catalog.On("SearchPerformers", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*models.Performer{}, nil)
	catalog.On("CountPerformers", mock.Anything, mock.Anything).Return(int64(0), nil)
}

func TestGlobalSearch_Success(t *testing.T) {
	catalog := new(testutil.MockCatalogRepository)
	track := testutil.NewTrackBuilder("Nightswimming").Build()
	stubGlobalSearch(catalog, []*models.TrackResult{{Track: *track}}, 1)

	handler := NewSearchHandler(search.NewEngine(catalog), nil, time.Minute, 10)
	router := setupSearchRouter(handler)

	req, _ := http.NewRequest("GET", "/api/v1/search?q=night", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var response search.Response
	err := json.Unmarshal(recorder.Body.Bytes(), &response)
	require.NoError(t, err)

	require.Len(t, response.Tracks.Results, 1)
	assert.Equal(t, "Nightswimming", response.Tracks.Results[0].Title)
	assert.Equal(t, int64(1), response.Tracks.Pagination.TotalResults)
	assert.Equal(t, int64(1), response.Tracks.Pagination.CurrentPage)
}

func TestGlobalSearch_InvalidPage(t *testing.T) {
	catalog := new(testutil.MockCatalogRepository)
	handler := NewSearchHandler(search.NewEngine(catalog), nil, time.Minute, 10)
	router := setupSearchRouter(handler)

	for _, page := range []string{"0", "-1", "abc"} {
		req, _ := http.NewRequest("GET", "/api/v1/search?q=night&page="+page, nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code, "page=%s", page)

		var response map[string]interface{}
		err := json.Unmarshal(recorder.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Contains(t, response, "error")
	}
}

func TestGlobalSearch_EmptyQuery(t *testing.T) {
	catalog := new(testutil.MockCatalogRepository)
	handler := NewSearchHandler(search.NewEngine(catalog), nil, time.Minute, 10)
	router := setupSearchRouter(handler)

	req, _ := http.NewRequest("GET", "/api/v1/search", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGlobalSearch_RepositoryError(t *testing.T) {
	catalog := new(testutil.MockCatalogRepository)
	catalog.On("SearchTracks", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("server selection timeout")).Maybe()
	catalog.On("CountTracks", mock.Anything, mock.Anything).
		Return(int64(0), errors.New("server selection timeout")).Maybe()
	catalog.On("SearchAlbums", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.AlbumResult{}, nil).Maybe()
	catalog.On("CountAlbums", mock.Anything, mock.Anything).Return(int64(0), nil).Maybe()
	catalog.On("SearchPerformers", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.Performer{}, nil).Maybe()
	catalog.On("CountPerformers", mock.Anything, mock.Anything).Return(int64(0), nil).Maybe()

	handler := NewSearchHandler(search.NewEngine(catalog), nil, time.Minute, 10)
	router := setupSearchRouter(handler)

	req, _ := http.NewRequest("GET", "/api/v1/search?q=night", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestGlobalSearch_ServesRepeatQueryFromCache(t *testing.T) {
	catalog := new(testutil.MockCatalogRepository)
	track := testutil.NewTrackBuilder("Nightswimming").Build()
	catalog.On("SearchTracks", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.TrackResult{{Track: *track}}, nil).Once()
	catalog.On("CountTracks", mock.Anything, mock.Anything).Return(int64(1), nil).Once()
	catalog.On("SearchAlbums", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.AlbumResult{}, nil).Once()
	catalog.On("CountAlbums", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
	catalog.On("SearchPerformers", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.Performer{}, nil).Once()
	catalog.On("CountPerformers", mock.Anything, mock.Anything).Return(int64(0), nil).Once()

	memCache := cache.NewMemoryCache(100)
	defer memCache.Close()

	handler := NewSearchHandler(search.NewEngine(catalog), memCache, time.Minute, 10)
	router := setupSearchRouter(handler)

	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest("GET", "/api/v1/search?q=night", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusOK, recorder.Code)
	}

	// Second request must not reach the repositories
	catalog.AssertExpectations(t)
}

func TestQuickSearch_Success(t *testing.T) {
	catalog := new(testutil.MockCatalogRepository)
	track := testutil.NewTrackBuilder("Harvest Moon").Build()
	catalog.On("FindTracksByTitle", mock.Anything, "moon", int64(10)).Return([]*models.Track{track}, nil)
	catalog.On("FindTracksByPerformerName", mock.Anything, "moon", int64(10)).Return([]*models.Track{}, nil)
	catalog.On("FindTracksByLyrics", mock.Anything, "moon", int64(10)).Return([]*models.Track{}, nil)
	catalog.On("FindTracksByGenre", mock.Anything, "moon", int64(10)).Return([]*models.Track{}, nil)

	handler := NewSearchHandler(search.NewEngine(catalog), nil, time.Minute, 10)
	router := setupSearchRouter(handler)

	req, _ := http.NewRequest("GET", "/api/v1/search/tracks?q=moon", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Results []search.TrackHit `json:"results"`
	}
	err := json.Unmarshal(recorder.Body.Bytes(), &response)
	require.NoError(t, err)

	require.Len(t, response.Results, 1)
	assert.Equal(t, "Harvest Moon", response.Results[0].Track.Title)
	assert.Equal(t, search.MatchTitle, response.Results[0].MatchedBy)
}

func TestQuickSearch_MissingTerm(t *testing.T) {
	catalog := new(testutil.MockCatalogRepository)
	handler := NewSearchHandler(search.NewEngine(catalog), nil, time.Minute, 10)
	router := setupSearchRouter(handler)

	req, _ := http.NewRequest("GET", "/api/v1/search/tracks", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
