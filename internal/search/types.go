package search

import (
	"errors"

	"melodex/internal/models"
)

// Validation failures surfaced before any repository call
var (
	ErrEmptyQuery        = errors.New("at least one of term, genre, language, or tag is required")
	ErrInvalidPagination = errors.New("page and limit must be positive numbers")
)

// RawQuery carries search input exactly as the transport delivered it,
// paging values still unparsed
type RawQuery struct {
	Term     string
	Page     string
	PageSize string
	Genre    string
	Language string
	Tag      string
}

// QueryDescriptor is the canonical, validated form of a search query.
// Constructed per request by ParseQuery; never persisted.
type QueryDescriptor struct {
	Term     string
	Page     int64
	PageSize int64
	Genre    string
	Language string
	Tag      string
}

// Skip returns the number of matches to drop before the requested page
func (d *QueryDescriptor) Skip() int64 {
	return (d.Page - 1) * d.PageSize
}

// Pagination describes one entity type's page within its full match set
type Pagination struct {
	CurrentPage  int64 `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalResults int64 `json:"totalResults"`
	Limit        int64 `json:"limit"`
}

// TrackPage is one page of joined track results
type TrackPage struct {
	Results    []*models.TrackResult `json:"results"`
	Pagination Pagination            `json:"pagination"`
}

// AlbumPage is one page of joined album results
type AlbumPage struct {
	Results    []*models.AlbumResult `json:"results"`
	Pagination Pagination            `json:"pagination"`
}

// PerformerPage is one page of performer results
type PerformerPage struct {
	Results    []*models.Performer `json:"results"`
	Pagination Pagination          `json:"pagination"`
}

// Response holds the three independently paginated result sets a
// multi-entity search produces
type Response struct {
	Tracks     TrackPage     `json:"tracks"`
	Albums     AlbumPage     `json:"albums"`
	Performers PerformerPage `json:"performers"`
}
