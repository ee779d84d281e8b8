package search

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"melodex/internal/models"
	"melodex/internal/repositories"
)

// Engine resolves a QueryDescriptor against the catalog, producing
// three independently paginated result sets plus totals
type Engine struct {
	catalog repositories.CatalogRepository
}

// NewEngine creates a search engine over the given catalog repository
func NewEngine(catalog repositories.CatalogRepository) *Engine {
	return &Engine{catalog: catalog}
}

// Search runs the three per-entity lookups and their counts. The six
// queries are mutually independent and run concurrently; any repository
// failure fails the whole search, no partial results are synthesized.
func (e *Engine) Search(ctx context.Context, desc *QueryDescriptor) (*Response, error) {
	trackFilter := repositories.TrackFilter{
		Term:     desc.Term,
		Genre:    desc.Genre,
		Language: desc.Language,
		Tag:      desc.Tag,
	}
	skip, limit := desc.Skip(), desc.PageSize

	var (
		tracks     []*models.TrackResult
		albums     []*models.AlbumResult
		performers []*models.Performer

		totalTracks     int64
		totalAlbums     int64
		totalPerformers int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		tracks, err = e.catalog.SearchTracks(gctx, trackFilter, skip, limit)
		return err
	})
	g.Go(func() (err error) {
		totalTracks, err = e.catalog.CountTracks(gctx, trackFilter)
		return err
	})
	g.Go(func() (err error) {
		albums, err = e.catalog.SearchAlbums(gctx, desc.Term, skip, limit)
		return err
	})
	g.Go(func() (err error) {
		totalAlbums, err = e.catalog.CountAlbums(gctx, desc.Term)
		return err
	})
	g.Go(func() (err error) {
		performers, err = e.catalog.SearchPerformers(gctx, desc.Term, skip, limit)
		return err
	})
	g.Go(func() (err error) {
		totalPerformers, err = e.catalog.CountPerformers(gctx, desc.Term)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	if tracks == nil {
		tracks = []*models.TrackResult{}
	}
	if albums == nil {
		albums = []*models.AlbumResult{}
	}
	if performers == nil {
		performers = []*models.Performer{}
	}

	return &Response{
		Tracks: TrackPage{
			Results:    tracks,
			Pagination: newPagination(desc, totalTracks),
		},
		Albums: AlbumPage{
			Results:    albums,
			Pagination: newPagination(desc, totalAlbums),
		},
		Performers: PerformerPage{
			Results:    performers,
			Pagination: newPagination(desc, totalPerformers),
		},
	}, nil
}

// newPagination computes the page envelope over the full match set
func newPagination(desc *QueryDescriptor, total int64) Pagination {
	totalPages := total / desc.PageSize
	if total%desc.PageSize != 0 {
		totalPages++
	}
	return Pagination{
		CurrentPage:  desc.Page,
		TotalPages:   totalPages,
		TotalResults: total,
		Limit:        desc.PageSize,
	}
}
