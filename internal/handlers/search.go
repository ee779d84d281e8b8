package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"melodex/internal/cache"
	"melodex/internal/handlers/render"
	"melodex/internal/search"
)

// SearchHandler handles discovery search requests
type SearchHandler struct {
	engine     *search.Engine
	cache      cache.Cache
	cacheTTL   time.Duration
	quickLimit int64
}

// NewSearchHandler creates a new search handler. cache may be nil to
// disable response caching.
func NewSearchHandler(engine *search.Engine, c cache.Cache, cacheTTL time.Duration, quickLimit int64) *SearchHandler {
	return &SearchHandler{
		engine:     engine,
		cache:      c,
		cacheTTL:   cacheTTL,
		quickLimit: quickLimit,
	}
}

// GlobalSearch handles GET /api/v1/search
func (h *SearchHandler) GlobalSearch(c *gin.Context) {
	raw := search.RawQuery{
		Term:     c.Query("q"),
		Page:     c.Query("page"),
		PageSize: c.Query("limit"),
		Genre:    c.Query("genre"),
		Language: c.Query("language"),
		Tag:      c.Query("tag"),
	}

	desc, err := search.ParseQuery(raw)
	if err != nil {
		render.Error(c, http.StatusBadRequest, validationMessage(err))
		return
	}

	key := searchCacheKey(desc)
	if h.cache != nil {
		if data, err := h.cache.Get(c.Request.Context(), key); err == nil && data != nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", data)
			return
		}
	}

	response, err := h.engine.Search(c.Request.Context(), desc)
	if err != nil {
		slog.Error("Search failed", "term", desc.Term, "error", err)
		render.Error(c, http.StatusInternalServerError, "search unavailable")
		return
	}

	if h.cache != nil {
		if data, err := json.Marshal(response); err == nil {
			// Cache failures degrade to direct search on the next request
			if err := h.cache.Set(c.Request.Context(), key, data, h.cacheTTL); err != nil {
				slog.Warn("Failed to cache search response", "error", err)
			}
		}
	}

	c.JSON(http.StatusOK, response)
}

// QuickSearch handles GET /api/v1/search/tracks: cross-field track
// search merged and deduplicated by track id
func (h *SearchHandler) QuickSearch(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		render.Error(c, http.StatusBadRequest, search.ErrEmptyQuery.Error())
		return
	}

	hits, err := h.engine.QuickSearch(c.Request.Context(), term, h.quickLimit)
	if err != nil {
		slog.Error("Quick search failed", "term", term, "error", err)
		render.Error(c, http.StatusInternalServerError, "search unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": hits})
}

// validationMessage maps normalizer failures to user-visible text
func validationMessage(err error) string {
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		return search.ErrEmptyQuery.Error()
	case errors.Is(err, search.ErrInvalidPagination):
		return search.ErrInvalidPagination.Error()
	default:
		return err.Error()
	}
}

// searchCacheKey derives a stable cache key from the canonical query
func searchCacheKey(desc *search.QueryDescriptor) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf(
		"%s|%d|%d|%s|%s|%s",
		desc.Term, desc.Page, desc.PageSize, desc.Genre, desc.Language, desc.Tag,
	)))
	return "search:v1:" + hex.EncodeToString(sum[:16])
}
