package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"melodex/internal/auth"
	"melodex/internal/cache"
	"melodex/internal/models"
	"melodex/internal/repositories"
)

// Router wires the discovery endpoints onto a gin engine
type Router struct {
	Search          *SearchHandler
	Recommendations *RecommendationHandler
	History         *HistoryHandler

	DB        *models.Database
	Cache     cache.Cache
	Catalog   repositories.CatalogRepository
	JWTSecret string
}

// Setup builds the HTTP router
func (r *Router) Setup() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	engine.GET("/health", r.health)

	api := engine.Group("/api/v1")
	{
		api.GET("/search", r.Search.GlobalSearch)
		api.GET("/search/tracks", r.Search.QuickSearch)

		authorized := api.Group("", auth.RequireListener(r.JWTSecret))
		{
			authorized.GET("/recommendations", r.Recommendations.Recommend)
			authorized.POST("/history/plays", r.History.RecordPlay)
		}
	}

	return engine
}

// health reports database and cache reachability plus catalog size
func (r *Router) health(c *gin.Context) {
	status := gin.H{"status": "ok"}
	code := http.StatusOK

	if r.DB != nil {
		if err := r.DB.Ping(c.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			code = http.StatusServiceUnavailable
		}
	}
	if r.Cache != nil {
		if err := r.Cache.Health(c.Request.Context()); err != nil {
			status["cache"] = err.Error()
		}
	}
	if r.Catalog != nil {
		if count, err := r.Catalog.CountPublicTracks(c.Request.Context()); err == nil {
			status["public_tracks"] = count
		}
	}

	c.JSON(code, status)
}
