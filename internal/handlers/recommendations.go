package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"melodex/internal/auth"
	"melodex/internal/handlers/render"
	"melodex/internal/recommend"
)

// RecommendationHandler handles personalized recommendation requests
type RecommendationHandler struct {
	engine *recommend.Engine
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(engine *recommend.Engine) *RecommendationHandler {
	return &RecommendationHandler{engine: engine}
}

// Recommend handles GET /api/v1/recommendations. A listener with no
// history gets an explore-only response, never an error.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	listenerID, ok := auth.ListenerID(c)
	if !ok {
		render.Error(c, http.StatusUnauthorized, "listener identity required")
		return
	}

	result, err := h.engine.Recommend(c.Request.Context(), listenerID)
	if err != nil {
		slog.Error("Recommendation failed", "listenerID", listenerID.Hex(), "error", err)
		render.Error(c, http.StatusInternalServerError, "recommendations unavailable")
		return
	}

	c.JSON(http.StatusOK, render.RecommendationJSON(result))
}
