package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"melodex/internal/auth"
	"melodex/internal/handlers/render"
	"melodex/internal/repositories"
)

// RecordPlayRequest is the play-event body
type RecordPlayRequest struct {
	TrackID string `json:"track_id" binding:"required"`
}

// HistoryHandler handles play-event requests
type HistoryHandler struct {
	history repositories.HistoryRepository
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(history repositories.HistoryRepository) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// RecordPlay handles POST /api/v1/history/plays. The underlying upsert
// is atomic per (listener, track) pair, so replays only ever increment.
func (h *HistoryHandler) RecordPlay(c *gin.Context) {
	listenerID, ok := auth.ListenerID(c)
	if !ok {
		render.Error(c, http.StatusUnauthorized, "listener identity required")
		return
	}

	var req RecordPlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.Error(c, http.StatusBadRequest, "track_id is required")
		return
	}

	trackID, err := primitive.ObjectIDFromHex(req.TrackID)
	if err != nil {
		render.Error(c, http.StatusBadRequest, "invalid track_id")
		return
	}

	if err := h.history.RecordPlay(c.Request.Context(), listenerID, trackID); err != nil {
		slog.Error("Failed to record play", "listenerID", listenerID.Hex(), "trackID", req.TrackID, "error", err)
		render.Error(c, http.StatusInternalServerError, "failed to record play")
		return
	}

	render.Created(c, "play recorded")
}
