package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"melodex/internal/models"
	"melodex/internal/recommend"
)

// LabeledTrack is a catalog track tagged with its recommendation origin
type LabeledTrack struct {
	*models.Track
	RecommendType string `json:"recommend_type"`
}

// RecommendationResponse carries the two labeled recommendation groups,
// preference-derived picks first
type RecommendationResponse struct {
	Recommended []LabeledTrack `json:"recommended"`
	Explore     []LabeledTrack `json:"explore"`
}

// RecommendationJSON converts an engine result into the response shape.
// Both groups are always present, possibly empty.
func RecommendationJSON(result *recommend.Result) RecommendationResponse {
	response := RecommendationResponse{
		Recommended: []LabeledTrack{},
		Explore:     []LabeledTrack{},
	}
	for _, item := range result.Tracks {
		labeled := LabeledTrack{Track: item.Track, RecommendType: item.Origin}
		if item.Origin == recommend.OriginExplore {
			response.Explore = append(response.Explore, labeled)
		} else {
			response.Recommended = append(response.Recommended, labeled)
		}
	}
	return response
}

// Error writes a JSON error body with the given status
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// Created writes a 201 acknowledgement
func Created(c *gin.Context, message string) {
	c.JSON(http.StatusCreated, gin.H{"message": message})
}
