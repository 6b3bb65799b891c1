package handlers

import (
	"net/http"

	"github.com/farmersguild/backend/internal/application/services"
)

// StatsHandler serves homepage and dashboard usage numbers
type StatsHandler struct {
	stats *services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// GetPlatformStats handles GET /api/stats/platform
func (h *StatsHandler) GetPlatformStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.PlatformStats(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// GetUserStats handles GET /api/stats/user
func (h *StatsHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	stats, err := h.stats.UserStats(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}
