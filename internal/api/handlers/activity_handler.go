package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/farmersguild/backend/internal/application/services"
	"github.com/farmersguild/backend/internal/domain/entities"
)

// ActivityHandler handles activity log HTTP requests
type ActivityHandler struct {
	activities *services.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activities *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// CreateActivity handles POST /api/crops/{id}/activities
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid crop id")
		return
	}

	var activity entities.ActivityLog
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	activity.CropID = cropID

	if err := h.activities.Create(r.Context(), &activity); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, activity)
}

// ListActivities handles GET /api/crops/{id}/activities
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid crop id")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondWithError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	activities, err := h.activities.ListByCrop(r.Context(), cropID, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"activities": activities,
		"count":      len(activities),
	})
}
