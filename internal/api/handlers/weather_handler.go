package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/farmersguild/backend/internal/application/services"
	"github.com/farmersguild/backend/internal/domain/entities"
)

// WeatherHandler records and lists weather alerts per crop
type WeatherHandler struct {
	weather *services.WeatherService
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(weather *services.WeatherService) *WeatherHandler {
	return &WeatherHandler{weather: weather}
}

// RecordAlert handles POST /api/crops/{id}/weather-alerts
func (h *WeatherHandler) RecordAlert(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid crop id")
		return
	}

	var alert entities.WeatherAlert
	if err := json.NewDecoder(r.Body).Decode(&alert); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	alert.CropID = cropID

	if err := h.weather.Record(r.Context(), &alert); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, alert)
}

// ListAlerts handles GET /api/crops/{id}/weather-alerts
func (h *WeatherHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid crop id")
		return
	}

	alerts, err := h.weather.ListRecent(r.Context(), cropID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}
