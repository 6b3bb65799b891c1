package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/farmersguild/backend/internal/application/services"
	"github.com/farmersguild/backend/internal/domain/entities"
)

// CropHandler handles crop CRUD HTTP requests
type CropHandler struct {
	crops *services.CropService
}

// NewCropHandler creates a new crop handler
func NewCropHandler(crops *services.CropService) *CropHandler {
	return &CropHandler{crops: crops}
}

// CreateCrop handles POST /api/crops
func (h *CropHandler) CreateCrop(w http.ResponseWriter, r *http.Request) {
	var crop entities.Crop
	if err := json.NewDecoder(r.Body).Decode(&crop); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.crops.Create(r.Context(), &crop); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, crop)
}

// GetCrop handles GET /api/crops/{id}
func (h *CropHandler) GetCrop(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid crop id")
		return
	}

	crop, err := h.crops.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, crop)
}

// ListCrops handles GET /api/crops
func (h *CropHandler) ListCrops(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	crops, err := h.crops.ListByUser(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"crops": crops,
		"count": len(crops),
	})
}

// UpdateCrop handles PUT /api/crops/{id}
func (h *CropHandler) UpdateCrop(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid crop id")
		return
	}

	var crop entities.Crop
	if err := json.NewDecoder(r.Body).Decode(&crop); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	crop.ID = id

	if err := h.crops.Update(r.Context(), &crop); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, crop)
}

// DeleteCrop handles DELETE /api/crops/{id}
func (h *CropHandler) DeleteCrop(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid crop id")
		return
	}

	if err := h.crops.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
