package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/farmersguild/backend/internal/application/services"
	"github.com/farmersguild/backend/internal/domain/entities"
)

// CostHandler handles expense tracking HTTP requests
type CostHandler struct {
	costs *services.CostService
}

// NewCostHandler creates a new cost handler
func NewCostHandler(costs *services.CostService) *CostHandler {
	return &CostHandler{costs: costs}
}

// CreateCost handles POST /api/crops/{id}/costs
func (h *CostHandler) CreateCost(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid crop id")
		return
	}

	var cost entities.CropCost
	if err := json.NewDecoder(r.Body).Decode(&cost); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cost.CropID = cropID

	if err := h.costs.Create(r.Context(), &cost); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, cost)
}

// ListCosts handles GET /api/crops/{id}/costs
func (h *CostHandler) ListCosts(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid crop id")
		return
	}

	costs, err := h.costs.ListByCrop(r.Context(), cropID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"costs": costs,
		"count": len(costs),
	})
}

// GetCostSummary handles GET /api/crops/{id}/costs/summary
func (h *CostHandler) GetCostSummary(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid crop id")
		return
	}

	summary, err := h.costs.SummaryByCrop(r.Context(), cropID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}
