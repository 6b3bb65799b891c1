package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/farmersguild/backend/internal/application/services"
)

// ChatHandler exposes the crop-scoped AI conversation surface
type ChatHandler struct {
	ai *services.CropAIService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(ai *services.CropAIService) *ChatHandler {
	return &ChatHandler{ai: ai}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
	CropName string `json:"crop_name"`
}

// ChatWithCrop handles POST /api/crops/{id}/chat
func (h *ChatHandler) ChatWithCrop(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid crop id")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, cropName, err := h.ai.ChatWithCrop(r.Context(), cropID, req.Message)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, chatResponse{
		Response: response,
		CropName: cropName,
	})
}

// GetCropContext handles GET /api/crops/{id}/context. Diagnostic surface
// showing exactly what the model is grounded on.
func (h *ChatHandler) GetCropContext(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid crop id")
		return
	}

	snapshot, formatted, err := h.ai.GetCropContext(r.Context(), cropID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"crop_id":   cropID,
		"crop_name": snapshot.Crop.Name,
		"context":   formatted,
	})
}

// ClearHistory handles DELETE /api/crops/{id}/chat
func (h *ChatHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid crop id")
		return
	}

	if err := h.ai.ClearHistory(r.Context(), cropID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
