package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/farmersguild/backend/internal/application/services"
)

// DiseaseHandler exposes image analysis, detection-scoped chat and the
// stored detection records
type DiseaseHandler struct {
	ai         *services.DiseaseAIService
	detections *services.DetectionService
}

// NewDiseaseHandler creates a new disease handler
func NewDiseaseHandler(ai *services.DiseaseAIService, detections *services.DetectionService) *DiseaseHandler {
	return &DiseaseHandler{ai: ai, detections: detections}
}

type diseaseAnalysisRequest struct {
	ImageBase64 string `json:"image_base64"`
	CropID      int64  `json:"crop_id"`
}

type diseaseChatRequest struct {
	DetectionID int64  `json:"detection_id"`
	Message     string `json:"message"`
}

// AnalyzeDisease handles POST /api/disease/analyze
func (h *DiseaseHandler) AnalyzeDisease(w http.ResponseWriter, r *http.Request) {
	var req diseaseAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis, err := h.ai.AnalyzeDiseaseImage(r.Context(), req.CropID, req.ImageBase64)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, analysis)
}

// ChatAboutDisease handles POST /api/disease/chat
func (h *DiseaseHandler) ChatAboutDisease(w http.ResponseWriter, r *http.Request) {
	var req diseaseChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.ai.ChatAboutDisease(r.Context(), req.DetectionID, req.Message)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"response": response})
}

// ListDetections handles GET /api/crops/{id}/detections
func (h *DiseaseHandler) ListDetections(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid crop id")
		return
	}

	detections, err := h.detections.ListByCrop(r.Context(), cropID, 0)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"detections": detections,
		"count":      len(detections),
	})
}

// DeleteDetection handles DELETE /api/detections/{id}
func (h *DiseaseHandler) DeleteDetection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid detection id")
		return
	}

	if err := h.detections.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
