package services

import (
	"context"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/domain/repositories"
)

// DetectionService manages stored disease detection records. Records are
// created by the analysis pipeline; this service only reads and deletes.
type DetectionService struct {
	detections repositories.DiseaseDetectionRepository
	ai         *DiseaseAIService
	cropAI     *CropAIService
}

// NewDetectionService creates a new detection service
func NewDetectionService(
	detections repositories.DiseaseDetectionRepository,
	ai *DiseaseAIService,
	cropAI *CropAIService,
) *DetectionService {
	return &DetectionService{
		detections: detections,
		ai:         ai,
		cropAI:     cropAI,
	}
}

// GetByID retrieves a detection record
func (s *DetectionService) GetByID(ctx context.Context, id int64) (*entities.DiseaseDetection, error) {
	return s.detections.GetByID(ctx, id)
}

// ListByCrop retrieves detection records for a crop, newest first
func (s *DetectionService) ListByCrop(ctx context.Context, cropID int64, limit int) ([]*entities.DiseaseDetection, error) {
	return s.detections.ListByCrop(ctx, cropID, limit)
}

// Delete removes a detection and its chat thread, and drops the crop's
// cached pipeline since its disease history changed.
func (s *DetectionService) Delete(ctx context.Context, id int64) error {
	detection, err := s.detections.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ai.ClearDetectionThread(ctx, id); err != nil {
		return err
	}
	if err := s.detections.Delete(ctx, id); err != nil {
		return err
	}
	s.cropAI.Invalidate(detection.CropID)
	return nil
}
