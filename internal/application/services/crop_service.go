package services

import (
	"context"
	"log"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/domain/repositories"
	apperrors "github.com/farmersguild/backend/pkg/errors"
)

// CropService handles crop lifecycle. Deletes cascade to the crop's
// activity, cost, detection, alert and conversation records.
type CropService struct {
	crops         repositories.CropRepository
	activities    repositories.ActivityLogRepository
	detections    repositories.DiseaseDetectionRepository
	weather       repositories.WeatherAlertRepository
	conversations repositories.CropConversationRepository
	diseaseChats  repositories.DiseaseChatRepository
	costs         repositories.CropCostRepository
	ai            *CropAIService
}

// NewCropService creates a new crop service
func NewCropService(
	crops repositories.CropRepository,
	activities repositories.ActivityLogRepository,
	detections repositories.DiseaseDetectionRepository,
	weather repositories.WeatherAlertRepository,
	conversations repositories.CropConversationRepository,
	diseaseChats repositories.DiseaseChatRepository,
	costs repositories.CropCostRepository,
	ai *CropAIService,
) *CropService {
	return &CropService{
		crops:         crops,
		activities:    activities,
		detections:    detections,
		weather:       weather,
		conversations: conversations,
		diseaseChats:  diseaseChats,
		costs:         costs,
		ai:            ai,
	}
}

// Create validates and stores a new crop
func (s *CropService) Create(ctx context.Context, crop *entities.Crop) error {
	if crop.Name == "" {
		return apperrors.NewValidationError("crop name is required")
	}
	if crop.UserID == "" {
		return apperrors.NewValidationError("user_id is required")
	}
	return s.crops.Create(ctx, crop)
}

// GetByID retrieves a crop by ID
func (s *CropService) GetByID(ctx context.Context, id int64) (*entities.Crop, error) {
	return s.crops.GetByID(ctx, id)
}

// ListByUser retrieves all crops owned by a user
func (s *CropService) ListByUser(ctx context.Context, userID string) ([]*entities.Crop, error) {
	return s.crops.ListByUser(ctx, userID)
}

// Update stores crop changes and drops the cached chat pipeline so the next
// exchange sees fresh context.
func (s *CropService) Update(ctx context.Context, crop *entities.Crop) error {
	if crop.Name == "" {
		return apperrors.NewValidationError("crop name is required")
	}
	if err := s.crops.Update(ctx, crop); err != nil {
		return err
	}
	s.ai.Invalidate(crop.ID)
	return nil
}

// Delete removes a crop and everything recorded against it.
func (s *CropService) Delete(ctx context.Context, id int64) error {
	// Existence check first so dependents of a missing crop are not touched.
	if _, err := s.crops.GetByID(ctx, id); err != nil {
		return err
	}

	detections, err := s.detections.ListByCrop(ctx, id, 0)
	if err != nil {
		log.Printf("Warning: could not list detections for crop %d cleanup: %v", id, err)
	}
	for _, detection := range detections {
		if err := s.diseaseChats.DeleteByDetection(ctx, detection.ID); err != nil {
			return err
		}
	}

	if err := s.detections.DeleteByCrop(ctx, id); err != nil {
		return err
	}
	if err := s.activities.DeleteByCrop(ctx, id); err != nil {
		return err
	}
	if err := s.weather.DeleteByCrop(ctx, id); err != nil {
		return err
	}
	if err := s.conversations.DeleteByCrop(ctx, id); err != nil {
		return err
	}
	if err := s.costs.DeleteByCrop(ctx, id); err != nil {
		return err
	}
	if err := s.crops.Delete(ctx, id); err != nil {
		return err
	}

	s.ai.Invalidate(id)
	return nil
}
