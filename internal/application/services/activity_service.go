package services

import (
	"context"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/domain/repositories"
	apperrors "github.com/farmersguild/backend/pkg/errors"
)

// ActivityService handles activity log entries.
type ActivityService struct {
	activities repositories.ActivityLogRepository
	crops      repositories.CropRepository
	ai         *CropAIService
}

// NewActivityService creates a new activity service
func NewActivityService(
	activities repositories.ActivityLogRepository,
	crops repositories.CropRepository,
	ai *CropAIService,
) *ActivityService {
	return &ActivityService{
		activities: activities,
		crops:      crops,
		ai:         ai,
	}
}

// Create validates and stores an activity log entry. The crop's cached chat
// pipeline is dropped so fresh history shows up in the next exchange.
func (s *ActivityService) Create(ctx context.Context, activity *entities.ActivityLog) error {
	if activity.ActivityType == "" {
		return apperrors.NewValidationError("activity_type is required")
	}
	if _, err := s.crops.GetByID(ctx, activity.CropID); err != nil {
		return err
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return err
	}
	s.ai.Invalidate(activity.CropID)
	return nil
}

// ListByCrop retrieves activity entries for a crop, newest first
func (s *ActivityService) ListByCrop(ctx context.Context, cropID int64, limit int) ([]*entities.ActivityLog, error) {
	return s.activities.ListByCrop(ctx, cropID, limit)
}
