package services

import (
	"context"
	"time"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/domain/repositories"
	apperrors "github.com/farmersguild/backend/pkg/errors"
)

// WeatherService records externally produced weather advisories against
// crops. Alerts feed context assembly; this service does not call any
// weather API itself.
type WeatherService struct {
	weather repositories.WeatherAlertRepository
	crops   repositories.CropRepository
	ai      *CropAIService
}

// NewWeatherService creates a new weather service
func NewWeatherService(
	weather repositories.WeatherAlertRepository,
	crops repositories.CropRepository,
	ai *CropAIService,
) *WeatherService {
	return &WeatherService{
		weather: weather,
		crops:   crops,
		ai:      ai,
	}
}

// Record validates and stores a weather alert
func (s *WeatherService) Record(ctx context.Context, alert *entities.WeatherAlert) error {
	if alert.AlertType == "" {
		return apperrors.NewValidationError("alert_type is required")
	}
	if _, err := s.crops.GetByID(ctx, alert.CropID); err != nil {
		return err
	}
	if err := s.weather.Create(ctx, alert); err != nil {
		return err
	}
	s.ai.Invalidate(alert.CropID)
	return nil
}

// ListRecent retrieves the last week of alerts for a crop, newest first
func (s *WeatherService) ListRecent(ctx context.Context, cropID int64) ([]*entities.WeatherAlert, error) {
	if _, err := s.crops.GetByID(ctx, cropID); err != nil {
		return nil, err
	}
	since := time.Now().UTC().Add(-weatherWindow)
	return s.weather.ListRecent(ctx, cropID, since, weatherLimit)
}
