package repositories

import (
	"context"
	"time"

	"github.com/farmersguild/backend/internal/domain/entities"
)

// WeatherAlertRepository defines the interface for weather alert records.
type WeatherAlertRepository interface {
	Create(ctx context.Context, alert *entities.WeatherAlert) error
	// ListRecent returns alerts created at or after since, newest first, capped at limit.
	ListRecent(ctx context.Context, cropID int64, since time.Time, limit int) ([]*entities.WeatherAlert, error)
	DeleteByCrop(ctx context.Context, cropID int64) error
}
