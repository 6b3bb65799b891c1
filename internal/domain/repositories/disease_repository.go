package repositories

import (
	"context"
	"time"

	"github.com/farmersguild/backend/internal/domain/entities"
)

// DiseaseDetectionRepository defines the interface for disease detection records.
type DiseaseDetectionRepository interface {
	Create(ctx context.Context, detection *entities.DiseaseDetection) error
	GetByID(ctx context.Context, id int64) (*entities.DiseaseDetection, error)
	ListByCrop(ctx context.Context, cropID int64, limit int) ([]*entities.DiseaseDetection, error)
	// ListRecent returns detections at or after since, newest first, capped at limit.
	ListRecent(ctx context.Context, cropID int64, since time.Time, limit int) ([]*entities.DiseaseDetection, error)
	Delete(ctx context.Context, id int64) error
	DeleteByCrop(ctx context.Context, cropID int64) error
}
