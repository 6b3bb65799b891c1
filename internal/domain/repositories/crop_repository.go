package repositories

import (
	"context"

	"github.com/farmersguild/backend/internal/domain/entities"
)

// CropRepository defines the interface for crop operations.
type CropRepository interface {
	Create(ctx context.Context, crop *entities.Crop) error
	GetByID(ctx context.Context, id int64) (*entities.Crop, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Crop, error)
	Update(ctx context.Context, crop *entities.Crop) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}
