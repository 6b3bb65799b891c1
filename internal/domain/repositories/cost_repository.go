package repositories

import (
	"context"

	"github.com/farmersguild/backend/internal/domain/entities"
)

// CropCostRepository defines the interface for cost tracking operations.
type CropCostRepository interface {
	Create(ctx context.Context, cost *entities.CropCost) error
	ListByCrop(ctx context.Context, cropID int64) ([]*entities.CropCost, error)
	SummaryByCrop(ctx context.Context, cropID int64) (*entities.CostSummary, error)
	TotalAll(ctx context.Context) (float64, error)
	TotalByUser(ctx context.Context, userID string) (float64, error)
	DeleteByCrop(ctx context.Context, cropID int64) error
}
