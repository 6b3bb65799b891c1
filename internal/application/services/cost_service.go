package services

import (
	"context"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/domain/repositories"
	apperrors "github.com/farmersguild/backend/pkg/errors"
)

// CostService handles expense tracking per crop.
type CostService struct {
	costs repositories.CropCostRepository
	crops repositories.CropRepository
}

// NewCostService creates a new cost service
func NewCostService(costs repositories.CropCostRepository, crops repositories.CropRepository) *CostService {
	return &CostService{costs: costs, crops: crops}
}

// Create validates and stores an expense entry
func (s *CostService) Create(ctx context.Context, cost *entities.CropCost) error {
	if cost.ExpenseType == "" {
		return apperrors.NewValidationError("expense_type is required")
	}
	if cost.Amount <= 0 {
		return apperrors.NewValidationError("amount must be positive")
	}
	if _, err := s.crops.GetByID(ctx, cost.CropID); err != nil {
		return err
	}
	return s.costs.Create(ctx, cost)
}

// ListByCrop retrieves expenses for a crop, newest first
func (s *CostService) ListByCrop(ctx context.Context, cropID int64) ([]*entities.CropCost, error) {
	return s.costs.ListByCrop(ctx, cropID)
}

// SummaryByCrop aggregates spending per expense type
func (s *CostService) SummaryByCrop(ctx context.Context, cropID int64) (*entities.CostSummary, error) {
	if _, err := s.crops.GetByID(ctx, cropID); err != nil {
		return nil, err
	}
	return s.costs.SummaryByCrop(ctx, cropID)
}
