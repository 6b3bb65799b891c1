package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/farmersguild/backend/internal/domain/entities"
	apperrors "github.com/farmersguild/backend/pkg/errors"
)

func TestCostServiceCreate(t *testing.T) {
	ctx := context.Background()
	crop := &entities.Crop{ID: 5, Name: "Tomato Field A"}

	t.Run("stores a valid expense", func(t *testing.T) {
		crops := new(MockCropRepository)
		crops.On("GetByID", ctx, int64(5)).Return(crop, nil)

		costs := new(MockCropCostRepository)
		costs.On("Create", ctx, mock.AnythingOfType("*entities.CropCost")).Return(nil)

		service := NewCostService(costs, crops)

		err := service.Create(ctx, &entities.CropCost{CropID: 5, ExpenseType: "fertilizer", Title: "NPK bag", Amount: 1200})
		require.NoError(t, err)
		costs.AssertExpectations(t)
	})

	t.Run("rejects missing type and non-positive amounts", func(t *testing.T) {
		costs := new(MockCropCostRepository)
		service := NewCostService(costs, new(MockCropRepository))

		err := service.Create(ctx, &entities.CropCost{CropID: 5, Amount: 100})
		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))

		err = service.Create(ctx, &entities.CropCost{CropID: 5, ExpenseType: "seeds", Amount: 0})
		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))

		err = service.Create(ctx, &entities.CropCost{CropID: 5, ExpenseType: "seeds", Amount: -40})
		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))

		costs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a missing crop", func(t *testing.T) {
		crops := new(MockCropRepository)
		crops.On("GetByID", ctx, int64(404)).Return(nil, apperrors.NewNotFoundError("crop not found"))

		service := NewCostService(new(MockCropCostRepository), crops)

		err := service.Create(ctx, &entities.CropCost{CropID: 404, ExpenseType: "labor", Amount: 500})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestCostServiceSummaryByCrop(t *testing.T) {
	ctx := context.Background()
	crop := &entities.Crop{ID: 5, Name: "Tomato Field A"}

	t.Run("aggregates spending per type", func(t *testing.T) {
		crops := new(MockCropRepository)
		crops.On("GetByID", ctx, int64(5)).Return(crop, nil)

		costs := new(MockCropCostRepository)
		costs.On("SummaryByCrop", ctx, int64(5)).Return(&entities.CostSummary{
			CropID: 5,
			Total:  1800,
			ByType: map[string]float64{"fertilizer": 1200, "labor": 600},
		}, nil)

		service := NewCostService(costs, crops)

		summary, err := service.SummaryByCrop(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, 1800.0, summary.Total)
		assert.Equal(t, 1200.0, summary.ByType["fertilizer"])
	})

	t.Run("missing crop returns not found", func(t *testing.T) {
		crops := new(MockCropRepository)
		crops.On("GetByID", ctx, int64(404)).Return(nil, apperrors.NewNotFoundError("crop not found"))

		service := NewCostService(new(MockCropCostRepository), crops)

		_, err := service.SummaryByCrop(ctx, 404)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}
