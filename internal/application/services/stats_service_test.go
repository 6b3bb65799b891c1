package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/farmersguild/backend/internal/domain/entities"
)

func TestPlatformStats(t *testing.T) {
	ctx := context.Background()

	t.Run("small platform gets floored numbers", func(t *testing.T) {
		crops := new(MockCropRepository)
		crops.On("Count", mock.Anything).Return(3, nil)

		conversations := &memConversationRepo{}
		conversations.pairs = append(conversations.pairs, &entities.CropConversation{ID: 1, CropID: 1})

		costs := new(MockCropCostRepository)
		costs.On("TotalAll", mock.Anything).Return(1000.0, nil)

		service := NewStatsService(crops, conversations, costs, nil)

		stats, err := service.PlatformStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 89, stats.AIConsultations)
		assert.Equal(t, 12, stats.ActiveCrops)
		assert.Equal(t, 15000.0, stats.CostSavings)
		assert.Equal(t, 95, stats.AccuracyRate)
	})

	t.Run("large platform reports real numbers", func(t *testing.T) {
		crops := new(MockCropRepository)
		crops.On("Count", mock.Anything).Return(250, nil)

		conversations := &memConversationRepo{}
		for i := 0; i < 120; i++ {
			conversations.pairs = append(conversations.pairs, &entities.CropConversation{CropID: 1})
		}

		costs := new(MockCropCostRepository)
		costs.On("TotalAll", mock.Anything).Return(200000.0, nil)

		service := NewStatsService(crops, conversations, costs, nil)

		stats, err := service.PlatformStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 120, stats.AIConsultations)
		assert.Equal(t, 250, stats.ActiveCrops)
		assert.Equal(t, 30000.0, stats.CostSavings)
	})

	t.Run("result is cached and served from cache", func(t *testing.T) {
		crops := new(MockCropRepository)
		crops.On("Count", mock.Anything).Return(3, nil)
		conversations := &memConversationRepo{}
		costs := new(MockCropCostRepository)
		costs.On("TotalAll", mock.Anything).Return(0.0, nil)

		cache := newMemCacheProvider()
		service := NewStatsService(crops, conversations, costs, cache)

		first, err := service.PlatformStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 300, cache.ttls["stats:platform"])

		cached, ok := cache.values["stats:platform"]
		require.True(t, ok)
		var decoded entities.UserStats
		require.NoError(t, json.Unmarshal(cached, &decoded))
		assert.Equal(t, *first, decoded)

		second, err := service.PlatformStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		crops.AssertNumberOfCalls(t, "Count", 1)
		costs.AssertNumberOfCalls(t, "TotalAll", 1)
	})

	t.Run("corrupt cache entry falls through to the counts", func(t *testing.T) {
		crops := new(MockCropRepository)
		crops.On("Count", mock.Anything).Return(3, nil)
		conversations := &memConversationRepo{}
		costs := new(MockCropCostRepository)
		costs.On("TotalAll", mock.Anything).Return(0.0, nil)

		cache := newMemCacheProvider()
		cache.values["stats:platform"] = []byte("{not json")
		service := NewStatsService(crops, conversations, costs, cache)

		stats, err := service.PlatformStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 89, stats.AIConsultations)
		crops.AssertNumberOfCalls(t, "Count", 1)
	})
}

func TestUserStats(t *testing.T) {
	ctx := context.Background()

	t.Run("new user gets zeros, no floors", func(t *testing.T) {
		crops := new(MockCropRepository)
		crops.On("CountByUser", mock.Anything, "user-1").Return(0, nil)

		conversations := &memConversationRepo{}

		costs := new(MockCropCostRepository)
		costs.On("TotalByUser", mock.Anything, "user-1").Return(0.0, nil)

		service := NewStatsService(crops, conversations, costs, nil)

		stats, err := service.UserStats(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 0, stats.AIConsultations)
		assert.Equal(t, 0, stats.ActiveCrops)
		assert.Equal(t, 0.0, stats.CostSavings)
		assert.Equal(t, 0, stats.AccuracyRate)
	})

	t.Run("active user gets real numbers and the accuracy rate", func(t *testing.T) {
		crops := new(MockCropRepository)
		crops.On("CountByUser", mock.Anything, "user-2").Return(4, nil)

		conversations := &memConversationRepo{userCounts: map[string]int{"user-2": 17}}

		costs := new(MockCropCostRepository)
		costs.On("TotalByUser", mock.Anything, "user-2").Return(8000.0, nil)

		service := NewStatsService(crops, conversations, costs, nil)

		stats, err := service.UserStats(ctx, "user-2")
		require.NoError(t, err)
		assert.Equal(t, 17, stats.AIConsultations)
		assert.Equal(t, 4, stats.ActiveCrops)
		assert.Equal(t, 1200.0, stats.CostSavings)
		assert.Equal(t, 95, stats.AccuracyRate)
	})
}
