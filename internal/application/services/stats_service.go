package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/domain/providers"
	"github.com/farmersguild/backend/internal/domain/repositories"
)

const (
	platformStatsCacheKey = "stats:platform"
	platformStatsTTL      = 300

	// Displayed floors keep the homepage from reading as an empty platform.
	minConsultations = 89
	minActiveCrops   = 12
	minCostSavings   = 15000

	costSavingsRate = 0.15
	accuracyRate    = 95
)

// StatsService aggregates usage numbers for the homepage and dashboard.
// Platform stats are cached in Redis since they scan several tables.
type StatsService struct {
	crops         repositories.CropRepository
	conversations repositories.CropConversationRepository
	costs         repositories.CropCostRepository
	cache         providers.CacheProvider
}

// NewStatsService creates a new stats service
func NewStatsService(
	crops repositories.CropRepository,
	conversations repositories.CropConversationRepository,
	costs repositories.CropCostRepository,
	cache providers.CacheProvider,
) *StatsService {
	return &StatsService{
		crops:         crops,
		conversations: conversations,
		costs:         costs,
		cache:         cache,
	}
}

// PlatformStats returns platform-wide numbers with demo floors applied.
func (s *StatsService) PlatformStats(ctx context.Context) (*entities.UserStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, platformStatsCacheKey); err == nil {
			stats := &entities.UserStats{}
			if err := json.Unmarshal(cached, stats); err == nil {
				return stats, nil
			}
		}
	}

	consultations, err := s.conversations.Count(ctx)
	if err != nil {
		return nil, err
	}
	crops, err := s.crops.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalCosts, err := s.costs.TotalAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &entities.UserStats{
		AIConsultations: maxInt(consultations, minConsultations),
		ActiveCrops:     maxInt(crops, minActiveCrops),
		CostSavings:     maxFloat(totalCosts*costSavingsRate, minCostSavings),
		AccuracyRate:    accuracyRate,
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, platformStatsCacheKey, encoded, platformStatsTTL); err != nil {
				log.Printf("Warning: failed to cache platform stats: %v", err)
			}
		}
	}

	return stats, nil
}

// UserStats returns per-user numbers, without demo floors.
func (s *StatsService) UserStats(ctx context.Context, userID string) (*entities.UserStats, error) {
	consultations, err := s.conversations.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	crops, err := s.crops.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalCosts, err := s.costs.TotalByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rate := 0
	if consultations > 0 {
		rate = accuracyRate
	}

	return &entities.UserStats{
		AIConsultations: consultations,
		ActiveCrops:     crops,
		CostSavings:     totalCosts * costSavingsRate,
		AccuracyRate:    rate,
	}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
