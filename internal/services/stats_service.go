package services

import (
	"context"
	"encoding/json"
	"time"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/repositories"

	"go.uber.org/zap"
)

const statsCacheKey = "restaurant_stats:summary"

// StatsService отдает агрегированную статистику по импортированным данным
// с кешированием в Redis (cache-aside).
type StatsService struct {
	statsRepository repositories.StatsRepositoryInterface
	cache           repositories.CacheRepositoryInterface
	logger          *zap.Logger
	cacheTTL        time.Duration
}

func NewStatsService(
	statsRepository repositories.StatsRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *StatsService {
	return &StatsService{
		statsRepository: statsRepository,
		cache:           cache,
		logger:          logger,
		cacheTTL:        cacheTTL,
	}
}

func (s *StatsService) GenerateStats(ctx context.Context) (*dto.StatsDTO, error) {
	if raw, err := s.cache.Get(ctx, statsCacheKey); err == nil {
		var cached dto.StatsDTO
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn("поврежденная статистика в кеше, пересчитываем")
	}

	summary, err := s.statsRepository.GetSummary(ctx)
	if err != nil {
		return nil, err
	}
	priceRange, err := s.statsRepository.GetPriceRange(ctx)
	if err != nil {
		return nil, err
	}
	distribution, err := s.statsRepository.GetPriceDistribution(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.StatsDTO{
		Summary:           *summary,
		PriceRange:        *priceRange,
		PriceDistribution: distribution,
	}

	if raw, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, statsCacheKey, raw, s.cacheTTL); err != nil {
			s.logger.Warn("не удалось закешировать статистику", zap.Error(err))
		}
	}
	return stats, nil
}
