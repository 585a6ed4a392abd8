package services

import (
	"context"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/repositories"
	"restaurant-system/pkg/types"

	"go.uber.org/zap"
)

type RestaurantServiceInterface interface {
	GetRestaurants(ctx context.Context, filter types.Filter) ([]dto.RestaurantDTO, uint64, error)
	FindRestaurant(ctx context.Context, id uint64) (*dto.RestaurantDetailDTO, error)
}

type RestaurantService struct {
	restaurantRepository repositories.RestaurantRepositoryInterface
	logger               *zap.Logger
}

func NewRestaurantService(restaurantRepository repositories.RestaurantRepositoryInterface, logger *zap.Logger) RestaurantServiceInterface {
	return &RestaurantService{
		restaurantRepository: restaurantRepository,
		logger:               logger,
	}
}

func (s *RestaurantService) GetRestaurants(ctx context.Context, filter types.Filter) ([]dto.RestaurantDTO, uint64, error) {
	return s.restaurantRepository.GetRestaurants(ctx, uint64(filter.Limit), uint64(filter.Offset), filter.Search)
}

func (s *RestaurantService) FindRestaurant(ctx context.Context, id uint64) (*dto.RestaurantDetailDTO, error) {
	return s.restaurantRepository.FindRestaurant(ctx, id)
}
