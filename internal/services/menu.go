package services

import (
	"context"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/repositories"
	"restaurant-system/pkg/types"

	"go.uber.org/zap"
)

type MenuServiceInterface interface {
	GetMenus(ctx context.Context, filter types.Filter) ([]dto.MenuDTO, uint64, error)
	FindMenu(ctx context.Context, id uint64) (*dto.MenuDTO, error)
}

type MenuService struct {
	menuRepository repositories.MenuRepositoryInterface
	logger         *zap.Logger
}

func NewMenuService(menuRepository repositories.MenuRepositoryInterface, logger *zap.Logger) MenuServiceInterface {
	return &MenuService{
		menuRepository: menuRepository,
		logger:         logger,
	}
}

func (s *MenuService) GetMenus(ctx context.Context, filter types.Filter) ([]dto.MenuDTO, uint64, error) {
	return s.menuRepository.GetMenus(ctx, uint64(filter.Limit), uint64(filter.Offset), filter.Search)
}

func (s *MenuService) FindMenu(ctx context.Context, id uint64) (*dto.MenuDTO, error) {
	return s.menuRepository.FindMenu(ctx, id)
}
