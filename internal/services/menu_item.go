package services

import (
	"context"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/repositories"
	"restaurant-system/pkg/types"

	"go.uber.org/zap"
)

type MenuItemServiceInterface interface {
	GetMenuItems(ctx context.Context, filter types.Filter) ([]dto.MenuItemDTO, uint64, error)
	FindMenuItem(ctx context.Context, id uint64) (*dto.MenuItemDetailDTO, error)
}

type MenuItemService struct {
	menuItemRepository repositories.MenuItemRepositoryInterface
	logger             *zap.Logger
}

func NewMenuItemService(menuItemRepository repositories.MenuItemRepositoryInterface, logger *zap.Logger) MenuItemServiceInterface {
	return &MenuItemService{
		menuItemRepository: menuItemRepository,
		logger:             logger,
	}
}

func (s *MenuItemService) GetMenuItems(ctx context.Context, filter types.Filter) ([]dto.MenuItemDTO, uint64, error) {
	return s.menuItemRepository.GetMenuItems(ctx, uint64(filter.Limit), uint64(filter.Offset), filter.Search)
}

func (s *MenuItemService) FindMenuItem(ctx context.Context, id uint64) (*dto.MenuItemDetailDTO, error) {
	return s.menuItemRepository.FindMenuItem(ctx, id)
}
