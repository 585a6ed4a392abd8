package controllers

import (
	"net/http"
	"strconv"

	"restaurant-system/internal/services"
	apperrors "restaurant-system/pkg/errors"
	"restaurant-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type MenuItemController struct {
	service services.MenuItemServiceInterface
	logger  *zap.Logger
}

func NewMenuItemController(service services.MenuItemServiceInterface, logger *zap.Logger) *MenuItemController {
	return &MenuItemController{service: service, logger: logger}
}

func (c *MenuItemController) GetMenuItems(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	items, total, err := c.service.GetMenuItems(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, items, "Позиции меню получены", http.StatusOK, total)
}

func (c *MenuItemController) FindMenuItem(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный ID", err, map[string]interface{}{"id": ctx.Param("id")}),
			c.logger,
		)
	}

	item, err := c.service.FindMenuItem(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, item, "Позиция меню получена", http.StatusOK)
}
