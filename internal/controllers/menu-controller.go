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

type MenuController struct {
	service services.MenuServiceInterface
	logger  *zap.Logger
}

func NewMenuController(service services.MenuServiceInterface, logger *zap.Logger) *MenuController {
	return &MenuController{service: service, logger: logger}
}

func (c *MenuController) GetMenus(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	menus, total, err := c.service.GetMenus(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, menus, "Меню получены", http.StatusOK, total)
}

func (c *MenuController) FindMenu(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный ID", err, map[string]interface{}{"id": ctx.Param("id")}),
			c.logger,
		)
	}

	menu, err := c.service.FindMenu(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, menu, "Меню получено", http.StatusOK)
}
