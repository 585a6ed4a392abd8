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

type RestaurantController struct {
	service services.RestaurantServiceInterface
	logger  *zap.Logger
}

func NewRestaurantController(service services.RestaurantServiceInterface, logger *zap.Logger) *RestaurantController {
	return &RestaurantController{service: service, logger: logger}
}

func (c *RestaurantController) GetRestaurants(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	restaurants, total, err := c.service.GetRestaurants(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, restaurants, "Рестораны получены", http.StatusOK, total)
}

func (c *RestaurantController) FindRestaurant(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный ID", err, map[string]interface{}{"id": ctx.Param("id")}),
			c.logger,
		)
	}

	restaurant, err := c.service.FindRestaurant(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, restaurant, "Ресторан получен", http.StatusOK)
}
