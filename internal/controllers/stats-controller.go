package controllers

import (
	"net/http"

	"restaurant-system/internal/services"
	"restaurant-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type StatsController struct {
	service *services.StatsService
	logger  *zap.Logger
}

func NewStatsController(service *services.StatsService, logger *zap.Logger) *StatsController {
	return &StatsController{service: service, logger: logger}
}

func (c *StatsController) GetStats(ctx echo.Context) error {
	stats, err := c.service.GenerateStats(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, "Статистика получена", http.StatusOK)
}
