package controllers

import (
	"net/http"

	"restaurant-system/pkg/utils"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HealthController struct {
	db     *pgxpool.Pool
	redis  *redis.Client
	logger *zap.Logger
}

func NewHealthController(db *pgxpool.Pool, redisClient *redis.Client, logger *zap.Logger) *HealthController {
	return &HealthController{db: db, redis: redisClient, logger: logger}
}

func (c *HealthController) Check(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	status := map[string]string{
		"postgres": "ok",
		"redis":    "ok",
	}
	healthy := true

	if err := c.db.Ping(reqCtx); err != nil {
		c.logger.Error("health: база данных недоступна", zap.Error(err))
		status["postgres"] = "unavailable"
		healthy = false
	}
	if err := c.redis.Ping(reqCtx).Err(); err != nil {
		c.logger.Error("health: redis недоступен", zap.Error(err))
		status["redis"] = "unavailable"
		healthy = false
	}

	if !healthy {
		return ctx.JSON(http.StatusServiceUnavailable, status)
	}
	return utils.SuccessResponse(ctx, status, "Сервис работает", http.StatusOK)
}
