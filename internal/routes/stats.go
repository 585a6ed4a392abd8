package routes

import (
	"restaurant-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runStatsRouter(g *echo.Group, ctrl *controllers.StatsController) {
	g.GET("/stats", ctrl.GetStats)
}
