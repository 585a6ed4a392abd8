package routes

import (
	"restaurant-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runRestaurantRouter(g *echo.Group, ctrl *controllers.RestaurantController) {
	g.GET("/restaurants", ctrl.GetRestaurants)
	g.GET("/restaurants/:id", ctrl.FindRestaurant)
}
