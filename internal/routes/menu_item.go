package routes

import (
	"restaurant-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runMenuItemRouter(g *echo.Group, ctrl *controllers.MenuItemController) {
	g.GET("/menu_items", ctrl.GetMenuItems)
	g.GET("/menu_items/:id", ctrl.FindMenuItem)
}
