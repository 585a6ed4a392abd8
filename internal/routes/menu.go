package routes

import (
	"restaurant-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runMenuRouter(g *echo.Group, ctrl *controllers.MenuController) {
	g.GET("/menus", ctrl.GetMenus)
	g.GET("/menus/:id", ctrl.FindMenu)
}
