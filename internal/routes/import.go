package routes

import (
	"restaurant-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runImportRouter(g *echo.Group, ctrl *controllers.ImportController) {
	g.POST("/import", ctrl.CreateImport)
	g.POST("/import/upload", ctrl.UploadImport)
	g.GET("/import/status/:job_id", ctrl.ImportStatus)
}
