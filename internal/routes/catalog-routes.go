package routes

import (
	"github.com/labstack/echo/v4"

	"spa-system/internal/controllers"
)

func registerCatalogRoutes(g *echo.Group, c *controllers.CatalogController) {
	g.GET("/services", c.GetServices)
	g.GET("/technicians", c.GetTechnicians)
}
