package routes

import (
	"github.com/labstack/echo/v4"

	"spa-system/internal/controllers"
	"spa-system/pkg/constants"
	"spa-system/pkg/middleware"
)

func registerDashboardRoutes(g *echo.Group, c *controllers.DashboardController, authMW *middleware.AuthMiddleware) {
	dashboards := g.Group("/dashboards")

	dashboards.GET("/receptionist", c.GetReceptionistDashboard,
		authMW.RequireRoles(constants.RoleReceptionist, constants.RoleManager))
	dashboards.GET("/technician", c.GetTechnicianDashboard,
		authMW.RequireRoles(constants.RoleTechnician))
	dashboards.GET("/manager", c.GetManagerDashboard,
		authMW.RequireRoles(constants.RoleManager))
	dashboards.GET("/manager/report", c.ExportReport,
		authMW.RequireRoles(constants.RoleManager))
}
