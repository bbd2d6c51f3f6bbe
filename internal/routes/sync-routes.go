package routes

import (
	"github.com/labstack/echo/v4"

	"spa-system/internal/controllers"
	"spa-system/pkg/constants"
	"spa-system/pkg/middleware"
)

func registerSyncRoutes(g *echo.Group, c *controllers.SyncController, authMW *middleware.AuthMiddleware) {
	// Импорт из старой системы доступен только менеджеру.
	g.POST("/sync/appointments", c.ImportAppointments,
		authMW.RequireRoles(constants.RoleManager))
}
