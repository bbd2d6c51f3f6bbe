package routes

import (
	"github.com/labstack/echo/v4"

	"spa-system/internal/controllers"
	"spa-system/pkg/constants"
	"spa-system/pkg/middleware"
)

func registerAppointmentRoutes(g *echo.Group, c *controllers.AppointmentController, authMW *middleware.AuthMiddleware) {
	appts := g.Group("/appointments")

	appts.GET("", c.GetAppointments)
	appts.GET("/:id", c.GetAppointment)
	appts.POST("", c.CreateAppointment)
	appts.PUT("/:id", c.UpdateAppointment)
	// Отдельный путь "только статус": им пользуются и ресепшн, и техник.
	appts.PUT("/:id/status", c.UpdateStatus)
	appts.DELETE("/:id", c.DeleteAppointment,
		authMW.RequireRoles(constants.RoleReceptionist, constants.RoleManager))
}
