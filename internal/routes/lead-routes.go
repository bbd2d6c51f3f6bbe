package routes

import (
	"github.com/labstack/echo/v4"

	"spa-system/internal/controllers"
)

func registerLeadRoutes(g *echo.Group, c *controllers.LeadController) {
	leads := g.Group("/leads")

	leads.GET("", c.GetLeads)
	leads.GET("/:id", c.GetLead)
	// Передача лида в форму создания записи: положить контекст и забрать его.
	leads.POST("/:id/handoff", c.CreateHandoff)
	g.GET("/handoff", c.ClaimHandoff)
}
