package routes

import (
	"github.com/labstack/echo/v4"

	"spa-system/internal/controllers"
)

func registerCustomerRoutes(g *echo.Group, c *controllers.CustomerController, photos *controllers.PhotoController) {
	customers := g.Group("/customers")

	customers.GET("", c.GetCustomers)
	customers.POST("", c.CreateCustomer)
	customers.GET("/:id", c.GetCustomer)
	customers.PUT("/:id", c.UpdateCustomer)

	// Вкладки профиля.
	customers.GET("/:id/overview", c.GetOverview)
	customers.GET("/:id/cases", c.GetCases)
	customers.GET("/:id/appointments", c.GetAppointments)
	customers.GET("/:id/financial", c.GetFinancialHistory)

	// Кейсы, счета и фотогалерея.
	cases := g.Group("/cases")
	cases.POST("", c.CreateCase)
	cases.GET("/:caseId", c.GetCase)
	cases.GET("/:caseId/photos", photos.GetCasePhotos)
	cases.POST("/:caseId/photos", photos.UploadCasePhotos)

	g.POST("/invoices", c.CreateInvoice)
	g.DELETE("/photos/:photoId", photos.DeletePhoto)
}
