package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"spa-system/internal/services"
	"spa-system/pkg/utils"
)

// CatalogController отдаёт справочники для выпадающих списков формы записи.
type CatalogController struct {
	service services.CatalogServiceInterface
	logger  *zap.Logger
}

func NewCatalogController(service services.CatalogServiceInterface, logger *zap.Logger) *CatalogController {
	return &CatalogController{service: service, logger: logger}
}

func (c *CatalogController) GetServices(ctx echo.Context) error {
	items, err := c.service.GetServices(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, items, "Прайс-лист получен", http.StatusOK)
}

func (c *CatalogController) GetTechnicians(ctx echo.Context) error {
	items, err := c.service.GetTechnicians(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, items, "Список мастеров получен", http.StatusOK)
}
