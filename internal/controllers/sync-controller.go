package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"spa-system/internal/services"
	"spa-system/pkg/utils"
)

// SyncController запускает импорт данных из старой системы учёта.
type SyncController struct {
	service services.SyncServiceInterface
	logger  *zap.Logger
}

func NewSyncController(service services.SyncServiceInterface, logger *zap.Logger) *SyncController {
	return &SyncController{service: service, logger: logger}
}

func (c *SyncController) ImportAppointments(ctx echo.Context) error {
	result, err := c.service.ImportAppointments(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Импорт завершён", http.StatusOK)
}
