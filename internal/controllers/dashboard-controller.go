package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"spa-system/internal/services"
	apperrors "spa-system/pkg/errors"
	"spa-system/pkg/utils"
)

type DashboardController struct {
	service services.DashboardServiceInterface
	reports services.ReportServiceInterface
	logger  *zap.Logger
}

func NewDashboardController(
	service services.DashboardServiceInterface,
	reports services.ReportServiceInterface,
	logger *zap.Logger,
) *DashboardController {
	return &DashboardController{service: service, reports: reports, logger: logger}
}

func (c *DashboardController) GetReceptionistDashboard(ctx echo.Context) error {
	dashboard, err := c.service.GetReceptionistDashboard(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dashboard, "Дашборд получен", http.StatusOK)
}

func (c *DashboardController) GetTechnicianDashboard(ctx echo.Context) error {
	technicianID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	dashboard, err := c.service.GetTechnicianDashboard(ctx.Request().Context(), technicianID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dashboard, "Дашборд получен", http.StatusOK)
}

func (c *DashboardController) GetManagerDashboard(ctx echo.Context) error {
	from, to, err := parsePeriod(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	dashboard, err := c.service.GetManagerDashboard(ctx.Request().Context(), from, to)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dashboard, "Дашборд получен", http.StatusOK)
}

// ExportReport отдаёт xlsx-файл с отчётом за период.
func (c *DashboardController) ExportReport(ctx echo.Context) error {
	from, to, err := parsePeriod(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	buffer, filename, err := c.reports.ExportPeriodReport(ctx.Request().Context(), from, to)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buffer.Bytes())
}

// parsePeriod читает from/to (YYYY-MM-DD). По умолчанию — последние 30 дней,
// правая граница не включается.
func parsePeriod(ctx echo.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 1)

	if v := ctx.QueryParam("from"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewInvalidInputError("неверный формат from: %s", v)
		}
		from = parsed
	}
	if v := ctx.QueryParam("to"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewInvalidInputError("неверный формат to: %s", v)
		}
		to = parsed.AddDate(0, 0, 1)
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, apperrors.NewInvalidInputError("период задан неверно: from позже to")
	}
	return from, to, nil
}
