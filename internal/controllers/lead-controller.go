package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"spa-system/internal/dto"
	"spa-system/internal/services"
	apperrors "spa-system/pkg/errors"
	"spa-system/pkg/utils"
)

type LeadController struct {
	service services.LeadServiceInterface
	logger  *zap.Logger
}

func NewLeadController(service services.LeadServiceInterface, logger *zap.Logger) *LeadController {
	return &LeadController{service: service, logger: logger}
}

func (c *LeadController) GetLeads(ctx echo.Context) error {
	leads, err := c.service.GetLeads(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, leads, "Список лидов получен", http.StatusOK)
}

func (c *LeadController) GetLead(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	lead, err := c.service.GetLead(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, lead, "Лид получен", http.StatusOK)
}

// CreateHandoff кладёт контекст лида в слот для формы создания записи.
func (c *LeadController) CreateHandoff(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateHandoffDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), c.logger)
	}

	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.service.CreateHandoff(ctx.Request().Context(), id, payload, userID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Контекст передачи сохранён", http.StatusCreated)
}

// ClaimHandoff атомарно забирает контекст; повторный вызов вернёт 404.
func (c *LeadController) ClaimHandoff(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	handoff, err := c.service.ClaimHandoff(ctx.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, handoff, "Контекст передачи получен", http.StatusOK)
}
