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

type CustomerController struct {
	service     services.CustomerServiceInterface
	caseService services.CaseServiceInterface
	logger      *zap.Logger
}

func NewCustomerController(
	service services.CustomerServiceInterface,
	caseService services.CaseServiceInterface,
	logger *zap.Logger,
) *CustomerController {
	return &CustomerController{service: service, caseService: caseService, logger: logger}
}

func (c *CustomerController) GetCustomers(ctx echo.Context) error {
	params := utils.ParsePageParams(ctx.QueryParams(), "id")
	search := ctx.QueryParam("search")

	page, err := c.service.GetCustomers(ctx.Request().Context(), params, search)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, page, "Список клиентов получен", http.StatusOK)
}

func (c *CustomerController) GetCustomer(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	customer, err := c.service.GetCustomer(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, customer, "Клиент получен", http.StatusOK)
}

func (c *CustomerController) CreateCustomer(ctx echo.Context) error {
	var payload dto.CreateCustomerDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.service.CreateCustomer(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, created, "Клиент создан", http.StatusCreated)
}

func (c *CustomerController) UpdateCustomer(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateCustomerDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), c.logger)
	}

	updated, err := c.service.UpdateCustomer(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, updated, "Клиент обновлён", http.StatusOK)
}

// Вкладки профиля клиента.

func (c *CustomerController) GetOverview(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	overview, err := c.service.GetOverview(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, overview, "Обзор клиента получен", http.StatusOK)
}

func (c *CustomerController) GetCases(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	cases, err := c.service.GetCases(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, cases, "Процедуры клиента получены", http.StatusOK)
}

func (c *CustomerController) GetAppointments(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	params := utils.ParsePageParams(ctx.QueryParams(), "appointmentDateTime")

	page, err := c.service.GetAppointments(ctx.Request().Context(), id, params)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, page, "Записи клиента получены", http.StatusOK)
}

func (c *CustomerController) GetFinancialHistory(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	items, err := c.service.GetFinancialHistory(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, items, "Финансовая история получена", http.StatusOK)
}

// Кейсы и счета.

func (c *CustomerController) CreateCase(ctx echo.Context) error {
	var payload dto.CreateCaseDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.caseService.CreateCase(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, created, "Кейс создан", http.StatusCreated)
}

func (c *CustomerController) GetCase(ctx echo.Context) error {
	id, err := parseID(ctx, "caseId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	tc, err := c.caseService.GetCase(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, tc, "Кейс получен", http.StatusOK)
}

func (c *CustomerController) CreateInvoice(ctx echo.Context) error {
	var payload dto.CreateInvoiceDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	actorID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.caseService.CreateInvoice(ctx.Request().Context(), payload, actorID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, created, "Оплата принята", http.StatusCreated)
}
