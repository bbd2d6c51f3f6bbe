package utils

import (
	"errors"
	"net/http"

	apperrors "spa-system/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HttpResponse — единый конверт ответа: {success, message, data}.
// Фронт проверяет поле success и разворачивает data.
type HttpResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(ctx echo.Context, data interface{}, message string, code int) error {
	return ctx.JSON(code, &HttpResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse переводит внутреннюю ошибку в HTTP-ответ и пишет подробности в лог.
// Клиенту уходит только message, внутренняя ошибка остаётся в логах.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := http.StatusInternalServerError
	message := "Внутренняя ошибка сервера"

	var httpErr *apperrors.HttpError
	var inputErr *apperrors.InvalidInputError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		message = httpErr.Message
		if httpErr.Err != nil {
			logger.Error("ошибка обработки запроса",
				zap.String("uri", ctx.Request().RequestURI),
				zap.Int("code", code),
				zap.Any("details", httpErr.Details),
				zap.Error(httpErr.Err),
			)
		}
	case errors.As(err, &inputErr):
		code = http.StatusBadRequest
		message = inputErr.Message
	case errors.As(err, &validationErrs):
		code = http.StatusBadRequest
		message = "Ошибка валидации: " + validationErrs.Error()
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, pgx.ErrNoRows):
		code = http.StatusNotFound
		message = apperrors.ErrNotFound.Error()
	case errors.Is(err, apperrors.ErrConflict):
		code = http.StatusConflict
		message = apperrors.ErrConflict.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		code = http.StatusForbidden
		message = apperrors.ErrForbidden.Error()
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenIsNotAccess):
		code = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		code = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrCustomerReferenceMissing),
		errors.Is(err, apperrors.ErrAppointmentIDMissing):
		code = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperrors.ErrHandoffEmpty):
		code = http.StatusNotFound
		message = err.Error()
	default:
		logger.Error("необработанная ошибка",
			zap.String("uri", ctx.Request().RequestURI),
			zap.Error(err),
		)
	}

	return ctx.JSON(code, &HttpResponse{
		Success: false,
		Message: message,
	})
}
