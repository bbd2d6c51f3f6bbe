package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"spa-system/internal/services"
	apperrors "spa-system/pkg/errors"
	"spa-system/pkg/utils"
)

type PhotoController struct {
	service services.PhotoServiceInterface
	logger  *zap.Logger
}

func NewPhotoController(service services.PhotoServiceInterface, logger *zap.Logger) *PhotoController {
	return &PhotoController{service: service, logger: logger}
}

func (c *PhotoController) GetCasePhotos(ctx echo.Context) error {
	caseID, err := parseID(ctx, "caseId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	photos, err := c.service.GetCasePhotos(ctx.Request().Context(), caseID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, photos, "Фото кейса получены", http.StatusOK)
}

// UploadCasePhotos принимает multipart-форму: поле type (BEFORE/AFTER),
// необязательное note и файлы в поле photos.
func (c *PhotoController) UploadCasePhotos(ctx echo.Context) error {
	caseID, err := parseID(ctx, "caseId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Ожидалась multipart-форма", err, nil), c.logger)
	}

	photoType := ctx.FormValue("type")
	var note *string
	if v := ctx.FormValue("note"); v != "" {
		note = &v
	}

	uploaderID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.service.UploadCasePhotos(ctx.Request().Context(), caseID, photoType, note, form.File["photos"], uploaderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	message := "Фото загружены"
	if result.Error != "" {
		message = result.Error
	}
	return utils.SuccessResponse(ctx, result, message, http.StatusCreated)
}

func (c *PhotoController) DeletePhoto(ctx echo.Context) error {
	photoID, err := parseID(ctx, "photoId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.service.DeletePhoto(ctx.Request().Context(), photoID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Фото удалено", http.StatusOK)
}
