package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"go.uber.org/zap"

	"spa-system/config"
	"spa-system/internal/dto"
	"spa-system/internal/entities"
	"spa-system/internal/repositories"
	"spa-system/pkg/constants"
	apperrors "spa-system/pkg/errors"
	"spa-system/pkg/filestorage"
	"spa-system/pkg/utils"
)

type PhotoServiceInterface interface {
	GetCasePhotos(ctx context.Context, caseID uint64) ([]dto.PhotoDTO, error)
	UploadCasePhotos(ctx context.Context, caseID uint64, photoType string, note *string,
		files []*multipart.FileHeader, uploaderID uint64) (*dto.UploadPhotosResultDTO, error)
	DeletePhoto(ctx context.Context, photoID uint64) error
}

type photoService struct {
	photoRepo repositories.PhotoRepositoryInterface
	caseRepo  repositories.CaseRepositoryInterface
	storage   filestorage.FileStorageInterface
	logger    *zap.Logger
}

func NewPhotoService(
	photoRepo repositories.PhotoRepositoryInterface,
	caseRepo repositories.CaseRepositoryInterface,
	storage filestorage.FileStorageInterface,
	logger *zap.Logger,
) PhotoServiceInterface {
	return &photoService{photoRepo: photoRepo, caseRepo: caseRepo, storage: storage, logger: logger}
}

func (s *photoService) GetCasePhotos(ctx context.Context, caseID uint64) ([]dto.PhotoDTO, error) {
	if _, err := s.caseRepo.FindCase(ctx, caseID); err != nil {
		return nil, err
	}

	photos, err := s.photoRepo.GetByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PhotoDTO, 0, len(photos))
	for _, p := range photos {
		out = append(out, toPhotoDTO(p))
	}
	return out, nil
}

// UploadCasePhotos грузит пачку файлов. Невалидные файлы отбраковываются,
// валидные всё равно сохраняются; имена отбракованных склеиваются в одно
// сообщение.
func (s *photoService) UploadCasePhotos(ctx context.Context, caseID uint64, photoType string, note *string,
	files []*multipart.FileHeader, uploaderID uint64) (*dto.UploadPhotosResultDTO, error) {

	if photoType != constants.PhotoTypeBefore && photoType != constants.PhotoTypeAfter {
		return nil, apperrors.NewInvalidInputError("недопустимый тип фото: %s", photoType)
	}
	if len(files) == 0 {
		return nil, apperrors.NewInvalidInputError("не передано ни одного файла")
	}
	if _, err := s.caseRepo.FindCase(ctx, caseID); err != nil {
		return nil, err
	}

	result := &dto.UploadPhotosResultDTO{Uploaded: []dto.PhotoDTO{}}
	prefix := config.UploadContexts["case_photo"].PathPrefix

	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			result.Rejected = append(result.Rejected, fileHeader.Filename)
			continue
		}

		if err := utils.ValidateFile(fileHeader, file, "case_photo"); err != nil {
			s.logger.Warn("файл не прошёл проверку",
				zap.String("filename", fileHeader.Filename), zap.Error(err))
			result.Rejected = append(result.Rejected, fileHeader.Filename)
			file.Close()
			continue
		}

		filePath, err := s.storage.Save(file, fileHeader.Filename, prefix)
		file.Close()
		if err != nil {
			s.logger.Error("не удалось сохранить файл",
				zap.String("filename", fileHeader.Filename), zap.Error(err))
			result.Rejected = append(result.Rejected, fileHeader.Filename)
			continue
		}

		created, err := s.photoRepo.CreatePhoto(ctx, entities.Photo{
			CaseID:     caseID,
			FilePath:   "/uploads/" + filePath,
			Type:       photoType,
			Note:       note,
			UploadedBy: &uploaderID,
		})
		if err != nil {
			// Файл уже на диске, но строки в БД нет; убираем файл, чтобы не
			// копить сирот.
			if delErr := s.storage.Delete("/uploads/" + filePath); delErr != nil {
				s.logger.Warn("не удалось удалить осиротевший файл", zap.Error(delErr))
			}
			result.Rejected = append(result.Rejected, fileHeader.Filename)
			continue
		}
		result.Uploaded = append(result.Uploaded, toPhotoDTO(*created))
	}

	if len(result.Rejected) > 0 {
		result.Error = fmt.Sprintf("Файлы не приняты: %s", strings.Join(result.Rejected, ", "))
	}
	return result, nil
}

func (s *photoService) DeletePhoto(ctx context.Context, photoID uint64) error {
	photo, err := s.photoRepo.FindPhoto(ctx, photoID)
	if err != nil {
		return err
	}
	if err := s.photoRepo.DeletePhoto(ctx, photoID); err != nil {
		return err
	}
	if err := s.storage.Delete(photo.FilePath); err != nil {
		s.logger.Warn("файл фото не удалён с диска", zap.String("path", photo.FilePath), zap.Error(err))
	}
	return nil
}
