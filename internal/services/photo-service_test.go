package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spa-system/internal/entities"
	"spa-system/pkg/constants"
	apperrors "spa-system/pkg/errors"
)

// pngHeader — валидная сигнатура PNG для детектора MIME-типов.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// makeFileHeaders собирает multipart-форму в памяти и возвращает заголовки
// файлов так, как их увидит обработчик.
func makeFileHeaders(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, content := range files {
		part, err := writer.CreateFormFile("photos", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&body, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["photos"]
}

func newTestPhotoService(photoRepo *stubPhotoRepo, caseRepo *stubCaseRepo, storage *stubFileStorage) PhotoServiceInterface {
	return NewPhotoService(photoRepo, caseRepo, storage, zap.NewNop())
}

func TestUploadCasePhotosAcceptsValidImages(t *testing.T) {
	photoRepo := &stubPhotoRepo{}
	caseRepo := &stubCaseRepo{found: &entities.TreatmentCase{ID: 1, CustomerID: 2}}
	storage := &stubFileStorage{}
	svc := newTestPhotoService(photoRepo, caseRepo, storage)

	headers := makeFileHeaders(t, map[string][]byte{
		"before.png": pngHeader,
	})

	result, err := svc.UploadCasePhotos(context.Background(), 1, constants.PhotoTypeBefore, nil, headers, 5)
	require.NoError(t, err)

	assert.Len(t, result.Uploaded, 1)
	assert.Empty(t, result.Rejected)
	assert.Empty(t, result.Error)
	assert.Len(t, photoRepo.created, 1)
	assert.Equal(t, constants.PhotoTypeBefore, photoRepo.created[0].Type)
}

func TestUploadCasePhotosRejectsInvalidButKeepsValid(t *testing.T) {
	photoRepo := &stubPhotoRepo{}
	caseRepo := &stubCaseRepo{found: &entities.TreatmentCase{ID: 1, CustomerID: 2}}
	storage := &stubFileStorage{}
	svc := newTestPhotoService(photoRepo, caseRepo, storage)

	headers := makeFileHeaders(t, map[string][]byte{
		"good.png":    pngHeader,
		"notes.txt":   []byte("это не картинка, а текст"),
		"archive.zip": []byte("PK\x03\x04какой-то архив"),
	})

	result, err := svc.UploadCasePhotos(context.Background(), 1, constants.PhotoTypeAfter, nil, headers, 5)
	require.NoError(t, err)

	// Валидный файл сохранён, невалидные отбракованы с одним сообщением.
	assert.Len(t, result.Uploaded, 1)
	assert.Len(t, result.Rejected, 2)
	assert.Contains(t, result.Rejected, "notes.txt")
	assert.Contains(t, result.Rejected, "archive.zip")
	assert.Contains(t, result.Error, "notes.txt")
	assert.Contains(t, result.Error, "archive.zip")
	assert.Len(t, photoRepo.created, 1)
}

func TestUploadCasePhotosValidation(t *testing.T) {
	caseRepo := &stubCaseRepo{found: &entities.TreatmentCase{ID: 1}}
	svc := newTestPhotoService(&stubPhotoRepo{}, caseRepo, &stubFileStorage{})

	t.Run("неизвестный тип фото", func(t *testing.T) {
		headers := makeFileHeaders(t, map[string][]byte{"a.png": pngHeader})
		_, err := svc.UploadCasePhotos(context.Background(), 1, "DURING", nil, headers, 5)
		var inputErr *apperrors.InvalidInputError
		assert.ErrorAs(t, err, &inputErr)
	})

	t.Run("пустой список файлов", func(t *testing.T) {
		_, err := svc.UploadCasePhotos(context.Background(), 1, constants.PhotoTypeBefore, nil, nil, 5)
		var inputErr *apperrors.InvalidInputError
		assert.ErrorAs(t, err, &inputErr)
	})

	t.Run("несуществующий кейс", func(t *testing.T) {
		emptySvc := newTestPhotoService(&stubPhotoRepo{}, &stubCaseRepo{}, &stubFileStorage{})
		headers := makeFileHeaders(t, map[string][]byte{"a.png": pngHeader})
		_, err := emptySvc.UploadCasePhotos(context.Background(), 1, constants.PhotoTypeBefore, nil, headers, 5)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestDeletePhotoRemovesFile(t *testing.T) {
	photoRepo := &stubPhotoRepo{photos: []entities.Photo{
		{ID: 1, CaseID: 1, FilePath: "/uploads/cases/2025/08/20/a.png", Type: constants.PhotoTypeBefore},
	}}
	storage := &stubFileStorage{}
	svc := newTestPhotoService(photoRepo, &stubCaseRepo{found: &entities.TreatmentCase{ID: 1}}, storage)

	require.NoError(t, svc.DeletePhoto(context.Background(), 1))
	require.Len(t, storage.deleted, 1)
	assert.Equal(t, "/uploads/cases/2025/08/20/a.png", storage.deleted[0])
}
