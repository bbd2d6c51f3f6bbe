package utils

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeaderFor(t *testing.T, name string, content []byte) (*multipart.FileHeader, multipart.File) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	header := form.File["file"][0]
	file, err := header.Open()
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })
	return header, file
}

func TestValidateFile(t *testing.T) {
	pngContent := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	t.Run("картинка проходит", func(t *testing.T) {
		header, file := fileHeaderFor(t, "photo.png", pngContent)
		assert.NoError(t, ValidateFile(header, file, "case_photo"))
	})

	t.Run("текст отклоняется по содержимому, расширение не спасает", func(t *testing.T) {
		header, file := fileHeaderFor(t, "fake.png", []byte("просто текст, не картинка"))
		assert.Error(t, ValidateFile(header, file, "case_photo"))
	})

	t.Run("неизвестный контекст загрузки", func(t *testing.T) {
		header, file := fileHeaderFor(t, "photo.png", pngContent)
		assert.Error(t, ValidateFile(header, file, "nonexistent"))
	})

	t.Run("после проверки файл перемотан в начало", func(t *testing.T) {
		header, file := fileHeaderFor(t, "photo.png", pngContent)
		require.NoError(t, ValidateFile(header, file, "case_photo"))

		buf := make([]byte, 8)
		n, err := file.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), buf[:n])
	})
}
