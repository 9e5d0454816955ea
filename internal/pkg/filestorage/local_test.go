package filestorage

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadFixture(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest("POST", "/", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	_, header, err := request.FormFile("file")
	require.NoError(t, err)
	return header
}

func TestSaveAndOpen(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := storage.Save(uploadFixture(t, "worksheet.pdf", "file content"))
	require.NoError(t, err)
	require.NotEmpty(t, stored)

	// Original name is kept as a suffix, prefixed for uniqueness
	assert.True(t, strings.HasSuffix(stored, "_worksheet.pdf"))
	assert.NotEqual(t, "worksheet.pdf", stored)

	file, err := storage.Open(stored)
	require.NoError(t, err)
	defer file.Close()

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "file content", string(content))
}

func TestSaveSameNameTwiceDoesNotCollide(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	first, err := storage.Save(uploadFixture(t, "notes.txt", "one"))
	require.NoError(t, err)
	second, err := storage.Save(uploadFixture(t, "notes.txt", "two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDeleteMissingFileIsNoError(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, storage.Delete("does-not-exist.txt"))
	assert.NoError(t, storage.Delete(""))
}

func TestDeleteRemovesFile(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := storage.Save(uploadFixture(t, "notes.txt", "one"))
	require.NoError(t, err)

	require.NoError(t, storage.Delete(stored))

	_, err = storage.Open(stored)
	assert.Error(t, err)
}
