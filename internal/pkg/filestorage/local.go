package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mvidal/agenda/internal/pkg/logger"
)

// FileStorage defines the interface for attachment storage
type FileStorage interface {
	// Save stores an uploaded file and returns the path it was stored under
	Save(fileHeader *multipart.FileHeader) (string, error)

	// Open opens a stored file for reading
	Open(filePath string) (io.ReadCloser, error)

	// Delete removes a stored file; deleting a missing file is not an error
	Delete(filePath string) error
}

// LocalStorage saves attachments on the local filesystem. The database row
// keeps the original display name; the file on disk gets a uuid-prefixed
// name to prevent collisions.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage rooted at basePath
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// Save stores an uploaded file under a unique name and returns its path
// relative to the storage root.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	storedName := uuid.New().String() + "_" + filepath.Base(fileHeader.Filename)
	dstPath := filepath.Join(ls.basePath, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", storedName).Msg("File saved")
	return storedName, nil
}

// Open opens a stored file by the path returned from Save
func (ls *LocalStorage) Open(filePath string) (io.ReadCloser, error) {
	name := filepath.Base(filePath)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, fmt.Errorf("invalid file path: %s", filePath)
	}
	return os.Open(filepath.Join(ls.basePath, name))
}

// Delete removes a stored file. A missing file counts as deleted.
func (ls *LocalStorage) Delete(filePath string) error {
	if filePath == "" {
		return nil
	}

	name := filepath.Base(filePath)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	physicalPath := filepath.Join(ls.basePath, name)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
