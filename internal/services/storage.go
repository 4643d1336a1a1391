package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

type StorageService interface {
	SaveFile(file *multipart.FileHeader, fileType string) (string, string, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath  string
	maxFileSize int64
}

func NewStorageService(uploadPath string, maxFileSize int64) StorageService {
	return &storageService{
		uploadPath:  uploadPath,
		maxFileSize: maxFileSize,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile stores the upload under a unique name and returns that name and
// its full path.
func (s *storageService) SaveFile(file *multipart.FileHeader, fileType string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", "", &ValidationError{Message: fmt.Sprintf("unsupported file type %q, use .pdf, .docx or .txt", ext)}
	}
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return "", "", &ValidationError{Message: fmt.Sprintf("file is too large (max %d bytes)", s.maxFileSize)}
	}

	uniqueFilename := fmt.Sprintf("%s_%s%s", fileType, uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	if err := writeUpload(filePath, src); err != nil {
		return "", "", err
	}

	return uniqueFilename, filePath, nil
}

// writeUpload copies src to filePath and removes the partial file when the
// copy fails.
func writeUpload(filePath string, src io.Reader) error {
	dst, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(filePath)
		return fmt.Errorf("failed to save file: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(filePath)
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
