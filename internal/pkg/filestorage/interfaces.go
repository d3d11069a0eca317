package filestorage

import (
	"mime/multipart"
	"time"
)

// FileInfo represents information about a stored file
type FileInfo struct {
	Path     string // relative path where the file is stored
	Filename string // original filename
	FileSize int64  // size in bytes
	MimeType string // MIME type of the file
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves a file under the given subdirectory and returns its stored path
	SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error

	// SignedURL returns a time-limited download URL for a stored path
	SignedURL(filePath string, ttl time.Duration) (string, error)

	// VerifySignedPath checks a signature produced by SignedURL
	VerifySignedPath(filePath, expires, signature string) bool
}
