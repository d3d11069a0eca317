package filestorage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/internhub/backend/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem. Download links
// are HMAC-signed with an expiry so stored files are not directly listable.
type LocalStorage struct {
	basePath   string
	baseURL    string
	signingKey []byte
}

// NewLocalStorage creates a new LocalStorage instance.
func NewLocalStorage(basePath, baseURL, signingKey string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath:   basePath,
		baseURL:    strings.TrimRight(baseURL, "/"),
		signingKey: []byte(signingKey),
	}, nil
}

// SaveFile saves a file to a specified subdirectory under a collision-free name
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext

	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	storedPath := uniqueFilename
	if subPath != "" {
		storedPath = subPath + "/" + uniqueFilename
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", storedPath).Msg("File saved successfully")
	return storedPath, nil
}

// DeleteFile removes a file from the storage filesystem. Deleting a missing
// file is treated as success so the operation stays idempotent.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if filePath == "" {
		return nil
	}

	cleaned := filepath.Clean(filePath)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	physicalPath := filepath.Join(ls.basePath, cleaned)

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// FullPath returns the filesystem path for a stored file path
func (ls *LocalStorage) FullPath(filePath string) string {
	return filepath.Join(ls.basePath, filepath.Clean(filePath))
}

// SignedURL returns a time-limited download URL for a stored path
func (ls *LocalStorage) SignedURL(filePath string, ttl time.Duration) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("empty file path")
	}

	expires := strconv.FormatInt(time.Now().Add(ttl).Unix(), 10)
	signature := ls.sign(filePath, expires)

	return fmt.Sprintf("%s/files/%s?expires=%s&signature=%s",
		ls.baseURL, url.PathEscape(filePath), expires, signature), nil
}

// VerifySignedPath checks a signature produced by SignedURL and that it has
// not expired.
func (ls *LocalStorage) VerifySignedPath(filePath, expires, signature string) bool {
	expiresAt, err := strconv.ParseInt(expires, 10, 64)
	if err != nil || time.Now().Unix() > expiresAt {
		return false
	}

	expected := ls.sign(filePath, expires)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (ls *LocalStorage) sign(filePath, expires string) string {
	mac := hmac.New(sha256.New, ls.signingKey)
	mac.Write([]byte(filePath))
	mac.Write([]byte{'|'})
	mac.Write([]byte(expires))
	return hex.EncodeToString(mac.Sum(nil))
}
