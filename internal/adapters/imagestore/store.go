// Package imagestore provides image hosting backends behind domain.ImageStore.
package imagestore

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"devevent/internal/domain"
)

// S3Config holds configuration for the S3 provider.
type S3Config struct {
	Bucket string
	Region string
	// Endpoint is an optional custom endpoint (for MinIO, LocalStack, etc.).
	Endpoint string
	// UsePathStyle enables path-style addressing (required for MinIO).
	UsePathStyle bool
	// AccessKeyID and SecretAccessKey are optional; when empty the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string
}

// Config holds configuration for creating an image store.
type Config struct {
	Provider string
	// PublicURL is the base URL uploaded objects are served from. For s3 it defaults to the bucket URL.
	PublicURL string
	LocalDir  string
	S3        S3Config
}

// New creates an image store from config. Provider "s3" uses AWS S3; "local" or unknown uses the filesystem.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (domain.ImageStore, error) {
	switch cfg.Provider {
	case "s3":
		return newS3Store(ctx, cfg)
	case "local":
		return NewLocalStore(cfg.LocalDir, cfg.PublicURL)
	default:
		logger.Warn("unknown image store provider, using local", "provider", cfg.Provider)
		return NewLocalStore(cfg.LocalDir, cfg.PublicURL)
	}
}

var extensionsByType = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/bmp":     ".bmp",
	"image/svg+xml": ".svg",
}

// objectKey returns a unique key under folder and the sniffed content type of data.
func objectKey(folder string, data []byte) (key, contentType string) {
	contentType = http.DetectContentType(data)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	name := uuid.NewString() + extensionsByType[contentType]
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name, contentType
	}
	return path.Join(folder, name), contentType
}

func joinURL(base, key string) string {
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(base, "/"), key)
}
