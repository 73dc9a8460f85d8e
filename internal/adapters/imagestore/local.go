package imagestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"devevent/internal/domain"
)

// LocalStore writes images below a directory; the HTTP layer serves that directory under PublicURL.
type LocalStore struct {
	dir       string
	publicURL string
}

// NewLocalStore creates dir if needed and returns a store rooted at it.
func NewLocalStore(dir, publicURL string) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("local image store directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	return &LocalStore{dir: dir, publicURL: publicURL}, nil
}

// Dir returns the root directory of the store.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Upload(ctx context.Context, data []byte, opts domain.UploadOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key, _ := objectKey(opts.Folder, data)
	dst := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	return joinURL(s.publicURL, key), nil
}
