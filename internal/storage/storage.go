package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"himti/internal/config"
)

// Storage persists uploaded objects and returns their public URL.
type Storage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// New returns the backend selected by STORAGE_DRIVER.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case "s3":
		return NewS3Storage(ctx, cfg)
	case "local":
		return NewLocalStorage(cfg.UploadDir, cfg.UploadBaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// Key joins a folder and file name into an object key.
func Key(folder, name string) string {
	return path.Join(strings.Trim(folder, "/"), name)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
