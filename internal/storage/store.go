// Package storage persists uploaded files and maps them to public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/config"
)

// FileStore saves and removes uploaded objects.
type FileStore interface {
	// Save writes r under key and returns the public URL.
	Save(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	// Delete removes the object. Missing objects are not an error.
	Delete(ctx context.Context, key string) error
	// KeyFromURL reverses Save's URL. ok is false for URLs this store does not own.
	KeyFromURL(url string) (key string, ok bool)
	Name() string
}

// New builds the store selected by STORAGE_DRIVER.
func New(ctx context.Context, cfg *config.Config) (FileStore, error) {
	switch strings.ToLower(cfg.StorageDriver) {
	case "", "local":
		return NewLocalStore(cfg.UploadDir, cfg.PublicUploadPath)
	case "gcs":
		return NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSPublicBaseURL, cfg.GCSCredentials)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" || strings.Contains(key, "..") || strings.Contains(key, "\\") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return key, nil
}
