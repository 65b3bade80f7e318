package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"gestaotemplate/internal/config"
	"gestaotemplate/internal/utils"
)

// ErrObjectNotFound is returned by Storage.Delete implementations that can
// tell a missing object apart from a failed delete.
var ErrObjectNotFound = errors.New("object not found")

// Object is a stored file as seen by a listing.
type Object struct {
	Key     string
	ModTime time.Time
}

// Storage is the file backend used for entity uploads.
type Storage interface {
	Put(ctx context.Context, key string, content []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]Object, error)
	// URL returns the public URL of key.
	URL(key string) string
}

// Upload is a validated file about to be stored for a column. Extension is
// derived from the detected content type.
type Upload struct {
	Column      string
	Filename    string
	Extension   string
	ContentType string
	Content     []byte
}

// EntityFolder is the storage prefix of an entity's uploads for a store.
func EntityFolder(pasta, folder string) string {
	return path.Join(pasta, "assets", "gestaoTemplate", folder) + "/"
}

// StorageKey builds "{pasta}/assets/gestaoTemplate/{folder}/{slug}-{random10}.{ext}"
// for an uploaded file name. The client's own extension is dropped in favour
// of ext.
func StorageKey(pasta, folder, original, ext string) (string, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	base := strings.TrimSuffix(original, path.Ext(original))

	name := utils.Slug(base, "-")
	if name == "" {
		name = "arquivo"
	}
	suffix, err := utils.GenerateRandomString(10)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s-%s", name, suffix)
	if ext != "" {
		filename += "." + ext
	}
	return EntityFolder(pasta, folder) + filename, nil
}

// deleteQuietly removes keys and reports the ones that could not be removed.
// A key that is already gone counts as removed.
func deleteQuietly(ctx context.Context, store Storage, keys []string) []string {
	var failed []string
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := store.Delete(ctx, key); err != nil && !errors.Is(err, ErrObjectNotFound) {
			failed = append(failed, key)
		}
	}
	return failed
}

// NewStorage builds the backend selected by STORAGE_PROVIDER.
func NewStorage(ctx context.Context, cfg config.StorageConfig, publicURL string) (Storage, error) {
	switch cfg.Provider {
	case "s3", "r2":
		return NewS3Storage(ctx, cfg.S3.BucketName, cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
	case "local", "":
		return NewLocalStorage(cfg.BasePath, publicURL)
	default:
		return nil, fmt.Errorf("unsupported storage provider %q", cfg.Provider)
	}
}
