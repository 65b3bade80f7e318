package services

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gestaotemplate/internal/utils/logger"

	"github.com/spf13/afero"
)

// Ensure LocalStorage implements Storage
var _ Storage = (*LocalStorage)(nil)

// LocalStorage keeps uploads on a filesystem served under {publicURL}/storage.
type LocalStorage struct {
	fs        afero.Fs
	publicURL string
	logger    *logger.Logger
}

// NewLocalStorage roots storage at basePath on the OS filesystem.
func NewLocalStorage(basePath, publicURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, err
	}
	return NewLocalStorageFs(afero.NewBasePathFs(afero.NewOsFs(), basePath), publicURL), nil
}

// NewLocalStorageFs uses fs directly, e.g. afero.NewMemMapFs() in tests.
func NewLocalStorageFs(fs afero.Fs, publicURL string) *LocalStorage {
	return &LocalStorage{
		fs:        fs,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger.New("local_storage"),
	}
}

func (s *LocalStorage) Put(_ context.Context, key string, content []byte, _ string) error {
	name := filepath.FromSlash(key)
	if err := s.fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, name, content, 0o644); err != nil {
		return s.logger.Error("Failed to write file %s", err, key)
	}
	s.logger.Debug("📤 Stored %s (%d bytes)", key, len(content))
	return nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	err := s.fs.Remove(filepath.FromSlash(key))
	if errors.Is(err, os.ErrNotExist) {
		return ErrObjectNotFound
	}
	return err
}

func (s *LocalStorage) List(_ context.Context, prefix string) ([]Object, error) {
	root := filepath.FromSlash(strings.TrimSuffix(prefix, "/"))
	var objects []Object
	err := afero.Walk(s.fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		objects = append(objects, Object{Key: filepath.ToSlash(p), ModTime: info.ModTime()})
		return nil
	})
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return objects, nil
}

func (s *LocalStorage) URL(key string) string {
	return s.publicURL + "/" + path.Join("storage", key)
}

// Exists reports whether key is stored.
func (s *LocalStorage) Exists(key string) bool {
	ok, err := afero.Exists(s.fs, filepath.FromSlash(key))
	return err == nil && ok
}

// Fs exposes the underlying filesystem, e.g. for serving files.
func (s *LocalStorage) Fs() afero.Fs {
	return s.fs
}
