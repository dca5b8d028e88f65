package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes images to a directory on disk and serves them back
// through the API's /uploads static route. It is the fallback when no
// MinIO endpoint is configured, and the store the tests use.
type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, publicBaseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalStore{
		dir:       dir,
		urlPrefix: strings.TrimRight(publicBaseURL, "/") + "/uploads/",
	}, nil
}

// Dir returns the directory served under /uploads.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Save(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	key := objectKey(filename)

	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}
	return s.urlPrefix + key, nil
}

func (s *LocalStore) Remove(ctx context.Context, ref string) error {
	key, ok := strings.CutPrefix(ref, s.urlPrefix)
	if !ok || strings.Contains(key, "/") {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
