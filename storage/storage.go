package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore persists uploaded image files and resolves them to the URL
// references kept on the note document.
type ImageStore interface {
	// Save stores the file content and returns the public URL reference.
	Save(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)

	// Remove deletes the stored object behind a URL reference previously
	// returned by Save. References this store did not issue are ignored.
	Remove(ctx context.Context, ref string) error
}

// objectKey builds a collision-free storage key, keeping only the
// original file extension.
func objectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		ext = ""
	}
	return uuid.New().String() + ext
}
