package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/whizpalsdeveloper/NotesApp/config"
)

// MinIOStore keeps image objects in a MinIO (or S3-compatible) bucket.
type MinIOStore struct {
	client    *minio.Client
	bucket    string
	urlPrefix string
}

// NewMinIOStore creates the client and ensures the bucket exists.
func NewMinIOStore(cfg config.StorageConfig) (*MinIOStore, error) {
	if cfg.MinIOEndpoint == "" {
		return nil, fmt.Errorf("minio endpoint not configured")
	}

	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}

	scheme := "http"
	if cfg.MinIOUseSSL {
		scheme = "https"
	}
	s := &MinIOStore{
		client:    client,
		bucket:    cfg.MinIOBucket,
		urlPrefix: fmt.Sprintf("%s://%s/%s/", scheme, cfg.MinIOEndpoint, cfg.MinIOBucket),
	}

	// bucket creation is idempotent
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		exists, xerr := client.BucketExists(ctx, s.bucket)
		if xerr != nil || !exists {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

func (s *MinIOStore) Save(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	key := "images/" + objectKey(filename)
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("minio put: %w", err)
	}
	return s.urlPrefix + key, nil
}

func (s *MinIOStore) Remove(ctx context.Context, ref string) error {
	key, ok := strings.CutPrefix(ref, s.urlPrefix)
	if !ok {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
