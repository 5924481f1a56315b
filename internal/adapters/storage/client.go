package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// UploadURLTTL bounds how long a presigned upload stays usable.
const UploadURLTTL = 15 * time.Minute

// MinIOStore is the ImageStore backed by minio-go.
type MinIOStore struct {
	client      *minio.Client
	maxFileSize int64
	publicURL   string
}

func NewMinIOStore(cfg Config) (*MinIOStore, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, errors.New("minio: endpoint and credentials are not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("minio: new client: %w", err)
	}

	return &MinIOStore{
		client:      client,
		maxFileSize: cfg.GetMinIOMaxFileSize(),
		publicURL:   strings.TrimRight(cfg.GetMinIOPublicURL(), "/"),
	}, nil
}

func (s *MinIOStore) EnsureBucketExists(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("minio: bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("minio: make bucket %s: %w", bucket, err)
	}
	return nil
}

func (s *MinIOStore) GenerateUploadURL(ctx context.Context, bucket, folder, fileName, contentType string, sizeBytes int64) (*PresignedURL, error) {
	if err := ValidateImageContentType(contentType); err != nil {
		return nil, err
	}
	if err := ValidateFileSize(sizeBytes, s.maxFileSize); err != nil {
		return nil, err
	}

	key := UniqueFileKey(folder, fileName)
	expiresAt := time.Now().Add(UploadURLTTL)
	u, err := s.client.PresignedPutObject(ctx, bucket, key, UploadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("minio: presign %s: %w", key, err)
	}
	return &PresignedURL{URL: u.String(), FileKey: key, ExpiresAt: expiresAt}, nil
}

// ObjectExists stats the object; a NoSuchKey answer is (false, nil).
func (s *MinIOStore) ObjectExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	_, err := s.client.StatObject(ctx, bucket, fileKey, minio.StatObjectOptions{})
	switch {
	case err == nil:
		return true, nil
	case minio.ToErrorResponse(err).Code == "NoSuchKey":
		return false, nil
	default:
		return false, fmt.Errorf("minio: stat %s: %w", fileKey, err)
	}
}

func (s *MinIOStore) DeleteObject(ctx context.Context, bucket, fileKey string) error {
	if err := s.client.RemoveObject(ctx, bucket, fileKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio: remove %s: %w", fileKey, err)
	}
	return nil
}

func (s *MinIOStore) PublicURL(bucket, fileKey string) string {
	return s.publicURL + "/" + path.Join(bucket, fileKey)
}

var _ ImageStore = (*MinIOStore)(nil)
