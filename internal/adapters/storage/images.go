// Package storage keeps product images in an S3-compatible bucket. Clients
// upload straight to the bucket through presigned URLs; the API only signs
// and verifies.
package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidUpload marks uploads rejected before a URL is signed.
var ErrInvalidUpload = errors.New("invalid upload")

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// PresignedURL is a signed PUT target for one object.
type PresignedURL struct {
	URL       string
	FileKey   string
	ExpiresAt time.Time
}

// ImageStore is what the catalog needs from object storage.
type ImageStore interface {
	// GenerateUploadURL signs a PUT for a new, uniquely named object under folder.
	GenerateUploadURL(ctx context.Context, bucket, folder, fileName, contentType string, sizeBytes int64) (*PresignedURL, error)
	ObjectExists(ctx context.Context, bucket, fileKey string) (bool, error)
	DeleteObject(ctx context.Context, bucket, fileKey string) error
	// PublicURL is the address browsers load the object from.
	PublicURL(bucket, fileKey string) string
	EnsureBucketExists(ctx context.Context, bucket string) error
}

// Config is satisfied by config.MinIOConfig.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinIOPublicURL() string
	IsMinIOEnabled() bool
}

// ValidateImageContentType accepts JPEG, PNG, GIF and WebP, ignoring case and
// media type parameters.
func ValidateImageContentType(contentType string) error {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !imageTypes[mediaType] {
		return fmt.Errorf("%w: content type %q is not allowed", ErrInvalidUpload, contentType)
	}
	return nil
}

func ValidateFileSize(sizeBytes, maxBytes int64) error {
	switch {
	case sizeBytes <= 0:
		return fmt.Errorf("%w: file size must be greater than 0", ErrInvalidUpload)
	case sizeBytes > maxBytes:
		return fmt.Errorf("%w: file size %d bytes exceeds the %d byte limit", ErrInvalidUpload, sizeBytes, maxBytes)
	}
	return nil
}

// UniqueFileKey returns folder/<base>_<8 hex><ext>. Any directory part of
// fileName is dropped, Windows separators included.
func UniqueFileKey(folder, fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, `\`, "/"))
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" || stem == "." || stem == "/" {
		stem = "image"
	}
	return path.Join(folder, fmt.Sprintf("%s_%s%s", stem, uuid.NewString()[:8], strings.ToLower(ext)))
}

// KeyFromPublicURL reverses PublicURL. It reports false for URLs that do not
// point into bucket on store.
func KeyFromPublicURL(store ImageStore, bucket, publicURL string) (string, bool) {
	prefix := strings.TrimSuffix(store.PublicURL(bucket, ""), "/") + "/"
	key, ok := strings.CutPrefix(publicURL, prefix)
	return key, ok && key != ""
}
