package storage

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateImageContentType(t *testing.T) {
	for _, ok := range []string{"image/png", "IMAGE/JPEG", "image/webp; charset=binary"} {
		if err := ValidateImageContentType(ok); err != nil {
			t.Fatalf("expected %q to be allowed, got %v", ok, err)
		}
	}
	for _, bad := range []string{"", "application/pdf", "image/svg+xml", "video/mp4"} {
		if err := ValidateImageContentType(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestValidateFileSize(t *testing.T) {
	if err := ValidateFileSize(0, 10); err == nil {
		t.Fatal("expected empty file to be rejected")
	}
	if err := ValidateFileSize(11, 10); err == nil {
		t.Fatal("expected oversized file to be rejected")
	}
	if err := ValidateFileSize(10, 10); err != nil {
		t.Fatalf("expected size at limit to pass, got %v", err)
	}
}

func TestUniqueFileKey(t *testing.T) {
	key := UniqueFileKey("products/7", `C:\photos\Tomato.JPG`)
	if !strings.HasPrefix(key, "products/7/Tomato_") || !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("unexpected key %q", key)
	}
	if UniqueFileKey("products/7", "a.png") == UniqueFileKey("products/7", "a.png") {
		t.Fatal("expected keys to differ")
	}
	if got := UniqueFileKey("p", "../../etc/passwd"); !strings.HasPrefix(got, "p/passwd_") {
		t.Fatalf("path traversal not stripped: %q", got)
	}
}

func TestValidationErrorsAreInvalidUpload(t *testing.T) {
	if err := ValidateImageContentType("text/plain"); !errors.Is(err, ErrInvalidUpload) {
		t.Fatalf("expected ErrInvalidUpload, got %v", err)
	}
	if err := ValidateFileSize(100, 10); !errors.Is(err, ErrInvalidUpload) {
		t.Fatalf("expected ErrInvalidUpload, got %v", err)
	}
}

type fixedURLStore struct{ ImageStore }

func (fixedURLStore) PublicURL(bucket, fileKey string) string {
	return "http://cdn/" + bucket + "/" + fileKey
}

func TestKeyFromPublicURL(t *testing.T) {
	store := fixedURLStore{}
	key, ok := KeyFromPublicURL(store, "product-images", "http://cdn/product-images/products/7/a_1.png")
	if !ok || key != "products/7/a_1.png" {
		t.Fatalf("got %q %v", key, ok)
	}
	if _, ok := KeyFromPublicURL(store, "product-images", "https://example.com/a.png"); ok {
		t.Fatal("expected foreign URL to be rejected")
	}
}
