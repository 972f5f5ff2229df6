// Package storage holds uploaded media (venue photos, team and tournament
// logos) in an S3-compatible object store. Callers keep only the object key;
// public URLs are derived on read.
package storage

import (
	"context"
	"fmt"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// ExtensionFromContentType maps an upload's MIME type to the file extension
// its object key is stored under. Only image types are accepted.
func ExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/webp":
		return ".webp", nil
	case "image/gif":
		return ".gif", nil
	default:
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}
}
