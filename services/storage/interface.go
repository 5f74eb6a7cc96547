package storage

import (
	"context"
	"io"
)

// ImageUploader stores profile images and returns their public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, file io.Reader, filename string) (string, error)
}
