package service

import (
	"context"
	"io"
)

// ImageStorage defines the interface for storing uploaded recipe images.
// This abstracts the blob backend (local filesystem, S3) from the use cases.
type ImageStorage interface {
	// Save writes the image under the given object key and returns the
	// public URL clients can fetch it from.
	Save(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Delete removes a previously stored object. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error
}
