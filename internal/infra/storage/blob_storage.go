// Package storage provides blob-backed image storage for recipe uploads.
package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"cookbook/config"
	"cookbook/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Blob drivers selected by the bucket URL scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"
)

// blobImageStorage implements service.ImageStorage on top of a gocloud.dev
// bucket. The bucket URL scheme picks the backend: file:// for local
// development, s3:// in production.
type blobImageStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// Params holds dependencies for the image storage, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewBlobImageStorage opens the configured bucket and returns it as a
// service.ImageStorage. The bucket is closed on application shutdown.
func NewBlobImageStorage(params Params) (service.ImageStorage, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage bucket URL is required")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("Image storage initialized",
		slog.String("bucket_url", cfg.BucketURL),
	)

	return &blobImageStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// Save writes the image under the given object key and returns its public URL.
func (s *blobImageStorage) Save(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to open writer for %s", key)
	}

	if _, err := io.Copy(w, body); err != nil {
		// Abort the write; Close would otherwise commit a truncated object.
		_ = w.Close()

		return "", errors.Wrapf(err, "failed to write object %s", key)
	}

	if err := w.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to commit object %s", key)
	}

	s.logger.Debug("Stored image",
		slog.String("key", key),
		slog.String("content_type", contentType),
	)

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes a previously stored object. A missing key is not an error.
func (s *blobImageStorage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "failed to delete object %s", key)
	}

	return nil
}

// Module provides the image storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewBlobImageStorage),
)
