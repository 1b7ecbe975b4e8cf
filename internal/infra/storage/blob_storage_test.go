package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"

	_ "gocloud.dev/blob/fileblob"
)

func newTestStorage(t *testing.T) *blobImageStorage {
	t.Helper()

	bucket, err := blob.OpenBucket(context.Background(), "file://"+t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { bucket.Close() })

	return &blobImageStorage{
		bucket:        bucket,
		publicBaseURL: "https://img.example.com",
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestBlobImageStorage_SaveAndDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	url, err := s.Save(ctx, "recipes/42/cover.png", "image/png", strings.NewReader("fake-png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/recipes/42/cover.png", url)

	// Stored content round-trips through the bucket.
	data, err := s.bucket.ReadAll(ctx, "recipes/42/cover.png")
	require.NoError(t, err)
	assert.Equal(t, "fake-png-bytes", string(data))

	require.NoError(t, s.Delete(ctx, "recipes/42/cover.png"))

	exists, err := s.bucket.Exists(ctx, "recipes/42/cover.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBlobImageStorage_DeleteMissingKeyIsNoop(t *testing.T) {
	s := newTestStorage(t)

	assert.NoError(t, s.Delete(context.Background(), "recipes/404/missing.png"))
}
