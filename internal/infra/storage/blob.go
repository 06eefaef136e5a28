package storage

import (
	"context"
	"io"
	"time"

	"contactbook/internal/domain/service"
	"contactbook/internal/errors"

	"gocloud.dev/blob"
)

// blobFileHost stores files in any gocloud bucket (file, mem, gs, s3).
type blobFileHost struct {
	bucket        *blob.Bucket
	publicBaseURL string
	keyPrefix     string
	now           func() time.Time
}

func newBlobFileHost(bucket *blob.Bucket, publicBaseURL, keyPrefix string) *blobFileHost {
	return &blobFileHost{
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
		keyPrefix:     keyPrefix,
		now:           time.Now,
	}
}

var _ service.FileHost = (*blobFileHost)(nil)

func (h *blobFileHost) Upload(ctx context.Context, r io.Reader, size int64, contentType, identifier string) (string, error) {
	key := objectKey(h.keyPrefix, identifier)

	w, err := h.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=300",
	})
	if err != nil {
		return "", errors.Wrapf(err, "open writer for %s", key)
	}

	written, err := io.Copy(w, r)
	if err != nil {
		_ = w.Close()

		return "", errors.Wrapf(err, "write %s", key)
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrapf(err, "commit %s", key)
	}
	if size >= 0 && written != size {
		return "", errors.Errorf("short upload for %s: wrote %d of %d bytes", key, written, size)
	}

	return publicURL(h.publicBaseURL, key, h.now()), nil
}

func (h *blobFileHost) Close() error {
	return h.bucket.Close()
}
