package storage

import (
	"context"
	"io"
	"strings"
	"time"

	"contactbook/config"
	"contactbook/internal/domain/service"
	"contactbook/internal/errors"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioFileHost wraps the MinIO SDK client and bucket name.
type minioFileHost struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	keyPrefix     string
	now           func() time.Time
}

var _ service.FileHost = (*minioFileHost)(nil)

// newMinioFileHost constructs a MinIO client from config.
func newMinioFileHost(cfg *config.FileHostConfig) (*minioFileHost, error) {
	mc := cfg.Minio
	if strings.TrimSpace(mc.Endpoint) == "" {
		return nil, errors.New("minio endpoint is required")
	}
	if strings.TrimSpace(mc.AccessKey) == "" || strings.TrimSpace(mc.SecretKey) == "" {
		return nil, errors.New("minio access key and secret key are required")
	}
	if strings.TrimSpace(mc.Bucket) == "" {
		return nil, errors.New("minio bucket is required")
	}

	client, err := minio.New(mc.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(mc.AccessKey, mc.SecretKey, ""),
		Secure: mc.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client")
	}

	base := cfg.PublicBaseURL
	if base == "" {
		base = client.EndpointURL().String() + "/" + mc.Bucket
	}

	return &minioFileHost{
		client:        client,
		bucket:        mc.Bucket,
		publicBaseURL: base,
		keyPrefix:     cfg.KeyPrefix,
		now:           time.Now,
	}, nil
}

// EnsureBucket ensures the configured bucket exists.
func (m *minioFileHost) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return errors.Wrap(err, "check minio bucket")
	}
	if exists {
		return nil
	}

	return errors.Wrap(m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}), "create minio bucket")
}

// Upload puts the object, replacing any previous version under the same key.
func (m *minioFileHost) Upload(ctx context.Context, r io.Reader, size int64, contentType, identifier string) (string, error) {
	key := objectKey(m.keyPrefix, identifier)

	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=300",
	})
	if err != nil {
		return "", errors.Wrapf(err, "put %s", key)
	}

	return publicURL(m.publicBaseURL, key, m.now()), nil
}
