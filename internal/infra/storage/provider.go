package storage

import (
	"context"
	"log/slog"

	"contactbook/config"
	"contactbook/internal/domain/constants"
	"contactbook/internal/domain/lifecycle"
	"contactbook/internal/domain/service"
	"contactbook/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// FileHostParams defines the dependencies for the file host
type FileHostParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewFileHost opens the storage backend selected by fileHost.provider.
func NewFileHost(params FileHostParams) (service.FileHost, error) {
	cfg := params.Config.FileHost

	switch cfg.Provider {
	case constants.FileHostProviderMinio:
		host, err := newMinioFileHost(cfg)
		if err != nil {
			return nil, err
		}
		params.Lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				ctx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
				defer cancel()

				return host.EnsureBucket(ctx)
			},
		})
		params.Logger.Info("Using MinIO file host",
			slog.String("bucket", host.bucket),
		)

		return host, nil

	case constants.FileHostProviderBlob, "":
		bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
		if err != nil {
			return nil, errors.Wrapf(err, "open bucket %q", cfg.BucketURL)
		}
		host := newBlobFileHost(bucket, cfg.PublicBaseURL, cfg.KeyPrefix)
		params.Lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return host.Close()
			},
		})
		params.Logger.Info("Using blob file host",
			slog.String("bucket_url", cfg.BucketURL),
		)

		return host, nil

	default:
		return nil, errors.Errorf("unknown file host provider: %s", cfg.Provider)
	}
}
