// Package storage writes uploaded files to a gocloud.dev bucket. The bucket
// URL scheme selects the backend: s3://, gs://, file:// or mem://.
package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"

	"pgbee/config"
	"pgbee/internal/domain/constants"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
	"pgbee/internal/util"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// New opens the configured bucket and closes it on shutdown.
func New(params Params) (service.FileStorage, error) {
	cfg := params.Config.Storage

	bucket, err := blob.OpenBucket(context.Background(), cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", cfg.BucketURL)
	}

	if strings.HasPrefix(cfg.BucketURL, config.MemoryBucketURL) && params.Config.Env.Env != constants.EnvDevelop {
		params.Logger.Warn("Uploads are kept in process memory and lost on restart; set storage.bucketUrl",
			slog.String("env", params.Config.Env.Env))
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return NewWithBucket(bucket, cfg.PublicBaseURL, params.Logger), nil
}

// NewWithBucket wraps an already opened bucket.
func NewWithBucket(bucket *blob.Bucket, publicBaseURL string, logger *slog.Logger) service.FileStorage {
	if logger == nil {
		logger = slog.Default()
	}

	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

func (s *blobStorage) Upload(ctx context.Context, key, contentType string, r io.Reader) (*service.StoredObject, error) {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return nil, errors.Wrapf(err, "open writer for %s", key)
	}

	src := util.NewChecksumReader(r)
	if _, err := io.Copy(w, src); err != nil {
		_ = w.Close()
		// Best effort: a partial write may have created the object.
		_ = s.bucket.Delete(context.WithoutCancel(ctx), key)

		return nil, errors.Wrapf(err, "write %s", key)
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrapf(err, "commit %s", key)
	}

	etag := src.Sum()
	if attrs, err := s.bucket.Attributes(ctx, key); err == nil && attrs.ETag != "" {
		etag = strings.Trim(attrs.ETag, `"`)
	}

	s.logger.InfoContext(ctx, "file stored",
		slog.String("key", key),
		slog.String("size", util.FormatBytes(src.BytesRead())),
	)

	return &service.StoredObject{
		Key:      key,
		Location: s.PublicURL(key),
		ETag:     etag,
		Size:     src.BytesRead(),
	}, nil
}

func (s *blobStorage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		return errors.Wrapf(err, "delete %s", key)
	}

	return nil
}

// PublicURL returns the key itself when no public base URL is configured.
func (s *blobStorage) PublicURL(key string) string {
	if s.publicBaseURL == "" {
		return key
	}

	return s.publicBaseURL + "/" + key
}
