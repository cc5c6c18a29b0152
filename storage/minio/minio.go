package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	apperrors "github.com/kbukum/fobstore/errors"
	"github.com/kbukum/fobstore/logger"
	"github.com/kbukum/fobstore/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderMinIO, func(ctx context.Context, _ storage.Config, providerCfg any, log *logger.Logger) (storage.Backend, error) {
		c, ok := providerCfg.(*Config)
		if !ok || c == nil {
			return nil, apperrors.Validation(fmt.Sprintf("minio: expected *minio.Config, got %T", providerCfg))
		}
		c.ApplyDefaults()
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return NewFromConfig(ctx, c, log)
	})
}

// Backend implements storage.Backend on one MinIO bucket.
type Backend struct {
	client   *minio.Client
	bucket   string
	region   string
	log      *logger.Logger
	disabled bool
}

// NewFromConfig creates a MinIO client and prepares the bucket.
func NewFromConfig(ctx context.Context, cfg *Config, log *logger.Logger) (*Backend, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, apperrors.Validation("minio: create client").WithCause(err)
	}
	return NewBackend(ctx, client, cfg.Bucket, cfg.Region, log), nil
}

// NewBackend wraps client and makes sure bucket exists, creating it once if
// it is missing. On failure the backend is returned disabled.
func NewBackend(ctx context.Context, client *minio.Client, bucket, region string, log *logger.Logger) *Backend {
	b := &Backend{
		client: client,
		bucket: bucket,
		region: region,
		log:    log.WithFields(map[string]interface{}{logger.FieldBackend: storage.ProviderMinIO, logger.FieldBucket: bucket}),
	}
	b.disabled = !b.ensureBucket(ctx)
	return b
}

func (b *Backend) ensureBucket(ctx context.Context) bool {
	found, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		b.log.Warn("unable to check bucket", map[string]interface{}{logger.FieldError: err.Error()})
	}
	if found {
		b.log.Info("bucket found")
		return true
	}

	b.log.Warn("bucket not found, creating it")
	err = b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{Region: b.region})
	if err == nil {
		b.log.Info("bucket created")
		return true
	}

	if resp := minio.ToErrorResponse(err); resp.Code != "" {
		b.log.Error("bucket creation rejected, storage disabled", map[string]interface{}{
			"code":            resp.Code,
			logger.FieldError: resp.Message,
		})
	} else {
		b.log.Error("unexpected error creating bucket, storage disabled", map[string]interface{}{
			logger.FieldError: err.Error(),
		})
	}
	return false
}

// Name returns "minio".
func (b *Backend) Name() string { return storage.ProviderMinIO }

// Available reports whether bucket setup succeeded.
func (b *Backend) Available() bool { return !b.disabled }

// Bucket returns the bucket name.
func (b *Backend) Bucket() string { return b.bucket }

// Put uploads data as one object.
func (b *Backend) Put(ctx context.Context, name string, data []byte) error {
	if b.disabled {
		return apperrors.BackendUnavailable(storage.ProviderMinIO)
	}
	_, err := b.client.PutObject(ctx, b.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return apperrors.ExternalServiceError("minio put", err).WithDetail(logger.FieldItem, name)
	}
	return nil
}

// Get downloads the object's content.
func (b *Backend) Get(ctx context.Context, name string) ([]byte, error) {
	if b.disabled {
		return nil, apperrors.BackendUnavailable(storage.ProviderMinIO)
	}
	obj, err := b.client.GetObject(ctx, b.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, b.getError(name, err)
	}
	defer obj.Close() //nolint:errcheck // read-only object

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, b.getError(name, err)
	}
	return data, nil
}

func (b *Backend) getError(name string, err error) error {
	if isNotFound(err) {
		return apperrors.NotFound("item", name)
	}
	return apperrors.ExternalServiceError("minio get", err).WithDetail(logger.FieldItem, name)
}

// Delete removes the object. Returns nil if it does not exist.
func (b *Backend) Delete(ctx context.Context, name string) error {
	if b.disabled {
		return apperrors.BackendUnavailable(storage.ProviderMinIO)
	}
	err := b.client.RemoveObject(ctx, b.bucket, name, minio.RemoveObjectOptions{})
	if err != nil && !isNotFound(err) {
		return apperrors.ExternalServiceError("minio delete", err).WithDetail(logger.FieldItem, name)
	}
	return nil
}

// ListPage reads at most req.MaxKeys names from the object listing. The
// client pages on its own, so the listing is cancelled once one name past
// the page has been seen.
func (b *Backend) ListPage(ctx context.Context, req storage.PageRequest) (storage.Page, error) {
	if b.disabled {
		return storage.Page{}, apperrors.BackendUnavailable(storage.ProviderMinIO)
	}
	maxKeys := req.MaxKeys
	if maxKeys <= 0 || maxKeys > storage.MaxPageSize {
		maxKeys = storage.MaxPageSize
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	page := storage.Page{Names: make([]string, 0, maxKeys)}
	for obj := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{
		Prefix:     req.Prefix,
		StartAfter: req.StartAfter,
		MaxKeys:    maxKeys,
		Recursive:  true,
	}) {
		if obj.Err != nil {
			return storage.Page{}, apperrors.ExternalServiceError("minio list", obj.Err).WithDetail("prefix", req.Prefix)
		}
		if len(page.Names) == maxKeys {
			page.Truncated = true
			break
		}
		page.Names = append(page.Names, obj.Key)
	}
	return page, nil
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}

// compile-time check
var _ storage.Backend = (*Backend)(nil)
