package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	apperrors "github.com/kbukum/fobstore/errors"
	"github.com/kbukum/fobstore/logger"
	"github.com/kbukum/fobstore/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderS3, func(ctx context.Context, _ storage.Config, providerCfg any, log *logger.Logger) (storage.Backend, error) {
		c, ok := providerCfg.(*Config)
		if !ok || c == nil {
			return nil, apperrors.Validation(fmt.Sprintf("s3: expected *s3.Config, got %T", providerCfg))
		}
		c.ApplyDefaults()
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return NewFromConfig(ctx, c, log)
	})
}

// API is the subset of the S3 client the backend uses.
type API interface {
	ListBuckets(ctx context.Context, params *awss3.ListBucketsInput, optFns ...func(*awss3.Options)) (*awss3.ListBucketsOutput, error)
	CreateBucket(ctx context.Context, params *awss3.CreateBucketInput, optFns ...func(*awss3.Options)) (*awss3.CreateBucketOutput, error)
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *awss3.DeleteObjectInput, optFns ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *awss3.ListObjectsV2Input, optFns ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error)
}

var _ API = (*awss3.Client)(nil)

// maxBucketPages bounds the ListBuckets pagination during setup.
const maxBucketPages = 100

// Backend implements storage.Backend on one S3 bucket.
type Backend struct {
	client   API
	bucket   string
	log      *logger.Logger
	disabled bool
}

// NewFromConfig builds an SDK client from cfg and prepares the bucket.
func NewFromConfig(ctx context.Context, cfg *Config, log *logger.Logger) (*Backend, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewBackend(ctx, client, cfg.Bucket, log), nil
}

// NewClient creates a path-style S3 client for cfg.EndpointURL signed with
// static HMAC credentials.
func NewClient(ctx context.Context, cfg *Config) (*awss3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.APIKeyID, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, apperrors.Validation("s3: load aws config").WithCause(err)
	}

	return awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		o.BaseEndpoint = aws.String(cfg.EndpointURL)
		o.UsePathStyle = true
		if cfg.MaxAttempts > 0 {
			o.RetryMaxAttempts = cfg.MaxAttempts
		}
		o.APIOptions = append(o.APIOptions, WithServiceInstance(cfg.Instance))
	}), nil
}

// NewBackend wraps client and makes sure bucket exists, creating it once if
// it is missing. If the bucket cannot be confirmed or created the backend is
// returned disabled and every call reports it unavailable.
func NewBackend(ctx context.Context, client API, bucket string, log *logger.Logger) *Backend {
	b := &Backend{
		client: client,
		bucket: bucket,
		log:    log.WithFields(map[string]interface{}{logger.FieldBackend: storage.ProviderS3, logger.FieldBucket: bucket}),
	}
	b.disabled = !b.ensureBucket(ctx)
	return b
}

func (b *Backend) ensureBucket(ctx context.Context) bool {
	found, err := b.bucketExists(ctx)
	if err != nil {
		b.log.Warn("unable to list buckets", map[string]interface{}{logger.FieldError: err.Error()})
	}
	if found {
		b.log.Info("bucket found")
		return true
	}

	b.log.Warn("bucket not found, creating it")
	_, err = b.client.CreateBucket(ctx, &awss3.CreateBucketInput{Bucket: aws.String(b.bucket)})
	if err == nil {
		b.log.Info("bucket created")
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		b.log.Error("bucket creation rejected, storage disabled", map[string]interface{}{
			"code":            apiErr.ErrorCode(),
			logger.FieldError: apiErr.ErrorMessage(),
		})
	} else {
		b.log.Error("unexpected error creating bucket, storage disabled", map[string]interface{}{
			logger.FieldError: err.Error(),
		})
	}
	return false
}

func (b *Backend) bucketExists(ctx context.Context) (bool, error) {
	input := &awss3.ListBucketsInput{}
	for range maxBucketPages {
		out, err := b.client.ListBuckets(ctx, input)
		if err != nil {
			return false, err
		}
		for _, bkt := range out.Buckets {
			if aws.ToString(bkt.Name) == b.bucket {
				return true, nil
			}
		}
		if aws.ToString(out.ContinuationToken) == "" {
			break
		}
		input.ContinuationToken = out.ContinuationToken
	}
	return false, nil
}

// Name returns "s3".
func (b *Backend) Name() string { return storage.ProviderS3 }

// Available reports whether bucket setup succeeded.
func (b *Backend) Available() bool { return !b.disabled }

// Bucket returns the bucket name.
func (b *Backend) Bucket() string { return b.bucket }

// Put uploads data as one object.
func (b *Backend) Put(ctx context.Context, name string, data []byte) error {
	if b.disabled {
		return apperrors.BackendUnavailable(storage.ProviderS3)
	}
	_, err := b.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(name),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return apperrors.ExternalServiceError("s3 put", err).WithDetail(logger.FieldItem, name)
	}
	return nil
}

// Get downloads the object's content.
func (b *Backend) Get(ctx context.Context, name string) ([]byte, error) {
	if b.disabled {
		return nil, apperrors.BackendUnavailable(storage.ProviderS3)
	}
	out, err := b.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("item", name)
		}
		return nil, apperrors.ExternalServiceError("s3 get", err).WithDetail(logger.FieldItem, name)
	}
	defer out.Body.Close() //nolint:errcheck // read-only body

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, apperrors.ExternalServiceError("s3 read body", err).WithDetail(logger.FieldItem, name)
	}
	return data, nil
}

// Delete removes the object. Returns nil if it does not exist.
func (b *Backend) Delete(ctx context.Context, name string) error {
	if b.disabled {
		return apperrors.BackendUnavailable(storage.ProviderS3)
	}
	_, err := b.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(name),
	})
	if err != nil && !isNotFound(err) {
		return apperrors.ExternalServiceError("s3 delete", err).WithDetail(logger.FieldItem, name)
	}
	return nil
}

// ListPage issues one ListObjectsV2 request.
func (b *Backend) ListPage(ctx context.Context, req storage.PageRequest) (storage.Page, error) {
	if b.disabled {
		return storage.Page{}, apperrors.BackendUnavailable(storage.ProviderS3)
	}
	input := &awss3.ListObjectsV2Input{
		Bucket: aws.String(b.bucket),
	}
	if req.Prefix != "" {
		input.Prefix = aws.String(req.Prefix)
	}
	if req.StartAfter != "" {
		input.StartAfter = aws.String(req.StartAfter)
	}
	if req.MaxKeys > 0 {
		input.MaxKeys = aws.Int32(int32(min(req.MaxKeys, storage.MaxPageSize)))
	}

	out, err := b.client.ListObjectsV2(ctx, input)
	if err != nil {
		return storage.Page{}, apperrors.ExternalServiceError("s3 list", err).WithDetail("prefix", req.Prefix)
	}

	page := storage.Page{
		Names:     make([]string, 0, len(out.Contents)),
		Truncated: aws.ToBool(out.IsTruncated),
	}
	for _, obj := range out.Contents {
		page.Names = append(page.Names, aws.ToString(obj.Key))
	}
	return page, nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

// compile-time check
var _ storage.Backend = (*Backend)(nil)
