// Package storage wraps the object store used for post photos. Uploads never
// pass through the service: clients receive a pre-signed PUT URL and write to
// the bucket directly. Object keys follow the post id, which is also the key
// used by the delete cascade.
package storage

import (
	"context"
	"fmt"
	"time"

	"postsvc/config"
	"postsvc/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultPresignTTL is how long an issued upload URL stays valid.
const DefaultPresignTTL = time.Hour

// ObjectStore issues time-limited upload URLs and deletes stored objects.
type ObjectStore interface {
	PresignUploadURL(ctx context.Context, objectName string, expires time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectName string) error
}

// S3Store implements ObjectStore against a single S3 bucket.
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewS3Store builds an S3-backed store from configuration. Static credentials
// are used when provided; otherwise the default AWS credential chain applies.
func NewS3Store(ctx context.Context, cfg *config.Config) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.S3Bucket,
	}, nil
}

// PresignUploadURL returns a pre-signed PUT URL for objectName. A
// non-positive expires falls back to DefaultPresignTTL.
func (s *S3Store) PresignUploadURL(ctx context.Context, objectName string, expires time.Duration) (string, error) {
	if expires <= 0 {
		expires = DefaultPresignTTL
	}

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectName),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("%w: presign put %q: %v", models.ErrObjectStore, objectName, err)
	}

	return req.URL, nil
}

// DeleteObject removes objectName from the bucket.
func (s *S3Store) DeleteObject(ctx context.Context, objectName string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return fmt.Errorf("%w: delete %q: %v", models.ErrObjectStore, objectName, err)
	}
	return nil
}
