package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config carries the settings needed to reach an S3-compatible bucket.
// Endpoint may point at a non-AWS implementation (MinIO etc.); when empty
// the standard AWS endpoint for Region is used.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string // key prefix inside the bucket, e.g. "photos"
}

// s3API is the slice of the S3 client the store uses; narrowed for tests.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps attachments as objects in one bucket.
type S3Store struct {
	client s3API
	bucket string
	prefix string
}

// NewS3Store builds an S3Store from static credentials.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: s3 bucket not configured")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Save uploads the candidate under a derived unique key and returns the key
// (without bucket) as the stored reference.
func (s *S3Store) Save(ctx context.Context, up *Upload) (string, error) {
	if up == nil || len(up.Data) == 0 {
		return "", errors.New("storage: empty upload")
	}
	ref := newRef(up.Filename)
	key := s.key(ref)
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(up.Data),
		// Refuse to replace an existing object under the same key.
		IfNoneMatch: aws.String("*"),
	}
	if up.ContentType != "" {
		in.ContentType = aws.String(up.ContentType)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("storage: put %s: %w", key, err)
	}
	return ref, nil
}

// Delete removes the object behind ref. S3 DeleteObject succeeds for
// missing keys, which gives the idempotency the callers rely on.
func (s *S3Store) Delete(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	key := s.key(ref)
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) key(ref string) string {
	if s.prefix == "" {
		return ref
	}
	return path.Join(s.prefix, ref)
}
