// Package s3 stores uploaded documents in an S3-compatible bucket.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3 allows at most 1000 keys per DeleteObjects request
const maxBatchSize = 1000

// Client is the subset of the S3 API the store uses
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Presigner signs GET requests
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Config holds bucket and credential settings
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string // empty = AWS
	AccessKeyID     string // empty = default credential chain
	SecretAccessKey string
	KeyPrefix       string
}

// Store implements object storage on S3
type Store struct {
	client    Client
	presigner Presigner
	bucket    string
	keyPrefix string
}

// New builds a client from cfg and verifies the bucket is reachable
func New(ctx context.Context, cfg Config) (*Store, error) {
	var opts []func(*awsConfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsConfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	store := NewWithClient(client, s3.NewPresignClient(client), cfg.Bucket, cfg.KeyPrefix)

	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(cfg.Bucket)}); err != nil {
		return nil, fmt.Errorf("bucket %s not accessible: %w", cfg.Bucket, err)
	}
	return store, nil
}

// NewWithClient creates a store on an existing client
func NewWithClient(client Client, presigner Presigner, bucket, keyPrefix string) *Store {
	return &Store{
		client:    client,
		presigner: presigner,
		bucket:    bucket,
		keyPrefix: keyPrefix,
	}
}

func (s *Store) objectKey(key string) string {
	return s.keyPrefix + key
}

// PutObject uploads data under key
func (s *Store) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.objectKey(key)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// RemoveObjects deletes keys in batches. Every failed batch or key is
// reported; a failure does not stop later batches.
func (s *Store) RemoveObjects(ctx context.Context, keys []string) error {
	var errs []error

	for i := 0; i < len(keys); i += maxBatchSize {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}

		batch := keys[i:min(i+maxBatchSize, len(keys))]
		objects := make([]types.ObjectIdentifier, len(batch))
		for j, key := range batch {
			objects[j] = types.ObjectIdentifier{Key: aws.String(s.objectKey(key))}
		}

		result, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{
				Objects: objects,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("delete %d objects: %w", len(batch), err))
			continue
		}

		for _, deleteErr := range result.Errors {
			errs = append(errs, fmt.Errorf("delete %s: %s: %s",
				aws.ToString(deleteErr.Key),
				aws.ToString(deleteErr.Code),
				aws.ToString(deleteErr.Message),
			))
		}
	}

	return errors.Join(errs...)
}

// SignedURL presigns a GET for key, valid for ttl
func (s *Store) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}
